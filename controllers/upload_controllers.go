package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmorales/restroom-app/config"
	"github.com/dmorales/restroom-app/models"
	"github.com/dmorales/restroom-app/utils"
)

// MaxUploadSize is the single ceiling applied to every evidence upload.
const MaxUploadSize = 25 << 20 // 25MB

var allowedMimeTypes = map[string]string{
	"image/jpeg": models.EvidenceImage,
	"image/png":  models.EvidenceImage,
	"image/webp": models.EvidenceImage,
	"video/mp4":  models.EvidenceVideo,
	"video/webm": models.EvidenceVideo,
}

type UploadController struct {
	DB *gorm.DB
}

func NewUploadController(db *gorm.DB) *UploadController {
	return &UploadController{DB: db}
}

// UploadEvidence stores one photo/video on disk and returns the public URL
// plus a deletable public_id. Forms attach the URL to their payloads.
func (upc *UploadController) UploadEvidence(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)

	file, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no file provided"))
		return
	}

	if file.Size > MaxUploadSize {
		utils.RespondError(c, http.StatusBadRequest, errors.New("file too large, maximum size is 25MB"))
		return
	}

	contentType := file.Header.Get("Content-Type")
	mediaType, ok := allowedMimeTypes[contentType]
	if !ok {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("unsupported file type, only JPEG, PNG, WebP images and MP4, WebM videos are allowed"))
		return
	}

	uploadDir := config.UploadDir()
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("error creating upload directory"))
		return
	}

	publicID := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(file.Filename))
	storedName := publicID + ext
	dest := filepath.Join(uploadDir, storedName)

	if err := c.SaveUploadedFile(file, dest); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("error saving file"))
		return
	}

	userIDInterface, _ := c.Get("user_id")
	userID, _ := userIDInterface.(uint)

	evidence := models.EvidenceFile{
		PublicID:   publicID,
		URL:        fmt.Sprintf("%s/uploads/evidence/%s", config.BaseURL(), storedName),
		MediaType:  mediaType,
		Filename:   file.Filename,
		Size:       file.Size,
		UploadedBy: userID,
	}

	if err := upc.DB.Create(&evidence).Error; err != nil {
		os.Remove(dest)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Evidence uploaded: %s (%s, %d bytes) by user %d",
		publicID, contentType, file.Size, userID)

	utils.RespondJSON(c, http.StatusCreated, "File uploaded", gin.H{
		"url":       evidence.URL,
		"public_id": evidence.PublicID,
		"type":      evidence.MediaType,
		"filename":  evidence.Filename,
		"size":      evidence.Size,
	})
}

// DeleteEvidence removes an uploaded file by its public ID. Idempotent: a
// second delete of the same ID still answers 200.
func (upc *UploadController) DeleteEvidence(c *gin.Context) {
	publicID := c.Param("public_id")
	if publicID == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("missing public id"))
		return
	}

	var evidence models.EvidenceFile
	if err := upc.DB.Where("public_id = ?", publicID).First(&evidence).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondJSON(c, http.StatusOK, "File deleted", gin.H{"public_id": publicID})
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	storedName := publicID + strings.ToLower(filepath.Ext(evidence.Filename))
	if err := os.Remove(filepath.Join(config.UploadDir(), storedName)); err != nil && !os.IsNotExist(err) {
		utils.ErrorLogger.Printf("Failed to remove evidence file %s: %v", publicID, err)
	}

	if err := upc.DB.Delete(&evidence).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "File deleted", gin.H{"public_id": publicID})
}
