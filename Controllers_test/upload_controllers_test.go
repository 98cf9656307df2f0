package Controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dmorales/restroom-app/controllers"
	"github.com/dmorales/restroom-app/models"
)

func setupUploadRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	uploadCtrl := controllers.NewUploadController(db)
	router.Use(authAs(2, models.RoleCleaningStaff))
	router.POST("/upload", uploadCtrl.UploadEvidence)
	router.DELETE("/upload/:public_id", uploadCtrl.DeleteEvidence)
	return router
}

func multipartUpload(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadAndDeleteEvidence(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())
	db := setupTestDB(t)
	router := setupUploadRouter(db)

	body, contentType := multipartUpload(t, "fuga.jpg", "image/jpeg", []byte("fake-jpeg-bytes"))
	req, err := http.NewRequest("POST", "/upload", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := dataField(t, w)
	publicID := data["public_id"].(string)
	assert.NotEmpty(t, publicID)
	assert.Equal(t, "image", data["type"])
	assert.Equal(t, "fuga.jpg", data["filename"])
	assert.Contains(t, data["url"].(string), publicID)

	// The file landed on disk
	stored := filepath.Join(os.Getenv("UPLOAD_DIR"), publicID+".jpg")
	_, err = os.Stat(stored)
	assert.NoError(t, err)

	// Delete removes file and record
	w = doJSON(t, router, "DELETE", "/upload/"+publicID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))

	// And is idempotent
	w = doJSON(t, router, "DELETE", "/upload/"+publicID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())
	db := setupTestDB(t)
	router := setupUploadRouter(db)

	body, contentType := multipartUpload(t, "script.html", "text/html", []byte("<html></html>"))
	req, err := http.NewRequest("POST", "/upload", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.EvidenceFile{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUploadRequiresFile(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())
	db := setupTestDB(t)
	router := setupUploadRouter(db)

	w := doJSON(t, router, "POST", "/upload", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadVideoTypeRecorded(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())
	db := setupTestDB(t)
	router := setupUploadRouter(db)

	body, contentType := multipartUpload(t, "evidencia.mp4", "video/mp4", []byte("fake-mp4-bytes"))
	req, err := http.NewRequest("POST", "/upload", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, "video", dataField(t, w)["type"])
}
