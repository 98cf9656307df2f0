package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dmorales/restroom-app/models"
	"github.com/dmorales/restroom-app/utils"
)

type CleaningActivityController struct {
	DB *gorm.DB
}

func NewCleaningActivityController(db *gorm.DB) *CleaningActivityController {
	return &CleaningActivityController{DB: db}
}

// GetAllCleaningActivities lists recent activities. Staff only see their
// own submissions; admins see everything.
func (cac *CleaningActivityController) GetAllCleaningActivities(c *gin.Context) {
	query := cac.DB.Preload("User").Preload("Bathroom").
		Preload("Bathroom.Floor").Preload("Bathroom.Floor.Building").
		Order("created_at desc").Limit(50)

	role, _ := c.Get("role")
	if role != models.RoleAdmin {
		userID, _ := c.Get("user_id")
		query = query.Where("user_id = ?", userID)
	}

	var activities []models.CleaningActivity
	if err := query.Find(&activities).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All cleaning activities", activities)
}

// CreateCleaningActivity records a completed cleaning task. The checklist
// contract is enforced here, not in the form: at least one area cleaned and
// one supply restocked, all tags from the fixed vocabulary, and the bathroom
// must exist.
func (cac *CleaningActivityController) CreateCleaningActivity(c *gin.Context) {
	type reqBody struct {
		BathroomID        uint     `json:"bathroom_id" binding:"required"`
		AreasCleaned      []string `json:"areas_cleaned"`
		SuppliesRestocked []string `json:"supplies_restocked"`
		Observations      string   `json:"observations"`
		Photos            []string `json:"photos"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if len(body.AreasCleaned) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("at least one cleaned area is required"))
		return
	}
	if len(body.SuppliesRestocked) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("at least one restocked supply is required"))
		return
	}
	if !models.ValidTags(body.AreasCleaned, models.CleaningAreas) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown area tag"))
		return
	}
	if !models.ValidTags(body.SuppliesRestocked, models.CleaningSupplies) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown supply tag"))
		return
	}

	var bathroom models.Bathroom
	if err := cac.DB.First(&bathroom, body.BathroomID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("bathroom not found"))
		return
	}

	userIDInterface, _ := c.Get("user_id")
	userID, ok := userIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	activity := models.CleaningActivity{
		UserID:            userID,
		BathroomID:        body.BathroomID,
		AreasCleaned:      body.AreasCleaned,
		SuppliesRestocked: body.SuppliesRestocked,
		Observations:      body.Observations,
		Photos:            body.Photos,
	}

	if err := cac.DB.Create(&activity).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Cleaning activity recorded", activity)
}

// GetCleaningActivityByID
func (cac *CleaningActivityController) GetCleaningActivityByID(c *gin.Context) {
	idStr := c.Param("activity_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid activity id"))
		return
	}

	var activity models.CleaningActivity
	err = cac.DB.Preload("User").Preload("Bathroom").
		Preload("Bathroom.Floor").Preload("Bathroom.Floor.Building").
		First(&activity, id).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	// Staff can only read their own records.
	role, _ := c.Get("role")
	if role != models.RoleAdmin {
		userID, _ := c.Get("user_id")
		if uid, ok := userID.(uint); !ok || uid != activity.UserID {
			utils.RespondError(c, http.StatusForbidden, errors.New("not your activity"))
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaning activity detail", activity)
}
