package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dmorales/restroom-app/models"
	"github.com/dmorales/restroom-app/services"
	"github.com/dmorales/restroom-app/utils"
)

type IncidentController struct {
	DB      *gorm.DB
	Service *services.IncidentService
}

func NewIncidentController(db *gorm.DB) *IncidentController {
	return &IncidentController{
		DB:      db,
		Service: services.NewIncidentService(db),
	}
}

// GetAllIncidents lists incidents newest first, with reporter, assignee and
// location preloaded for the dashboards.
func (ic *IncidentController) GetAllIncidents(c *gin.Context) {
	query := ic.DB.Preload("Bathroom").Preload("Bathroom.Floor").
		Preload("Bathroom.Floor.Building").
		Preload("ReportedBy").Preload("AssignedTo").
		Order("created_at desc")

	if status := c.Query("status"); status != "" {
		if !models.ValidIncidentStatus(status) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("unknown status filter"))
			return
		}
		query = query.Where("status = ?", status)
	}

	var incidents []models.Incident
	if err := query.Find(&incidents).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All incidents", incidents)
}

// CreateIncident reports a new incident. It always starts pending and
// unassigned, whatever the payload says.
func (ic *IncidentController) CreateIncident(c *gin.Context) {
	type reqBody struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description" binding:"required"`
		BathroomID  uint     `json:"bathroom_id" binding:"required"`
		Priority    string   `json:"priority"` // low, medium, high (default medium)
		Photos      []string `json:"photos"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Priority != "" && !models.ValidPriority(body.Priority) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("priority must be low, medium or high"))
		return
	}

	userIDInterface, _ := c.Get("user_id")
	userID, ok := userIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	incident := models.Incident{
		Title:        body.Title,
		Description:  body.Description,
		BathroomID:   body.BathroomID,
		Priority:     body.Priority,
		ReportedByID: userID,
		Photos:       body.Photos,
	}

	if err := ic.Service.Report(&incident); err != nil {
		switch {
		case errors.Is(err, services.ErrBathroomNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrInvalidTransition):
			utils.RespondError(c, http.StatusBadRequest, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.InfoLogger.Printf("Incident %d reported by user %d (priority=%s)",
		incident.ID, userID, incident.Priority)

	utils.RespondJSON(c, http.StatusCreated, "Incident reported", incident)
}

// GetIncidentByID
func (ic *IncidentController) GetIncidentByID(c *gin.Context) {
	id, err := incidentID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	incident, err := ic.Service.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrIncidentNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
		} else {
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Incident detail", incident)
}

// UpdateIncidentStatus drives the lifecycle: status=in_progress plus
// assignedUserId assigns, status=resolved resolves. Admin only (router).
func (ic *IncidentController) UpdateIncidentStatus(c *gin.Context) {
	id, err := incidentID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	type reqBody struct {
		Status         string `json:"status" binding:"required"`
		AssignedUserID *uint  `json:"assignedUserId"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var incident *models.Incident
	switch body.Status {
	case models.IncidentInProgress:
		if body.AssignedUserID == nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("assignedUserId is required to assign"))
			return
		}
		incident, err = ic.Service.Assign(id, *body.AssignedUserID)
	case models.IncidentResolved:
		incident, err = ic.Service.Resolve(id)
	case models.IncidentPending:
		utils.RespondError(c, http.StatusBadRequest, errors.New("incidents cannot be moved back to pending"))
		return
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown status value"))
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, services.ErrIncidentNotFound), errors.Is(err, services.ErrAssigneeNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrAssigneeNotStaff), errors.Is(err, services.ErrInvalidTransition):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrStatusConflict):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Incident updated", incident)
}

// UpdateIncident edits the descriptive fields of a report. Status never
// changes here; that is UpdateIncidentStatus's job.
func (ic *IncidentController) UpdateIncident(c *gin.Context) {
	id, err := incidentID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	type reqBody struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Priority    *string `json:"priority"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	incident, err := ic.Service.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrIncidentNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
		} else {
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	updates := map[string]interface{}{}
	if body.Title != nil {
		updates["title"] = *body.Title
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.Priority != nil {
		if !models.ValidPriority(*body.Priority) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("priority must be low, medium or high"))
			return
		}
		updates["priority"] = *body.Priority
	}

	if len(updates) > 0 {
		if err := ic.DB.Model(incident).Updates(updates).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	incident, err = ic.Service.Get(id)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Incident updated", incident)
}

// DeleteIncident removes a record entirely. Admin only (router).
func (ic *IncidentController) DeleteIncident(c *gin.Context) {
	id, err := incidentID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, err := ic.Service.Get(id); err != nil {
		if errors.Is(err, services.ErrIncidentNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
		} else {
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	if err := ic.DB.Delete(&models.Incident{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Incident deleted", gin.H{"incident_id": id})
}

func incidentID(c *gin.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("incident_id"))
	if err != nil || id < 1 {
		return 0, errors.New("invalid incident id")
	}
	return uint(id), nil
}
