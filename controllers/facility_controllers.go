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

// FacilityController serves the static buildings > floors > bathrooms
// hierarchy. Reads are open to any authenticated user; creation is wired
// behind the admin group in the router.
type FacilityController struct {
	DB *gorm.DB
}

func NewFacilityController(db *gorm.DB) *FacilityController {
	return &FacilityController{DB: db}
}

// GetAllBuildings
func (fc *FacilityController) GetAllBuildings(c *gin.Context) {
	var buildings []models.Building
	if err := fc.DB.Order("name asc").Find(&buildings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All buildings", buildings)
}

// CreateBuilding
func (fc *FacilityController) CreateBuilding(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	building := models.Building{Name: req.Name, Code: req.Code}
	if err := fc.DB.Create(&building).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Building created", building)
}

// GetFloors lists floors, optionally scoped to one building via
// ?buildingId=.
func (fc *FacilityController) GetFloors(c *gin.Context) {
	query := fc.DB.Preload("Building").Order("building_id asc, floor_number asc")

	if buildingIDStr := c.Query("buildingId"); buildingIDStr != "" {
		buildingID, err := strconv.Atoi(buildingIDStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid buildingId"))
			return
		}
		query = query.Where("building_id = ?", buildingID)
	}

	var floors []models.Floor
	if err := query.Find(&floors).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All floors", floors)
}

// CreateFloor
func (fc *FacilityController) CreateFloor(c *gin.Context) {
	var req struct {
		BuildingID  uint   `json:"building_id" binding:"required"`
		FloorNumber int    `json:"floor_number" binding:"required"`
		Name        string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var building models.Building
	if err := fc.DB.First(&building, req.BuildingID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("building not found"))
		return
	}

	floor := models.Floor{
		BuildingID:  req.BuildingID,
		FloorNumber: req.FloorNumber,
		Name:        req.Name,
	}
	if err := fc.DB.Create(&floor).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Floor created", floor)
}

// GetAllBathrooms returns every bathroom with its floor and building, the
// projection the report forms populate their selectors from.
func (fc *FacilityController) GetAllBathrooms(c *gin.Context) {
	var bathrooms []models.Bathroom
	err := fc.DB.Preload("Floor").Preload("Floor.Building").
		Order("floor_id asc, name asc").Find(&bathrooms).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All bathrooms", bathrooms)
}

// CreateBathroom
func (fc *FacilityController) CreateBathroom(c *gin.Context) {
	var req struct {
		FloorID uint   `json:"floor_id" binding:"required"`
		Gender  string `json:"gender" binding:"required"`
		Name    string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Gender != "men" && req.Gender != "women" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("gender must be men or women"))
		return
	}

	var floor models.Floor
	if err := fc.DB.First(&floor, req.FloorID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("floor not found"))
		return
	}

	bathroom := models.Bathroom{
		FloorID: req.FloorID,
		Gender:  req.Gender,
		Name:    req.Name,
	}
	if err := fc.DB.Create(&bathroom).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Bathroom created", bathroom)
}
