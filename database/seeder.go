package database

import (
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dmorales/restroom-app/models"
	"github.com/dmorales/restroom-app/utils"
)

// Seed loads the static facility catalog and a default admin account.
// Idempotent: it does nothing once a building exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Building{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	buildings := []models.Building{
		{Name: "Edificio Principal", Code: "EP"},
		{Name: "Edificio Norte", Code: "EN"},
		{Name: "Edificio Sur", Code: "ES"},
	}
	if err := db.Create(&buildings).Error; err != nil {
		return err
	}

	floors := []models.Floor{
		{BuildingID: buildings[0].ID, FloorNumber: 1, Name: "Planta Baja"},
		{BuildingID: buildings[0].ID, FloorNumber: 2, Name: "Primer Piso"},
		{BuildingID: buildings[0].ID, FloorNumber: 3, Name: "Segundo Piso"},
	}
	if err := db.Create(&floors).Error; err != nil {
		return err
	}

	bathrooms := []models.Bathroom{
		{FloorID: floors[0].ID, Gender: "men", Name: "Baño Hombres PB - EP"},
		{FloorID: floors[0].ID, Gender: "women", Name: "Baño Mujeres PB - EP"},
		{FloorID: floors[1].ID, Gender: "men", Name: "Baño Hombres P1 - EP"},
		{FloorID: floors[1].ID, Gender: "women", Name: "Baño Mujeres P1 - EP"},
	}
	if err := db.Create(&bathrooms).Error; err != nil {
		return err
	}

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "changeme123"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		FullName: "Administrador Principal",
		Email:    "admin@institucion.edu",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Seeded facility catalog (%d buildings, %d floors, %d bathrooms) and default admin",
		len(buildings), len(floors), len(bathrooms))
	return nil
}
