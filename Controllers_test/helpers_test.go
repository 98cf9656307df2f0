package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dmorales/restroom-app/models"
	"github.com/dmorales/restroom-app/utils"
)

// setupTestDB opens an in-memory SQLite database with the full schema and a
// seeded facility catalog plus three accounts: admin (1), two cleaners (2, 3).
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Building{},
		&models.Floor{},
		&models.Bathroom{},
		&models.CleaningActivity{},
		&models.Incident{},
		&models.Notification{},
		&models.EvidenceFile{},
		&models.PasswordReset{},
	)
	require.NoError(t, err)

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	users := []models.User{
		{FullName: "Administrador Principal", Email: "admin@institucion.edu", Password: string(hashed), Role: models.RoleAdmin},
		{FullName: "María García", Email: "maria.garcia@institucion.edu", Password: string(hashed), Role: models.RoleCleaningStaff},
		{FullName: "Juan Pérez", Email: "juan.perez@institucion.edu", Password: string(hashed), Role: models.RoleCleaningStaff},
	}
	require.NoError(t, db.Create(&users).Error)

	building := models.Building{Name: "Edificio Principal", Code: "EP"}
	require.NoError(t, db.Create(&building).Error)
	floor := models.Floor{BuildingID: building.ID, FloorNumber: 1, Name: "Planta Baja"}
	require.NoError(t, db.Create(&floor).Error)
	bathrooms := []models.Bathroom{
		{FloorID: floor.ID, Gender: "men", Name: "Baño Hombres PB - EP"},
		{FloorID: floor.ID, Gender: "women", Name: "Baño Mujeres PB - EP"},
		{FloorID: floor.ID, Gender: "men", Name: "Baño Hombres P1 - EP"},
	}
	require.NoError(t, db.Create(&bathrooms).Error)

	return db
}

// authAs fakes what AuthMiddleware puts on the context, so controller tests
// can exercise handlers without minting tokens.
func authAs(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	resp := decodeResponse(t, w)
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}
