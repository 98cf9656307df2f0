package Controllers_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dmorales/restroom-app/controllers"
	"github.com/dmorales/restroom-app/models"
)

func setupActivityRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	router := gin.New()
	activityCtrl := controllers.NewCleaningActivityController(db)
	router.Use(authAs(userID, role))
	router.POST("/cleaning-activities", activityCtrl.CreateCleaningActivity)
	router.GET("/cleaning-activities", activityCtrl.GetAllCleaningActivities)
	router.GET("/cleaning-activities/:activity_id", activityCtrl.GetCleaningActivityByID)
	return router
}

func TestCreateAndGetCleaningActivity(t *testing.T) {
	db := setupTestDB(t)
	router := setupActivityRouter(db, 2, models.RoleCleaningStaff)

	w := doJSON(t, router, "POST", "/cleaning-activities", map[string]interface{}{
		"bathroom_id":        1,
		"areas_cleaned":      []string{"toilets", "sinks", "floors"},
		"supplies_restocked": []string{"soap", "toilet_paper"},
		"observations":       "Todo en orden",
		"photos":             []string{"http://localhost:8080/uploads/evidence/abc.jpg"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := dataField(t, w)
	activityID := int(data["id"].(float64))
	assert.Equal(t, float64(2), data["user_id"])

	w = doJSON(t, router, "GET", "/cleaning-activities/"+strconv.Itoa(activityID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = dataField(t, w)
	areas := data["areas_cleaned"].([]interface{})
	assert.Len(t, areas, 3)
	photos := data["photos"].([]interface{})
	assert.Equal(t, "http://localhost:8080/uploads/evidence/abc.jpg", photos[0])
}

func TestCreateActivityRequiresAreasAndSupplies(t *testing.T) {
	db := setupTestDB(t)
	router := setupActivityRouter(db, 2, models.RoleCleaningStaff)

	// No areas
	w := doJSON(t, router, "POST", "/cleaning-activities", map[string]interface{}{
		"bathroom_id":        1,
		"areas_cleaned":      []string{},
		"supplies_restocked": []string{"soap"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// No supplies
	w = doJSON(t, router, "POST", "/cleaning-activities", map[string]interface{}{
		"bathroom_id":        1,
		"areas_cleaned":      []string{"toilets"},
		"supplies_restocked": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.CleaningActivity{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateActivityUnknownTagRejected(t *testing.T) {
	db := setupTestDB(t)
	router := setupActivityRouter(db, 2, models.RoleCleaningStaff)

	w := doJSON(t, router, "POST", "/cleaning-activities", map[string]interface{}{
		"bathroom_id":        1,
		"areas_cleaned":      []string{"toilets", "ceiling"},
		"supplies_restocked": []string{"soap"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateActivityUnknownBathroom(t *testing.T) {
	db := setupTestDB(t)
	router := setupActivityRouter(db, 2, models.RoleCleaningStaff)

	w := doJSON(t, router, "POST", "/cleaning-activities", map[string]interface{}{
		"bathroom_id":        999,
		"areas_cleaned":      []string{"toilets"},
		"supplies_restocked": []string{"soap"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Staff only see their own history; admins see everyone's.
func TestActivityListingScopedByRole(t *testing.T) {
	db := setupTestDB(t)

	maria := setupActivityRouter(db, 2, models.RoleCleaningStaff)
	juan := setupActivityRouter(db, 3, models.RoleCleaningStaff)
	admin := setupActivityRouter(db, 1, models.RoleAdmin)

	payload := map[string]interface{}{
		"bathroom_id":        1,
		"areas_cleaned":      []string{"sinks"},
		"supplies_restocked": []string{"paper_towels"},
	}
	require.Equal(t, http.StatusCreated, doJSON(t, maria, "POST", "/cleaning-activities", payload).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, juan, "POST", "/cleaning-activities", payload).Code)

	w := doJSON(t, maria, "GET", "/cleaning-activities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w)["data"].([]interface{}), 1)

	w = doJSON(t, admin, "GET", "/cleaning-activities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w)["data"].([]interface{}), 2)
}

func TestActivityDetailForbiddenForOtherStaff(t *testing.T) {
	db := setupTestDB(t)

	maria := setupActivityRouter(db, 2, models.RoleCleaningStaff)
	juan := setupActivityRouter(db, 3, models.RoleCleaningStaff)

	w := doJSON(t, maria, "POST", "/cleaning-activities", map[string]interface{}{
		"bathroom_id":        1,
		"areas_cleaned":      []string{"mirrors"},
		"supplies_restocked": []string{"soap"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	activityID := int(dataField(t, w)["id"].(float64))

	w = doJSON(t, juan, "GET", "/cleaning-activities/"+strconv.Itoa(activityID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
