package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dmorales/restroom-app/config"
	"github.com/dmorales/restroom-app/controllers"
	"github.com/dmorales/restroom-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Uploaded evidence is served straight off disk.
	r.Static("/uploads/evidence", config.UploadDir())

	userCtrl := controllers.NewUserController(db)
	passwordCtrl := controllers.NewPasswordController(db)
	facilityCtrl := controllers.NewFacilityController(db)
	activityCtrl := controllers.NewCleaningActivityController(db)
	incidentCtrl := controllers.NewIncidentController(db)
	uploadCtrl := controllers.NewUploadController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/auth")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
		public.POST("/forgot-password", passwordCtrl.ForgotPassword)
		public.POST("/reset-password", passwordCtrl.ResetPassword)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/auth/me", userCtrl.GetProfile)
	auth.POST("/auth/logout", userCtrl.Logout)

	// FACILITY CATALOG (read)
	auth.GET("/buildings", facilityCtrl.GetAllBuildings)
	auth.GET("/floors", facilityCtrl.GetFloors)
	auth.GET("/bathrooms", facilityCtrl.GetAllBathrooms)

	// CLEANING ACTIVITIES (staff submit, admin sees all)
	auth.GET("/cleaning-activities", activityCtrl.GetAllCleaningActivities)
	auth.POST("/cleaning-activities", activityCtrl.CreateCleaningActivity)
	auth.GET("/cleaning-activities/:activity_id", activityCtrl.GetCleaningActivityByID)

	// INCIDENTS
	auth.GET("/incidents", incidentCtrl.GetAllIncidents)
	auth.POST("/incidents", incidentCtrl.CreateIncident)
	auth.GET("/incidents/:incident_id", incidentCtrl.GetIncidentByID)

	// EVIDENCE UPLOAD
	auth.POST("/upload", uploadCtrl.UploadEvidence)
	auth.DELETE("/upload/:public_id", uploadCtrl.DeleteEvidence)

	// NOTIFICATIONS
	auth.GET("/notifications", notificationCtrl.GetMyNotifications)
	auth.PATCH("/notifications/:notif_id/read", notificationCtrl.MarkNotificationRead)

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())

	admin.PUT("/incidents/:incident_id/status", incidentCtrl.UpdateIncidentStatus)
	admin.PUT("/incidents/:incident_id", incidentCtrl.UpdateIncident)
	admin.DELETE("/incidents/:incident_id", incidentCtrl.DeleteIncident)

	admin.GET("/users", userCtrl.GetAllUsers)
	admin.DELETE("/users/:user_id", userCtrl.DeleteUser)

	admin.POST("/buildings", facilityCtrl.CreateBuilding)
	admin.POST("/floors", facilityCtrl.CreateFloor)
	admin.POST("/bathrooms", facilityCtrl.CreateBathroom)

	admin.GET("/admin/dashboard/stats", adminCtrl.GetDashboardStats)

	return r
}
