package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-crm/internal/audit"
	"github.com/BruksfildServices01/booking-crm/internal/config"
	"github.com/BruksfildServices01/booking-crm/internal/handlers"
	"github.com/BruksfildServices01/booking-crm/internal/middleware"
	"github.com/BruksfildServices01/booking-crm/internal/models"
	ucAppointment "github.com/BruksfildServices01/booking-crm/internal/usecase/appointment"
)

// Deps is everything the HTTP layer needs, built once in main.
type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Appointment ucAppointment.Deps
	AuditSink   audit.Sink
	ReadyChecks map[string]handlers.Check
	Log         *zap.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// ======================================================
	// HANDLERS
	// ======================================================
	health := handlers.NewHealthHandler(d.ReadyChecks)

	authHandler := handlers.NewAuthHandler(d.DB, d.Config)
	meHandler := handlers.NewMeHandler(d.DB)
	businessHandler := handlers.NewBusinessHandler(d.DB)
	serviceHandler := handlers.NewServiceHandler(d.DB)
	clientHandler := handlers.NewClientHandler(d.DB)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditSink)

	availabilityHandler := handlers.NewAvailabilityHandler(d.Appointment)
	appointmentHandler := handlers.NewAppointmentHandler(d.Appointment)
	publicHandler := handlers.NewPublicHandler(d.Appointment)

	r.GET("/health", health.Live)
	r.GET("/ready", health.Ready)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/available-slots", availabilityHandler.AvailableSlots)

		// ------------------------------
		// PUBLIC BOOKING PAGE
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(middleware.RateLimit(d.Config.PublicRatePerMin, d.Log))
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/available-slots", publicHandler.AvailableSlots)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// STAFF AREA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/business", businessHandler.GetMyBusiness)
			secured.PATCH("/me/business", middleware.RequireRole(models.RoleOwner), businessHandler.UpdateMyBusiness)

			secured.GET("/me/available-slots", availabilityHandler.MyAvailableSlots)

			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.GET("/me/clients/:id", clientHandler.Get)
			secured.PATCH("/me/clients/:id", clientHandler.Update)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", middleware.RequireRole(models.RoleOwner), serviceHandler.Create)
			secured.PATCH("/me/services/:id", middleware.RequireRole(models.RoleOwner), serviceHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", middleware.RequireRole(models.RoleOwner), workingHoursHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)
			secured.PATCH("/me/appointments/:id/payment", appointmentHandler.UpdatePayment)

			secured.GET("/me/audit-logs", middleware.RequireRole(models.RoleOwner), auditLogsHandler.List)
		}
	}
}
