package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mbiancareli/studio-manager/internal/audit"
	"github.com/mbiancareli/studio-manager/internal/config"
	"github.com/mbiancareli/studio-manager/internal/handlers"
	infraRepo "github.com/mbiancareli/studio-manager/internal/infra/repository"
	"github.com/mbiancareli/studio-manager/internal/lookup"
	"github.com/mbiancareli/studio-manager/internal/metrics"
	"github.com/mbiancareli/studio-manager/internal/middleware"
	"github.com/mbiancareli/studio-manager/internal/reminder"
	ucAppointment "github.com/mbiancareli/studio-manager/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) *reminder.Scheduler {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(metrics.Middleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	cache := lookup.NewCache(lookup.NewRedisClient(cfg.RedisAddr), log)
	viacep := lookup.NewViaCEPClient(cfg.ViaCEPBaseURL, cache, log)
	ibge := lookup.NewIBGEClient(cfg.IBGEBaseURL, cache, log)
	whatsapp := lookup.NewWhatsAppSender(
		cfg.TwilioAccountSID,
		cfg.TwilioAuthToken,
		cfg.TwilioWhatsAppFrom,
		log,
	)

	reminders := reminder.NewScheduler(db, whatsapp, cfg.ReminderCronSpec, log)

	// ======================================================
	// USE CASES (APPOINTMENTS)
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	removeAppointmentUC := ucAppointment.NewRemoveAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	upcomingAppointmentsUC := ucAppointment.NewUpcomingAppointments(appointmentRepo)
	todayEarningsUC := ucAppointment.NewTodayEarnings(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	financeHandler := handlers.NewFinanceHandler(db)
	insightsHandler := handlers.NewInsightsHandler(db)
	lookupHandler := handlers.NewLookupHandler(viacep, ibge, whatsapp)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		appointmentRepo,
		createAppointmentUC,
		updateAppointmentUC,
		removeAppointmentUC,
		listAppointmentsUC,
		upcomingAppointmentsUC,
		todayEarningsUC,
	)

	// ======================================================
	// OPERACIONAL
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PÚBLICA (diretórios externos)
		// ------------------------------
		external := api.Group("/external")
		{
			external.GET("/cep/:cep", lookupHandler.AddressByCEP)
			external.GET("/states", lookupHandler.States)
			external.GET("/cities/:stateId", lookupHandler.CitiesByState)
		}

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", userHandler.GetMe)
			secured.PATCH("/me", userHandler.UpdateMe)
			secured.PATCH("/me/password", userHandler.UpdatePassword)
			secured.PATCH("/me/whatsapp-messages", userHandler.UpdateWhatsAppMessages)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PATCH("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/upcoming", appointmentHandler.Upcoming)
			secured.GET("/appointments/today-earnings", appointmentHandler.TodayEarnings)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Remove)

			// ------------------------------
			// FINANCES
			// ------------------------------
			secured.POST("/finances", financeHandler.Create)
			secured.GET("/finances", financeHandler.List)
			secured.GET("/finances/summary", financeHandler.GetSummary)
			secured.GET("/finances/:id", financeHandler.Get)
			secured.PATCH("/finances/:id", financeHandler.Update)
			secured.DELETE("/finances/:id", financeHandler.Delete)

			// ------------------------------
			// INSIGHTS
			// ------------------------------
			secured.GET("/insights/client/:clientId", insightsHandler.ClientInsights)
			secured.GET("/insights/patterns", insightsHandler.Patterns)
			secured.GET("/insights/top-services", insightsHandler.TopServices)
			secured.GET("/insights/top-neighborhoods", insightsHandler.TopNeighborhoods)
			secured.GET("/insights/vip-clients", insightsHandler.VIPClients)

			// ------------------------------
			// WHATSAPP
			// ------------------------------
			secured.POST("/external/whatsapp/generate-link", lookupHandler.GenerateWhatsAppLink)
			secured.POST("/external/whatsapp/send", lookupHandler.SendWhatsAppMessage)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return reminders
}
