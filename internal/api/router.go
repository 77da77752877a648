package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mentorhub/mentorship-api/internal/api/handler"
	"github.com/mentorhub/mentorship-api/internal/api/middleware"
	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/policy"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
	"github.com/mentorhub/mentorship-api/internal/core/service"
	"github.com/mentorhub/mentorship-api/internal/infrastructure/config"
	mongorepo "github.com/mentorhub/mentorship-api/internal/infrastructure/db/mongo"
	redisdedup "github.com/mentorhub/mentorship-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The notifier is injected separately because its worker pool is started and
// stopped by main, not by the router.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	gateway ports.PaymentGateway,
	notifier ports.Notifier,
	notifications ports.NotificationService,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("mentorship"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	bookingRepo := mongorepo.NewBookingRepository(db)
	offeringRepo := mongorepo.NewOfferingRepository(db)
	postRepo := mongorepo.NewPostRepository(db)
	subRepo := mongorepo.NewSubscriptionRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	roleService := service.NewRoleService(userRepo, log)
	offeringService := service.NewOfferingService(offeringRepo, userRepo, log)
	postService := service.NewPostService(postRepo, log)
	adminService := service.NewAdminService(userRepo, bookingRepo, subRepo, notifier, log)
	bookingService := service.NewBookingService(
		bookingRepo, offeringRepo, userRepo, subRepo,
		gateway, redisdedup.NewWebhookDedup(rdb), notifier, log,
	)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, roleService, userRepo)
	bookingHandler := handler.NewBookingHandler(bookingService)
	paymentHandler := handler.NewPaymentHandler(bookingService, log)
	offeringHandler := handler.NewOfferingHandler(offeringService)
	mentorHandler := handler.NewMentorHandler(offeringService)
	adminHandler := handler.NewAdminHandler(adminService)
	postHandler := handler.NewPostHandler(postService)
	notificationHandler := handler.NewNotificationHandler(notifications)
	dashboardHandler := handler.NewDashboardHandler()

	authMW := middleware.Auth(cfg.JWTSecret)
	requireAdmin := middleware.RequireRole(roleService, domain.RoleAdmin)
	requireMentor := middleware.RequireRole(roleService, domain.RoleMentor, domain.RoleAdmin)
	requireMember := middleware.RequireRole(roleService,
		domain.RoleMentee, domain.RolePendingMentor, domain.RoleMentor, domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)
	e.GET("/v1/mentors", mentorHandler.List)
	e.GET("/v1/mentors/:id", mentorHandler.Get)
	e.GET("/v1/offerings", offeringHandler.List)
	e.GET("/v1/offerings/:id", offeringHandler.Get)
	e.GET("/v1/posts", postHandler.List)
	e.GET("/v1/posts/:id", postHandler.Get)
	e.GET("/v1/posts/:id/comments", postHandler.Comments)

	// The gateway calls back unauthenticated.
	e.POST("/v1/payments/webhook", paymentHandler.Webhook)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authMW)
	v1.GET("/auth/me", authHandler.Me)

	v1.POST("/bookings", bookingHandler.Create, requireMember)
	v1.GET("/bookings", bookingHandler.List, requireMember)
	v1.GET("/bookings/:id", bookingHandler.Get, requireMember)
	v1.DELETE("/bookings/:id", bookingHandler.Cancel, requireMember)

	v1.POST("/payments/orders", paymentHandler.CreateOrder, requireMember)
	v1.POST("/payments/verify", paymentHandler.Verify, requireMember)

	v1.POST("/offerings", offeringHandler.Create, requireMentor)
	v1.PUT("/offerings/:id", offeringHandler.Update, requireMentor)

	// Publishing is mentor/admin only; edits stay author-scoped in the service.
	v1.POST("/posts", postHandler.Create, requireMentor)
	v1.PUT("/posts/:id", postHandler.Update, requireMember)
	v1.DELETE("/posts/:id", postHandler.Delete, requireMember)
	v1.POST("/posts/:id/comments", postHandler.Comment, requireMember)
	v1.POST("/posts/:id/likes", postHandler.Like, requireMember)

	v1.GET("/notifications", notificationHandler.List, requireMember)
	v1.POST("/notifications/:id/read", notificationHandler.MarkRead, requireMember)

	admin := v1.Group("/admin", requireAdmin)
	admin.GET("/mentors", adminHandler.ListApplications)
	admin.POST("/mentors/:id/approve", adminHandler.ApproveMentor)
	admin.POST("/mentors/:id/reject", adminHandler.RejectMentor)
	admin.GET("/bookings", adminHandler.ListBookings)
	admin.GET("/subscriptions", adminHandler.ListSubscriptions)

	// --- Dashboard shell behind the authorization gate ---
	table := policy.Default()
	gate := middleware.Gate(cfg.JWTSecret, table, roleService, log)
	dashboard := e.Group("/dashboard", gate)
	dashboard.GET("", dashboardHandler.Section("root"))
	dashboard.GET("/admin*", dashboardHandler.Section("admin"))
	dashboard.GET("/mentor*", dashboardHandler.Section("mentor"))
	dashboard.GET("/mentee*", dashboardHandler.Section("mentee"))
	dashboard.GET("/profile", dashboardHandler.Section("profile"))
	dashboard.GET("/settings", dashboardHandler.Section("settings"))
	dashboard.GET("/blog*", dashboardHandler.Section("blog"))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
