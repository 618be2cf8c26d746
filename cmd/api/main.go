package main

import (
	"log"
	"time"

	"github.com/gctplacement/placetrack-backend/internal/approval"
	"github.com/gctplacement/placetrack-backend/internal/config"
	"github.com/gctplacement/placetrack-backend/internal/database"
	"github.com/gctplacement/placetrack-backend/internal/handlers"
	"github.com/gctplacement/placetrack-backend/internal/middleware"
	"github.com/gctplacement/placetrack-backend/internal/otp"
	"github.com/gctplacement/placetrack-backend/internal/services"
	"github.com/gctplacement/placetrack-backend/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Redis is optional; without it OTP state lives in process memory.
	redisClient, err := services.InitRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	var otpStore otp.Store
	var otpLimiter otp.Limiter
	if redisClient != nil {
		otpStore = otp.NewRedisStore(redisClient, cfg.GCTEmailDomain, cfg.OTPTTL)
		otpLimiter = otp.NewRedisLimiter(redisClient, time.Minute, 3)
		log.Println("Using Redis-backed OTP store")
	} else {
		memStore := otp.NewMemoryStore(cfg.GCTEmailDomain, cfg.OTPTTL)
		otpStore = memStore
		otpLimiter = otp.NewMemoryLimiter(time.Minute, 3)
		go func() {
			for range time.Tick(time.Minute) {
				memStore.PurgeExpired()
			}
		}()
		log.Println("Redis not configured. Using in-memory OTP store")
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(cfg); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize WebSocket hub for the admin dashboard event stream
	hub := services.NewHub()
	go hub.Run()

	mailer := utils.NewMailer(cfg)
	sms := utils.NewSMSSender(cfg)
	mentorFlow := approval.NewService(
		database.NewAccountStore(db),
		mailer,
		database.NewMentorDirectory(db),
		hub,
	)

	// Initialize router
	r := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Serve locally stored uploads
	if !services.IsUsingS3() {
		r.Static("/uploads", cfg.UploadDir)
	}

	// Routes
	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/send-otp", handlers.SendOTP(otpStore, otpLimiter, mailer))
			auth.POST("/verify-otp", handlers.VerifyOTP(otpStore))
			auth.GET("/check-gct-email", handlers.CheckGCTEmail(cfg.GCTEmailDomain))
			auth.POST("/register", handlers.Register(db, mailer, hub, cfg.GCTEmailDomain))
			auth.POST("/login", handlers.Login(db, cfg.JWTSecret))
			auth.POST("/forgot-password", handlers.RequestPasswordReset(db, otpStore, otpLimiter, mailer, sms))
			auth.POST("/reset-password", handlers.ResetPassword(db, otpStore))
			auth.POST("/admin/login", handlers.AdminLogin(db, cfg.JWTSecret))

			// Mentor verification flow
			auth.POST("/mentors/send-verification-code", handlers.SendMentorVerificationCode(mentorFlow))
			auth.POST("/mentors/verify-code", handlers.VerifyMentorCode(mentorFlow))

			// One-click links from the admin notification email
			auth.GET("/admin/send-mentor-code", handlers.AdminSendMentorCode(mentorFlow))
			auth.GET("/mentors/approve-via-email", handlers.ApproveMentorViaEmail(mentorFlow))
			auth.GET("/mentors/reject-via-email", handlers.RejectMentorViaEmail(mentorFlow))
		}

		// Public directory and reference data
		api.GET("/mentors", handlers.GetAllMentors(db))
		api.GET("/mentors/department/:department", handlers.GetMentorsByDepartment(db))
		api.GET("/mentors/company/:company", handlers.GetMentorsByCompany(db))
		api.GET("/departments", handlers.GetDepartments(db))
		api.GET("/departments/groups", handlers.GetDepartmentGroups())
		api.GET("/departments/:id", handlers.GetDepartment(db))
		api.GET("/companies", handlers.GetCompanies(db))
		api.GET("/companies/:id", handlers.GetCompany(db))
		api.GET("/experiences", handlers.GetExperiences(db))
		api.GET("/experiences/:id", handlers.GetExperience(db))

		// Admin dashboard event stream
		api.GET("/ws/admin", middleware.AuthMiddleware(cfg.JWTSecret), handlers.AdminWebSocket(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
				users.POST("/convert-to-mentor", handlers.ConvertToMentor(db, database.NewMentorDirectory(db)))
			}

			experiences := protected.Group("/experiences")
			{
				experiences.POST("", handlers.CreateExperience(db))
				experiences.PUT("/:id", handlers.UpdateExperience(db))
				experiences.DELETE("/:id", handlers.DeleteExperience(db))
			}

			protected.POST("/uploads", handlers.UploadAttachment(cfg.MaxUploadSize))

			// Admin routes
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole("ADMIN"))
			{
				admin.GET("/mentors/pending", handlers.GetPendingMentors(db))
				admin.POST("/mentors/:id/send-code", handlers.SendMentorCode(mentorFlow))
				admin.PUT("/mentors/:id/approve", handlers.ApproveMentor(mentorFlow))
				admin.DELETE("/mentors/:id/reject", handlers.RejectMentor(mentorFlow))

				admin.GET("/users", handlers.GetAllUsers(db))
				admin.GET("/users/:id", handlers.GetUser(db))
				admin.PUT("/users/:id", handlers.UpdateUser(db))
				admin.DELETE("/users/:id", handlers.DeleteUser(db))
				admin.PATCH("/users/:id/toggle-status", handlers.ToggleUserStatus(db))

				admin.POST("/mentor-records", handlers.CreateMentorRecord(db))
				admin.PUT("/mentor-records/:id", handlers.UpdateMentorRecord(db))
				admin.DELETE("/mentor-records/:id", handlers.DeleteMentorRecord(db))

				admin.POST("/departments", handlers.CreateDepartment(db))
				admin.PUT("/departments/:id", handlers.UpdateDepartment(db))
				admin.DELETE("/departments/:id", handlers.DeleteDepartment(db))

				admin.POST("/companies", handlers.CreateCompany(db))
				admin.PUT("/companies/:id", handlers.UpdateCompany(db))
				admin.DELETE("/companies/:id", handlers.DeleteCompany(db))
			}
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
