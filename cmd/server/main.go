package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campushq/faculty-api/api/swagger"
	"github.com/campushq/faculty-api/internal/handler"
	"github.com/campushq/faculty-api/internal/middleware"
	"github.com/campushq/faculty-api/internal/models"
	"github.com/campushq/faculty-api/internal/repository"
	"github.com/campushq/faculty-api/internal/service"
	"github.com/campushq/faculty-api/pkg/cache"
	"github.com/campushq/faculty-api/pkg/config"
	"github.com/campushq/faculty-api/pkg/database"
	"github.com/campushq/faculty-api/pkg/logger"
	"github.com/campushq/faculty-api/pkg/mailer"
	corsmiddleware "github.com/campushq/faculty-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campushq/faculty-api/pkg/middleware/requestid"
	"github.com/campushq/faculty-api/pkg/report"
)

// @title Faculty Portal API
// @version 1.0.0
// @description Faculty information management backend with report exports
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, lookup caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	adminRepo := repository.NewAdminRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	recordRepo := repository.NewRecordRepository(db)

	credentialMail := mailer.NewSendgrid(cfg.Mail, logr)

	authSvc := service.NewAuthService(adminRepo, facultyRepo, validate, logr, cfg.JWT)
	facultySvc := service.NewFacultyService(facultyRepo, recordRepo, credentialMail, validate, logr)
	directorySvc := service.NewDirectoryService(facultyRepo, recordRepo, redisClient, cfg.Lookups.CacheTTL, logr)
	exportSvc := service.NewExportService(facultySvc, directorySvc, report.NewPDFCompiler(), report.NewWorkbookCompiler(), logr)
	metricsSvc := service.NewMetricsService()

	authHandler := handler.NewAuthHandler(authSvc)
	adminHandler := handler.NewAdminHandler(directorySvc, facultySvc, exportSvc, metricsSvc)
	facultyHandler := handler.NewFacultyHandler(facultySvc, exportSvc, metricsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Scrape)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
		auth.POST("/change-password", middleware.JWT(authSvc), authHandler.ChangePassword)
	}

	admin := api.Group("/admin", middleware.JWT(authSvc), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/faculty", adminHandler.ListFaculty)
		admin.POST("/faculty", adminHandler.CreateFaculty)
		admin.GET("/faculty/:id", adminHandler.GetFaculty)
		admin.PATCH("/faculty/:id/active", adminHandler.SetFacultyActive)
		admin.GET("/faculty/:id/export/pdf", adminHandler.ExportFacultyPDF)
		admin.GET("/export/xlsx", adminHandler.ExportRosterWorkbook)
		admin.GET("/export/summary-pdf", adminHandler.ExportRosterSummaryPDF)
		admin.GET("/lookups/academic-years", adminHandler.AcademicYears)
		admin.GET("/lookups/departments", adminHandler.Departments)
	}

	faculty := api.Group("/faculty", middleware.JWT(authSvc), middleware.RequireRole(models.RoleFaculty))
	{
		faculty.GET("/profile", facultyHandler.GetProfile)
		faculty.PUT("/profile", facultyHandler.SaveProfile)
		faculty.GET("/records", facultyHandler.AllRecords)
		faculty.GET("/export/pdf", facultyHandler.ExportMyPDF)

		faculty.GET("/publications", facultyHandler.ListPublications)
		faculty.POST("/publications", facultyHandler.AddPublication)
		faculty.DELETE("/publications/:id", facultyHandler.DeletePublication)

		faculty.GET("/book-publications", facultyHandler.ListBookPublications)
		faculty.POST("/book-publications", facultyHandler.AddBookPublication)
		faculty.DELETE("/book-publications/:id", facultyHandler.DeleteBookPublication)

		faculty.GET("/awards", facultyHandler.ListAwards)
		faculty.POST("/awards", facultyHandler.AddAward)
		faculty.DELETE("/awards/:id", facultyHandler.DeleteAward)

		faculty.GET("/research-projects", facultyHandler.ListResearchProjects)
		faculty.POST("/research-projects", facultyHandler.AddResearchProject)
		faculty.DELETE("/research-projects/:id", facultyHandler.DeleteResearchProject)

		faculty.GET("/patents", facultyHandler.ListPatents)
		faculty.POST("/patents", facultyHandler.AddPatent)
		faculty.DELETE("/patents/:id", facultyHandler.DeletePatent)

		faculty.GET("/conferences", facultyHandler.ListConferences)
		faculty.POST("/conferences", facultyHandler.AddConference)
		faculty.DELETE("/conferences/:id", facultyHandler.DeleteConference)

		faculty.GET("/seminars", facultyHandler.ListSeminars)
		faculty.POST("/seminars", facultyHandler.AddSeminar)
		faculty.DELETE("/seminars/:id", facultyHandler.DeleteSeminar)

		faculty.GET("/lectures", facultyHandler.ListLectures)
		faculty.POST("/lectures", facultyHandler.AddLecture)
		faculty.DELETE("/lectures/:id", facultyHandler.DeleteLecture)

		faculty.GET("/memberships", facultyHandler.ListMemberships)
		faculty.POST("/memberships", facultyHandler.AddMembership)
		faculty.DELETE("/memberships/:id", facultyHandler.DeleteMembership)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
