package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/brightpath-academy/institute-api/api/swagger"
	"github.com/brightpath-academy/institute-api/internal/handler"
	"github.com/brightpath-academy/institute-api/internal/middleware"
	"github.com/brightpath-academy/institute-api/internal/models"
	"github.com/brightpath-academy/institute-api/internal/repository"
	"github.com/brightpath-academy/institute-api/internal/service"
	"github.com/brightpath-academy/institute-api/pkg/cache"
	"github.com/brightpath-academy/institute-api/pkg/config"
	"github.com/brightpath-academy/institute-api/pkg/database"
	"github.com/brightpath-academy/institute-api/pkg/jobs"
	"github.com/brightpath-academy/institute-api/pkg/logger"
	corsmiddleware "github.com/brightpath-academy/institute-api/pkg/middleware/cors"
	reqidmiddleware "github.com/brightpath-academy/institute-api/pkg/middleware/requestid"
	"github.com/brightpath-academy/institute-api/pkg/storage"
)

// @title BrightPath Institute API
// @version 1.0.0
// @description Marketing and lead-generation backend for the BrightPath Academy website
// @BasePath /api/v1
// @schemes http

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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	if err := database.Migrate(db); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}

	// Redis is optional: the site keeps serving from Postgres when the
	// cache is down, just slower.
	var cacheRepo service.CacheRepository
	cacheEnabled := cfg.Cache.Enabled
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		cacheEnabled = false
	} else {
		repo := repository.NewCacheRepository(redisClient, logr)
		defer repo.Close() //nolint:errcheck
		cacheRepo = repo
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	validate := validator.New()
	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cacheEnabled)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)
	faqRepo := repository.NewFAQRepository(db)
	exportJobRepo := repository.NewExportJobRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	courseSvc := service.NewCourseService(courseRepo, cacheSvc, validate, logr)
	leadSvc := service.NewLeadService(leadRepo, metrics, validate, logr)
	quizSvc := service.NewQuizService(quizRepo, leadSvc, validate, logr)
	blogSvc := service.NewBlogService(blogRepo, cacheSvc, validate, logr)
	testimonialSvc := service.NewTestimonialService(testimonialRepo, cacheSvc, validate, logr)
	faqSvc := service.NewFAQService(faqRepo, cacheSvc, validate, logr)

	syllabusStore, err := storage.NewLocalStorage(cfg.Syllabus.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init syllabus storage", "error", err)
	}
	syllabusSigner := storage.NewSignedURLSigner(cfg.Syllabus.SignedURLSecret, cfg.Syllabus.SignedURLTTL)
	syllabusSvc := service.NewSyllabusService(courseRepo, leadSvc, syllabusStore, syllabusSigner, validate, logr, service.SyllabusConfig{
		APIPrefix:        cfg.APIPrefix,
		MaxFileSizeBytes: cfg.Syllabus.MaxFileSizeBytes,
	})

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	exportSigner := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exportSvc := service.NewExportService(leadRepo, exportStore, exportSigner, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, logr, nil, nil)

	exportWorker := service.NewExportWorker(exportJobRepo, exportSvc, metrics, cfg.Exports.WorkerRetries, logr)
	exportQueue := jobs.NewQueue("lead-exports", exportWorker.Handle, jobs.QueueConfig{
		Workers:    cfg.Exports.WorkerConcurrency,
		MaxRetries: cfg.Exports.WorkerRetries,
		Logger:     logr,
	})
	exportQueue.Start(ctx)
	defer exportQueue.Stop()

	exportJobSvc := service.NewExportJobService(exportJobRepo, exportQueue, exportSvc, validate, logr, service.ExportJobServiceConfig{
		ResultTTL:       cfg.Exports.SignedURLTTL,
		CleanupInterval: cfg.Exports.CleanupInterval,
		MaxRetries:      cfg.Exports.WorkerRetries,
	})
	exportJobSvc.StartCleanup(ctx)

	authHandler := handler.NewAuthHandler(authSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	quizHandler := handler.NewQuizHandler(quizSvc)
	leadHandler := handler.NewLeadHandler(leadSvc)
	blogHandler := handler.NewBlogHandler(blogSvc)
	testimonialHandler := handler.NewTestimonialHandler(testimonialSvc)
	faqHandler := handler.NewFAQHandler(faqSvc)
	syllabusHandler := handler.NewSyllabusHandler(syllabusSvc)
	exportHandler := handler.NewExportHandler(exportJobSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.GET("/courses", courseHandler.ListPublic)
	api.GET("/courses/:slug", courseHandler.GetBySlug)
	api.POST("/courses/:slug/syllabus", syllabusHandler.RequestDownload)
	api.GET("/courses/:slug/quiz", quizHandler.GetPublicByCourse)
	api.GET("/quizzes/:id", quizHandler.GetPublic)
	api.POST("/quizzes/:id/submit", quizHandler.Submit)
	api.POST("/leads", leadHandler.Capture)
	api.GET("/blog", blogHandler.ListPublic)
	api.GET("/blog/:slug", blogHandler.GetBySlug)
	api.GET("/testimonials", testimonialHandler.ListPublic)
	api.GET("/faqs", faqHandler.ListPublic)
	api.GET("/downloads/:token", syllabusHandler.Download)
	api.GET("/exports/:token", exportHandler.Download)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	authProtected := auth.Group("")
	authProtected.Use(middleware.JWT(authSvc))
	authProtected.POST("/logout", authHandler.Logout)
	authProtected.POST("/change-password", authHandler.ChangePassword)
	authProtected.GET("/me", authHandler.Me)

	admin := api.Group("/admin")
	admin.Use(middleware.JWT(authSvc))

	// Content management is open to editors; lead data and exports are
	// admin only.
	content := admin.Group("")
	content.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleEditor))
	content.Use(middleware.Audit(userRepo, "content"))
	content.GET("/courses", courseHandler.ListAll)
	content.POST("/courses", courseHandler.Create)
	content.GET("/courses/:id", courseHandler.Get)
	content.PUT("/courses/:id", courseHandler.Update)
	content.DELETE("/courses/:id", courseHandler.Delete)
	content.POST("/courses/:id/syllabus", syllabusHandler.Upload)
	content.GET("/quizzes", quizHandler.List)
	content.POST("/quizzes", quizHandler.Create)
	content.GET("/quizzes/:id", quizHandler.Get)
	content.PUT("/quizzes/:id", quizHandler.Update)
	content.DELETE("/quizzes/:id", quizHandler.Delete)
	content.GET("/blog", blogHandler.ListAll)
	content.POST("/blog", blogHandler.Create)
	content.GET("/blog/:id", blogHandler.Get)
	content.PUT("/blog/:id", blogHandler.Update)
	content.DELETE("/blog/:id", blogHandler.Delete)
	content.GET("/testimonials", testimonialHandler.ListAll)
	content.POST("/testimonials", testimonialHandler.Create)
	content.GET("/testimonials/:id", testimonialHandler.Get)
	content.PUT("/testimonials/:id", testimonialHandler.Update)
	content.DELETE("/testimonials/:id", testimonialHandler.Delete)
	content.GET("/faqs", faqHandler.ListAll)
	content.POST("/faqs", faqHandler.Create)
	content.GET("/faqs/:id", faqHandler.Get)
	content.PUT("/faqs/:id", faqHandler.Update)
	content.DELETE("/faqs/:id", faqHandler.Delete)

	adminOnly := admin.Group("")
	adminOnly.Use(middleware.RequireRoles(models.RoleAdmin))
	adminOnly.Use(middleware.Audit(userRepo, "leads"))
	adminOnly.GET("/leads", leadHandler.List)
	adminOnly.POST("/exports", exportHandler.Create)
	adminOnly.GET("/exports/:id", exportHandler.Status)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
