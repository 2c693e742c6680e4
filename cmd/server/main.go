package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/miles-brown/The-Words-Record-sub005/internal/audit"
	"github.com/miles-brown/The-Words-Record-sub005/internal/config"
	"github.com/miles-brown/The-Words-Record-sub005/internal/handler"
	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
	"github.com/miles-brown/The-Words-Record-sub005/internal/notify"
	"github.com/miles-brown/The-Words-Record-sub005/internal/router"
	"github.com/miles-brown/The-Words-Record-sub005/internal/service"
	"github.com/miles-brown/The-Words-Record-sub005/internal/worker"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// Load .env for local development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	// Load config
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Database
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&model.User{},
		&model.Person{},
		&model.Organization{},
		&model.Case{},
		&model.Statement{},
		&model.Source{},
		&model.Repercussion{},
		&model.OperationLog{},
		&model.IntegrationSetting{},
	); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Audit sink
	auditor := audit.NewDBRecorder(db)

	// Notifier
	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.Notify.Enabled && len(cfg.Notify.URLs) > 0 {
		n, err := notify.NewShoutrrrNotifier(cfg.Notify.URLs...)
		if err != nil {
			log.Fatalf("init notifier: %v", err)
		}
		notifier = n
	}

	// Worker pool for cron scans
	pool := worker.NewPool(cfg.Cron.MaxWorkers)
	defer pool.Shutdown()

	// Services
	authService := service.NewAuthService(db, cfg.JWT.Secret, cfg.JWT.ExpireHours)
	stmtService := service.NewStatementService(db)
	caseService := service.NewCaseService(db)
	qualService := service.NewQualificationService(db)
	promService := service.NewPromotionService(db, auditor, notifier)
	autoPromote := service.NewAutoPromotionService(db, pool, auditor, notifier)
	viewService := service.NewViewService(db, rdb)
	settingService := service.NewSettingService(db, cfg.Encrypt.AESKey)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	stmtHandler := handler.NewStatementHandler(stmtService, viewService)
	caseHandler := handler.NewCaseHandler(caseService)
	promHandler := handler.NewPromotionHandler(qualService, promService)
	cronHandler := handler.NewCronHandler(autoPromote, viewService)
	dashHandler := handler.NewDashboardHandler(db)
	settingHandler := handler.NewSettingHandler(settingService)

	// Gin engine
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// Setup routes
	router.Setup(r, router.Deps{
		DB:               db,
		JWTSecret:        cfg.JWT.Secret,
		CronSecret:       cfg.Cron.Secret,
		AuthHandler:      authHandler,
		UserHandler:      userHandler,
		StatementHandler: stmtHandler,
		CaseHandler:      caseHandler,
		PromotionHandler: promHandler,
		CronHandler:      cronHandler,
		DashboardHandler: dashHandler,
		SettingHandler:   settingHandler,
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
