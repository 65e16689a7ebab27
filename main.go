package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"football-stats-api/handlers"
	"football-stats-api/logs"
	"football-stats-api/models"
	"football-stats-api/services"
	"football-stats-api/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logs.Log.Warn("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB — biggest payload is a club logo
		// Anything a handler didn't translate itself becomes a generic 500
		// so no query text or stack detail leaks to the client.
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				logs.Log.Errorf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
				return c.Status(code).JSON(fiber.Map{"message": "Internal Server Error"})
			}
			return c.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		logs.Log.Warn("⚠️  ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	originsList := strings.Split(allowedOrigins, ",")
	for i, origin := range originsList {
		originsList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(originsList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logs.Log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logs.Log.Fatal("failed to connect to database: ", err)
	}

	// The store is the only blocking resource — bound the pool.
	sqlDB, err := db.DB()
	if err != nil {
		logs.Log.Fatal("failed to access connection pool: ", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.AutoMigrate(
		&models.Country{},
		&models.City{},
		&models.Position{},
		&models.Club{},
		&models.Competition{},
		&models.Player{},
		&models.Match{},
		&models.Appearance{},
		&models.Transfer{},
		&models.PlayerCareer{},
		&models.User{},
		&models.Score{},
	); err != nil {
		logs.Log.Fatal("failed to migrate database: ", err)
	}

	if err := utils.InitMediaBucket(); err != nil {
		logs.Log.Warn("⚠️  media bucket not configured, uploads disabled: ", err)
	}

	authServiceURL := os.Getenv("AUTH_SERVICE_URL")
	if authServiceURL == "" {
		logs.Log.Fatal("AUTH_SERVICE_URL environment variable not set")
	}
	authServiceToken := os.Getenv("AUTH_SERVICE_TOKEN")
	verifier := services.NewIdentityClient(authServiceURL, authServiceToken)

	countryService := services.NewCountryService(db)
	cityService := services.NewCityService(db)
	positionService := services.NewPositionService(db)
	clubService := services.NewClubService(db)
	competitionService := services.NewCompetitionService(db)
	playerService := services.NewPlayerService(db)
	matchService := services.NewMatchService(db)
	appearanceService := services.NewAppearanceService(db)
	transferService := services.NewTransferService(db)
	careerService := services.NewCareerService(db)
	scoreService := services.NewScoreService(db)

	handlers.SetupCountryRoutes(app, countryService, cityService, verifier)
	handlers.SetupPlayerRoutes(app, playerService, positionService, verifier)
	handlers.SetupClubRoutes(app, clubService, verifier)
	handlers.SetupMatchRoutes(app, competitionService, matchService, appearanceService, verifier)
	handlers.SetupTransferRoutes(app, transferService, careerService, verifier)
	handlers.SetupScoreRoutes(app, scoreService, verifier)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			logs.Log.Errorf("Server error: %v", err)
		}
	}()

	logs.Log.Infof("✅ Server running on http://localhost:%s", port)
	logs.Log.Infof("✅ CORS configured for origins: %s", strings.Join(originsList, ","))

	<-ctx.Done()
	logs.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logs.Log.Errorf("Shutdown error: %v", err)
	}
}
