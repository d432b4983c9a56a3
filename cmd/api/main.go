package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/protecta/crm-pro/internal/application/analytics"
	"github.com/protecta/crm-pro/internal/application/appointments"
	"github.com/protecta/crm-pro/internal/application/auth"
	"github.com/protecta/crm-pro/internal/application/leads"
	"github.com/protecta/crm-pro/internal/application/usecase"
	"github.com/protecta/crm-pro/internal/infrastructure/cache"
	"github.com/protecta/crm-pro/internal/infrastructure/postgres"
	httpRouter "github.com/protecta/crm-pro/internal/interfaces/http"
	"github.com/protecta/crm-pro/pkg/config"
	"github.com/protecta/crm-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Cache opcional: sin REDIS_ADDR el dashboard consulta siempre la BD.
	var dashboardCache appanalytics.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		dashboardCache = redisCache
	}

	userRepo := postgres.NewUserRepository(pool)
	orgRepo := postgres.NewOrganizationRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	apptRepo := postgres.NewAppointmentRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, orgRepo)
	orgUC := usecase.NewOrganizationUseCase(orgRepo, userRepo)
	teamUC := usecase.NewTeamUseCase(teamRepo, userRepo)
	leadUC := leads.NewLeadUseCase(txRunner, leadRepo, userRepo)
	appointmentUC := appointments.NewAppointmentUseCase(txRunner, apptRepo, leadRepo, nil)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, dashboardCache, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Protecta CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		OrgUC:         orgUC,
		TeamUC:        teamUC,
		LeadUC:        leadUC,
		AppointmentUC: appointmentUC,
		DashboardUC:   dashboardUC,
		UserRepo:      userRepo,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
