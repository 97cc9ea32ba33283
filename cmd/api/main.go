// @title           Engage API
// @version         1.0
// @description     API de comercio y atención al cliente: inventario, órdenes, ofertas, soporte, agentes de IA, comunicaciones, analítica e integraciones.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
// @description     "Bearer <access_token>"
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/engage-api/docs"
	"github.com/jhoicas/engage-api/internal/application/ai"
	appanalytics "github.com/jhoicas/engage-api/internal/application/analytics"
	"github.com/jhoicas/engage-api/internal/application/auth"
	"github.com/jhoicas/engage-api/internal/application/communication"
	"github.com/jhoicas/engage-api/internal/application/integrations"
	"github.com/jhoicas/engage-api/internal/application/inventory"
	"github.com/jhoicas/engage-api/internal/application/offers"
	"github.com/jhoicas/engage-api/internal/application/orders"
	"github.com/jhoicas/engage-api/internal/application/ports"
	"github.com/jhoicas/engage-api/internal/application/search"
	"github.com/jhoicas/engage-api/internal/application/support"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	infraai "github.com/jhoicas/engage-api/internal/infrastructure/ai"
	"github.com/jhoicas/engage-api/internal/infrastructure/connectivity"
	"github.com/jhoicas/engage-api/internal/infrastructure/feed"
	"github.com/jhoicas/engage-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/engage-api/internal/infrastructure/pdf"
	"github.com/jhoicas/engage-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/engage-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/engage-api/internal/interfaces/http"
	"github.com/jhoicas/engage-api/pkg/config"
	"github.com/jhoicas/engage-api/pkg/logger"
	"github.com/jhoicas/engage-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, "up"); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	// Revocación de tokens: Redis si está configurado, si no en memoria (un solo proceso).
	var revoker ports.TokenRevoker
	healthChecks := []httpRouter.HealthCheck{{Name: "postgres", Ping: pool.Ping}}
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		r := infraredis.NewRevoker(client)
		defer r.Close()
		revoker = r
		healthChecks = append(healthChecks, httpRouter.HealthCheck{Name: "redis", Ping: r.Ping})
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: revocación de tokens en memoria")
		revoker = infraredis.NewMemoryRevoker()
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	offerRepo := postgres.NewOfferRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)
	faqRepo := postgres.NewFAQRepository(pool)
	agentRepo := postgres.NewAIAgentRepository(pool)
	interactionRepo := postgres.NewAIInteractionRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	integrationRepo := postgres.NewIntegrationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Proveedores LLM: solo los que tienen clave; sin ninguno responde el placeholder.
	var anthropic, gemini ports.Responder
	if cfg.AI.AnthropicAPIKey != "" {
		anthropic = infraai.NewAnthropicResponder(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	}
	if cfg.AI.GeminiAPIKey != "" {
		gemini = infraai.NewGeminiResponder(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	}

	var emailNotifier ports.Notifier
	if cfg.SMTP.Enabled() {
		emailNotifier = notify.NewEmailNotifier(cfg.SMTP, log.Component("notify.email"))
	} else {
		emailNotifier = notify.NewLogNotifier(entity.ChannelEmail, entity.MessageStatusSent, log.Component("notify.email"))
	}
	notifiers := communication.Notifiers{
		Call:   notify.NewLogNotifier(entity.ChannelCall, entity.MessageStatusInitiated, log.Component("notify.call")),
		SMS:    notify.NewLogNotifier(entity.ChannelSMS, entity.MessageStatusSent, log.Component("notify.sms")),
		Email:  emailNotifier,
		Social: notify.NewLogNotifier("social", entity.MessageStatusSent, log.Component("notify.social")),
	}

	authUC := auth.NewAuthUseCase(userRepo, revoker, auth.JWTConfig{
		Secret:            cfg.JWT.Secret,
		RefreshSecret:     cfg.JWT.RefreshSecret,
		ExpMinutes:        cfg.JWT.Expiration,
		RefreshExpMinutes: cfg.JWT.RefreshExpiration,
		Issuer:            cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(cfg.App.IsProduction(), log.Component("http")),
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTP(reg)

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(httpRouter.Metrics(httpMetrics))
	app.Use(helmet.New(helmet.Config{CrossOriginEmbedderPolicy: "unsafe-none"}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, If-None-Match",
	}))
	app.Use(httpRouter.Timeout(cfg.HTTP.RequestTimeout))

	// Swagger UI: http://localhost:<port>/api-docs
	if _, err := os.Stat(cfg.HTTP.DocsFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsFile,
			Path:     "api-docs",
			Title:    "Engage API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.DocsFile).Msg("swagger.json no encontrado, /api-docs deshabilitado")
	}

	app.Get("/health", httpRouter.Health(cfg.App.Version, healthChecks...))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	loginLimiter := limiter.New(limiter.Config{
		Max:        cfg.HTTP.LoginRateLimit,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many login attempts, try again later")
		},
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		InventoryUC:     inventory.NewUseCase(productRepo, categoryRepo, movementRepo, txRunner),
		OrdersUC:        orders.NewUseCase(orderRepo, userRepo, txRunner, infrapdf.NewReceiptGenerator(cfg.App.Name)),
		OffersUC:        offers.NewUseCase(offerRepo, txRunner),
		SupportUC:       support.NewUseCase(ticketRepo, faqRepo, txRunner),
		AIUC:            ai.NewUseCase(agentRepo, interactionRepo, infraai.NewRouter(anthropic, gemini)),
		CommunicationUC: communication.NewUseCase(messageRepo, userRepo, notifiers, log.Component("communication")),
		AnalyticsUC:     appanalytics.NewAnalyticsUseCase(analyticsRepo),
		DashboardUC:     appanalytics.NewDashboardUseCase(analyticsRepo),
		SearchUC:        search.NewUseCase(productRepo, userRepo, orderRepo),
		IntegrationsUC: integrations.NewUseCase(
			integrationRepo, productRepo,
			connectivity.NewHTTPChecker(connectivity.DefaultTimeout), feed.NewBuilder(),
		),
		LoginLimiter: loginLimiter,
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
