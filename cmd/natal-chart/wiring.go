package main

import (
	"log/slog"
	"path/filepath"

	"natal-chart/config"
	"natal-chart/internal/adapter/gateway"
	adapterhandler "natal-chart/internal/adapter/handler"
	"natal-chart/internal/domain"
	"natal-chart/internal/infrastructure/catalog"
	"natal-chart/internal/infrastructure/svg"
	"natal-chart/internal/infrastructure/wheel"
	"natal-chart/internal/usecase"
	appmiddleware "natal-chart/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

// services are the usecases shared by the server and the render command.
type services struct {
	generate    *usecase.GenerateChart
	backgrounds *usecase.ListBackgrounds
	catalog     domain.BackgroundCatalog
}

// newRenderer picks the external chart service when one is configured and
// the built-in wheel otherwise.
func newRenderer(cfg *config.Config, log *slog.Logger) domain.ChartRenderer {
	if cfg.ChartServiceURL == "" {
		log.Info("no chart service configured, using built-in wheel renderer")
		return wheel.NewRenderer()
	}
	return gateway.NewChartServiceGateway(cfg.ChartServiceURL, cfg.ChartServiceToken, wheel.HouseColors[:], cfg.ChartServiceTimeout)
}

func newServices(cfg *config.Config, log *slog.Logger) services {
	backgroundCatalog := catalog.NewFileCatalog(cfg.BackgroundsFile, cfg.BackgroundsURLPrefix, cfg.CatalogTTL)
	decorator := svg.NewDecorator(svg.NewXMLExtractor(), cfg.DefaultBackground, log)

	defaults := usecase.ChartDefaults{
		Mode:  cfg.Variant,
		Width: cfg.DefaultWidth,
	}
	if cfg.Variant == domain.ModeFramed {
		defaults.BackgroundHref = cfg.DefaultBackground
	}

	return services{
		generate:    usecase.NewGenerateChart(newRenderer(cfg, log), decorator, backgroundCatalog, defaults, log),
		backgrounds: usecase.NewListBackgrounds(backgroundCatalog, log),
		catalog:     backgroundCatalog,
	}
}

// server is the configured echo instance plus resources to release on exit.
type server struct {
	echo    *echo.Echo
	limiter *appmiddleware.RateLimiter
}

// Close releases background resources.
func (s *server) Close() {
	s.limiter.Close()
}

func newServer(cfg *config.Config, tracing bool, serviceName string, log *slog.Logger) *server {
	svc := newServices(cfg, log)

	chartHandler := adapterhandler.NewChartHandler(svc.generate)
	backgroundsHandler := adapterhandler.NewBackgroundsHandler(svc.backgrounds)
	healthHandler := adapterhandler.NewHealthHandler(svc.catalog)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = adapterhandler.NewRequestValidator()
	e.HTTPErrorHandler = appmiddleware.CustomHTTPErrorHandler(log)

	e.Use(appmiddleware.RequestID())
	e.Use(appmiddleware.SecurityHeaders())

	if tracing {
		e.Use(otelecho.Middleware(serviceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return p == "/health" || p == "/metrics"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				log.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				log.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())

	chartRL := appmiddleware.NewRateLimiter(appmiddleware.PerMinute(cfg.ChartRatePerMinute), cfg.ChartRateBurst)

	e.File("/", filepath.Join(cfg.TemplatesDir, "index.html"))
	e.Static("/static", cfg.StaticDir)
	e.GET("/api/backgrounds", backgroundsHandler.Handle)
	e.POST("/generar_carta_natal", chartHandler.Handle, chartRL.Middleware())
	e.GET("/health", healthHandler.Handle)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return &server{echo: e, limiter: chartRL}
}
