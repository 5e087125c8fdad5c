package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/shacklabs/house-gateway/internal/auth"
	"github.com/shacklabs/house-gateway/internal/contracts"
	"github.com/shacklabs/house-gateway/internal/eventbus"
	"github.com/shacklabs/house-gateway/internal/logging"
	"github.com/shacklabs/house-gateway/internal/middleware"
)

// RestServerConfig собирает зависимости HTTP шлюза
type RestServerConfig struct {
	Port      string
	UserRepo  auth.UserRepository
	Contracts *contracts.Set
	Revoker   auth.TokenRevoker
	Publisher eventbus.Publisher
	Precision int64
}

// RestServer обслуживает HTTP API шлюза: регистрацию, вход и
// игровые действия, транслируемые в транзакции контрактов
type RestServer struct {
	router    *gin.Engine
	server    *http.Server
	userRepo  auth.UserRepository
	contracts *contracts.Set
	revoker   auth.TokenRevoker
	publisher eventbus.Publisher
	precision int64
	port      string
	metrics   *ServerMetrics
	promMw    *middleware.PrometheusMiddleware
}

// NewRestServer создает REST сервер с настроенными маршрутами
func NewRestServer(cfg RestServerConfig) *RestServer {
	gin.SetMode(gin.ReleaseMode)

	publisher := cfg.Publisher
	if publisher == nil {
		publisher = eventbus.NoopPublisher{}
	}

	s := &RestServer{
		router:    gin.New(),
		userRepo:  cfg.UserRepo,
		contracts: cfg.Contracts,
		revoker:   cfg.Revoker,
		publisher: publisher,
		precision: cfg.Precision,
		port:      cfg.Port,
		metrics:   NewServerMetrics(),
		promMw:    middleware.NewPrometheusMiddleware("house_gateway"),
	}

	s.setupRoutes()
	return s
}

func (s *RestServer) setupRoutes() {
	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())
	s.router.Use(middleware.NewRequestLogger().Handler())
	s.router.Use(otelgin.Middleware("house-gateway"))
	s.router.Use(s.promMw.Handler())

	s.promMw.RegisterMetricsEndpoint(s.router)

	s.router.GET("/health", s.handleHealth)
	s.router.GET("/api/server", s.handleServerStatus)

	api := s.router.Group("/api")
	{
		api.POST("/register", s.handleRegister)
		api.POST("/signin", s.handleSignin)

		protected := api.Group("")
		protected.Use(s.jwtMiddleware())
		{
			protected.GET("/signout", s.handleSignout)

			protected.GET("/getResource", s.handleGetResource)
			protected.GET("/getHouse", s.handleGetHouse)
			protected.GET("/getHouseDetails", s.handleGetHouseDetails)

			protected.POST("/activateHouse", s.handleActivateHouse)
			protected.POST("/buyAddon", s.handleBuyAddon)
			protected.POST("/salvageAddon", s.handleSalvageAddon)
			protected.POST("/fertilizeGarden", s.handleFertilizeGarden)
			protected.POST("/buyToolshed", s.handleBuyToolshed)
			protected.POST("/switchToolshed", s.handleSwitchToolshed)
			protected.POST("/buyFireplace", s.handleBuyFireplace)
			protected.POST("/burnLumberToMakePower", s.handleBurnLumber)
			protected.POST("/buyHarvester", s.handleBuyHarvester)
			protected.POST("/buyConcreteFoundation", s.handleBuyConcreteFoundation)
			protected.POST("/buyTokenOverdrive", s.handleBuyTokenOverdrive)
			protected.POST("/buyResourceOverdrive", s.handleBuyResourceOverdrive)
			protected.POST("/frontLoadFirepit", s.handleFrontLoadFirepit)
			protected.POST("/gatherLumberWithPower", s.handleGatherLumber)
			protected.POST("/upgradeFacility", s.handleUpgradeFacility)
			protected.POST("/fortify", s.handleFortify)
			protected.POST("/repair", s.handleRepair)
			protected.POST("/harvest", s.handleHarvest)
			protected.POST("/onSale", s.handleOnSale)
			protected.POST("/offSale", s.handleOffSale)
		}
	}
}

// corsMiddleware разрешает кросс-доменные запросы игрового клиента
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": s.metrics.GetUptime(),
	})
}

func (s *RestServer) handleServerStatus(c *gin.Context) {
	memMB, _ := s.metrics.GetMemoryUsage()
	cpuPct, _ := s.metrics.GetCPUUsage()

	c.JSON(http.StatusOK, gin.H{
		"uptime":    s.metrics.GetUptime(),
		"memory_mb": fmt.Sprintf("%.1f", memMB),
		"cpu_pct":   fmt.Sprintf("%.1f", cpuPct),
		"operator":  s.contracts.OperatorAddress().Hex(),
	})
}

// Start запускает HTTP сервер, блокируется до остановки
func (s *RestServer) Start() error {
	s.server = &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Info("REST сервер слушает порт %s", s.port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("rest server: %w", err)
	}
	return nil
}

// Stop останавливает сервер, дождавшись активных запросов
func (s *RestServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router открывает движок для тестов
func (s *RestServer) Router() *gin.Engine {
	return s.router
}
