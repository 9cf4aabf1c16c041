package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/brewpoints/cafe_ledger_app/cmd/docs"
	portssvc "github.com/brewpoints/cafe_ledger_app/internal/core/ports/services"
	"github.com/brewpoints/cafe_ledger_app/internal/middleware"
	"github.com/brewpoints/cafe_ledger_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{"X-Request-ID"},
	}))

	// Add health check route
	r.GET("/health", HealthCheck)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("100-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	// Apply rate limiting and AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.RateLimit(ipLimiter), middleware.AuthMiddleware(cfg.JWTSecret))

	registerLedgerRoutes(v1, services.Ledger)
	registerBalanceRoutes(v1, services.Balance)
	registerReconciliationRoutes(v1, services.TrialBalance)
	registerDevRoutes(v1, services.Balance, cfg.EnableDevEndpoints)
}

func registerLedgerRoutes(v1 *gin.RouterGroup, ledgerSvc portssvc.LedgerSvcFacade) {
	ledgerHandler := NewLedgerHandler(ledgerSvc)

	ledger := v1.Group("/ledger")
	{
		ledger.POST("/topup", ledgerHandler.Topup)
		ledger.POST("/charge", ledgerHandler.Charge)
		ledger.POST("/bonus", ledgerHandler.Bonus)
		ledger.GET("/transactions", ledgerHandler.ListTransactions)
		ledger.GET("/transactions/:txID", ledgerHandler.GetTransaction)
		ledger.POST("/transactions/:txID/reverse", ledgerHandler.Reverse)
	}
}

func registerBalanceRoutes(v1 *gin.RouterGroup, balanceSvc portssvc.BalanceSvcFacade) {
	balanceHandler := NewBalanceHandler(balanceSvc)

	balances := v1.Group("/balances")
	balances.GET("/:userID", balanceHandler.GetBalance)
}

func registerReconciliationRoutes(v1 *gin.RouterGroup, trialBalanceSvc portssvc.TrialBalanceSvcFacade) {
	trialBalanceHandler := NewTrialBalanceHandler(trialBalanceSvc)

	reconciliation := v1.Group("/reconciliation")
	{
		reconciliation.POST("/trial-balance", trialBalanceHandler.Run)
		reconciliation.GET("/trial-balance/:date", trialBalanceHandler.GetSnapshot)
	}
}

func registerDevRoutes(v1 *gin.RouterGroup, balanceSvc portssvc.BalanceSvcFacade, enabled bool) {
	devHandler := NewDevHandler(balanceSvc, enabled)

	// The route is always mounted; the handler enforces the flag so disabled
	// environments answer 403 rather than 404.
	dev := v1.Group("/dev")
	dev.POST("/rebuild-balances", devHandler.RebuildBalances)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
