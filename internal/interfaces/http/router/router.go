package router

import (
	"github.com/gin-gonic/gin"
	"github.com/warehouse/backend/internal/infrastructure/auth"
	"github.com/warehouse/backend/internal/infrastructure/config"
	"github.com/warehouse/backend/internal/interfaces/http/handler"
	"github.com/warehouse/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	System   *handler.SystemHandler
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Client   *handler.ClientHandler
	Supplier *handler.SupplierHandler
	Order    *handler.OrderHandler
	Purchase *handler.PurchaseHandler
	Finance  *handler.FinanceHandler
	Report   *handler.ReportHandler
	Sequence *handler.SequenceHandler
}

// New builds the gin engine with all middleware and routes mounted.
// Everything under /api/v1 except auth and health sits behind the JWT
// middleware, which is where the tenant ID comes from.
func New(cfg *config.Config, jwtService *auth.JWTService, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.CORS(cfg.HTTP),
	)

	api := engine.Group("/api/v1")
	protected := engine.Group("/api/v1")
	protected.Use(middleware.RequireAuth(jwtService, log))

	h.System.RegisterRoutes(api)
	h.Auth.RegisterRoutes(api, protected)
	h.Product.RegisterRoutes(protected)
	h.Client.RegisterRoutes(protected)
	h.Supplier.RegisterRoutes(protected)
	h.Order.RegisterRoutes(protected)
	h.Purchase.RegisterRoutes(protected)
	h.Finance.RegisterRoutes(protected)
	h.Report.RegisterRoutes(protected)
	h.Sequence.RegisterRoutes(protected)

	return engine
}
