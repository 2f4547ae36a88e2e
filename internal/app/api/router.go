package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	orderhandlers "github.com/Apurer/choufli-storefront/internal/domains/orders/adapters/http/handlers"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	ServiceName string
	Config      Config
	Logger      *slog.Logger
}

// NewRouter assembles the intake API: public order intake, admin pages behind
// basic auth and optional static site serving.
func NewRouter(orders orderhandlers.OrderAPI, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if opts.ServiceName != "" {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}
	router.Use(corsMiddleware())
	router.SetHTMLTemplate(orderhandlers.AdminTemplate())

	limiter := NewRateLimiter(RateLimit{
		RequestsPerMinute: opts.Config.OrderRatePerMinute,
		Burst:             opts.Config.OrderRateBurst,
	}, opts.Logger)
	router.POST("/api/orders", limiter.Middleware(), orders.PlaceOrder)

	user := opts.Config.AdminUser
	if user == "" {
		user = "admin"
	}
	admin := router.Group("/", gin.BasicAuthForRealm(gin.Accounts{user: opts.Config.AdminPassword}, "Admin"))
	admin.GET("/api/orders", orders.ListOrders)
	admin.GET("/admin", orders.AdminPage)
	admin.POST("/admin/delete", orders.AdminDelete)

	if opts.Config.StaticDir != "" {
		router.NoRoute(staticHandler(opts.Config.StaticDir))
	}
	return router
}
