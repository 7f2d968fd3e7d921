package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"

	"github.com/rafaelleal24/inventory/internal/adapters/config"
	"github.com/rafaelleal24/inventory/internal/adapters/http/controllers"
	"github.com/rafaelleal24/inventory/internal/adapters/http/middleware"
)

type Controllers struct {
	Health   *controllers.HealthController
	Auth     *controllers.AuthController
	Product  *controllers.ProductController
	Stock    *controllers.StockController
	Transfer *controllers.TransferController
}

type Router struct {
	controllers   Controllers
	authenticator middleware.Authenticator
	rateLimiter   middleware.RateLimiter
	limits        config.RateLimitConfig
}

func NewRouter(
	controllers Controllers,
	authenticator middleware.Authenticator,
	rateLimiter middleware.RateLimiter,
	limits config.RateLimitConfig,
) *Router {
	return &Router{
		controllers:   controllers,
		authenticator: authenticator,
		rateLimiter:   rateLimiter,
		limits:        limits,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	rl := r.rateLimiter
	c := r.controllers

	router.Use(middleware.RequestID(), middleware.LogRequest())

	router.GET("/", c.Health.Status)
	router.GET("/health", c.Health.Health)
	router.GET("/swagger/doc.json", serveDoc)

	router.POST("/auth/login", middleware.RateLimit(rl, r.limits.LoginPerMinute, time.Minute), c.Auth.Login)

	secured := router.Group("/", middleware.RequireAuth(r.authenticator))
	{
		secured.GET("/products", c.Product.List)
		secured.POST("/products", c.Product.Create)
		secured.GET("/products/export/csv", c.Transfer.Export)
		secured.POST("/products/import/csv", middleware.RateLimit(rl, r.limits.ImportPerMinute, time.Minute), c.Transfer.Import)
		secured.GET("/products/:id", c.Product.Get)
		secured.PUT("/products/:id", c.Product.Update)
		secured.DELETE("/products/:id", c.Product.Delete)
		secured.POST("/products/:id/stock-in", c.Stock.StockIn)
		secured.POST("/products/:id/stock-out", c.Stock.StockOut)
		secured.GET("/categories", c.Product.Categories)
		secured.GET("/dashboard", c.Product.Dashboard)
	}
}

func serveDoc(c *gin.Context) {
	doc, err := swag.ReadDoc()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "api document not registered"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}

func (r *Router) ListenAndServe(ctx context.Context, config config.HTTPConfig) error {
	engine := gin.New()
	engine.Use(gin.Recovery())
	r.SetupRoutes(engine)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", config.BindInterface, config.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
