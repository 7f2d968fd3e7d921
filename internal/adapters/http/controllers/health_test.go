package controllers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rafaelleal24/inventory/internal/adapters/http/controllers"
)

func TestHealthController_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		checkers   []controllers.HealthChecker
		wantCode   int
		wantStatus string
	}{
		{
			name: "all services up",
			checkers: []controllers.HealthChecker{
				{Name: "mongodb", Check: func(context.Context) error { return nil }},
				{Name: "redis", Check: func(context.Context) error { return nil }},
			},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
		},
		{
			name: "one service down",
			checkers: []controllers.HealthChecker{
				{Name: "mongodb", Check: func(context.Context) error { return nil }},
				{Name: "rabbitmq", Check: func(context.Context) error { return errors.New("connection is closed") }},
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.GET("/health", controllers.NewHealthController(tt.checkers).Health)

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			body := decode[controllers.HealthResponse](t, rec)
			if body.Status != tt.wantStatus || len(body.Services) != len(tt.checkers) {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}
