package routes

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/config"
)

type noopLogger struct{}

func (noopLogger) Debug(msg string, fields map[string]any) {}
func (noopLogger) Info(msg string, fields map[string]any)  {}
func (noopLogger) Warn(msg string, fields map[string]any)  {}
func (noopLogger) Error(msg string, fields map[string]any) {}
func (noopLogger) Flush() error                            { return nil }

// TestSetupRoutes pins the public URL layout. Clients are written against
// these exact paths and methods, so a rename here is a breaking change.
func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	lg := noopLogger{}
	router := gin.New()
	SetupRoutes(
		router,
		config.AuthConfig{JWTSecret: "secret", Issuer: "church-ledger"},
		handler.NewTransactionHandler(nil, lg),
		handler.NewMpesaHandler(nil, lg),
		handler.NewUserHandler(nil, lg),
		lg,
	)

	mounted := make(map[string]bool)
	for _, route := range router.Routes() {
		mounted[route.Method+" "+route.Path] = true
	}

	expected := []string{
		http.MethodPost + " /api/users/register",
		http.MethodPost + " /api/mpesa/callback",
		http.MethodGet + " /api/transactions",
		http.MethodPost + " /api/transactions",
		http.MethodGet + " /api/transactions/:id",
		http.MethodPost + " /api/transactions/:id/complete",
		http.MethodGet + " /api/receipts/:id",
		http.MethodGet + " /api/stats",
		http.MethodGet + " /api/users/profile",
		http.MethodPut + " /api/users/profile",
		http.MethodGet + " /api/users/users",
		http.MethodPatch + " /api/users/users/:id/role",
	}

	for _, route := range expected {
		assert.True(t, mounted[route], "route %s is not mounted", route)
	}
	assert.Len(t, mounted, len(expected), "unexpected extra routes mounted")
}
