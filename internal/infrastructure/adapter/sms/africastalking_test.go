package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/config"
)

type noopLogger struct{}

func (noopLogger) Debug(msg string, fields map[string]any) {}
func (noopLogger) Info(msg string, fields map[string]any)  {}
func (noopLogger) Warn(msg string, fields map[string]any)  {}
func (noopLogger) Error(msg string, fields map[string]any) {}
func (noopLogger) Flush() error                            { return nil }

func TestAfricasTalkingSender(t *testing.T) {
	t.Run("posts the message as a form", func(t *testing.T) {
		var gotForm map[string]string
		var gotAPIKey string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotForm = map[string]string{
				"username": r.PostFormValue("username"),
				"to":       r.PostFormValue("to"),
				"message":  r.PostFormValue("message"),
				"from":     r.PostFormValue("from"),
			}
			gotAPIKey = r.Header.Get("apiKey")
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		sender := NewAfricasTalkingSender(config.SMSConfig{
			BaseURL:     server.URL,
			Username:    "church",
			APIKey:      "key-123",
			SenderID:    "LEDGER",
			SendTimeout: 2 * time.Second,
		}, noopLogger{})

		err := sender.Send(context.Background(), "+254700111222", "Dear Jane, thank you.")
		require.NoError(t, err)

		assert.Equal(t, "church", gotForm["username"])
		assert.Equal(t, "+254700111222", gotForm["to"])
		assert.Equal(t, "Dear Jane, thank you.", gotForm["message"])
		assert.Equal(t, "LEDGER", gotForm["from"])
		assert.Equal(t, "key-123", gotAPIKey)
	})

	t.Run("gateway error status is reported", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
		}))
		defer server.Close()

		sender := NewAfricasTalkingSender(config.SMSConfig{
			BaseURL:     server.URL,
			Username:    "church",
			APIKey:      "bad-key",
			SendTimeout: 2 * time.Second,
		}, noopLogger{})

		err := sender.Send(context.Background(), "+254700111222", "hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("blank API key disables sending", func(t *testing.T) {
		sender := NewAfricasTalkingSender(config.SMSConfig{
			BaseURL: "http://127.0.0.1:1", // would fail if contacted
		}, noopLogger{})

		err := sender.Send(context.Background(), "+254700111222", "hello")
		assert.NoError(t, err)
	})
}
