package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DmitryKolesov/url-relay/internal/collector"
	"github.com/DmitryKolesov/url-relay/internal/config"
	"github.com/DmitryKolesov/url-relay/internal/model"
)

func TestApp_Integration(t *testing.T) {
	var received model.WebhookRequest
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"run":"started"}`))
	}))
	defer webhook.Close()

	cfg := &config.Config{
		ServerAddress: ":8080",
		WebhookURL:    webhook.URL,
		AppName:       "url-relay",
	}

	application := NewApp(cfg)

	server := httptest.NewServer(application.handler)
	defer server.Close()

	c := collector.New(cfg.AppName, server.URL+"/api/submit")
	c.SetEntryURL(c.Entries()[0].ID, "a.com")
	c.SetEntryURL(c.AddEntry(), "b.com")
	c.SetEntryURL(c.AddEntry(), "a.com")

	result, err := c.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, collector.StateOK, result.State)
	assert.Equal(t, "forwarded", result.Message)
	assert.Equal(t, http.StatusOK, result.Status)
	assert.Equal(t, map[string]any{"run": "started"}, result.Body)

	assert.Equal(t, "url-relay", received.App)
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, received.URLs)
	assert.NotEmpty(t, received.Meta.CreatedAt)
	assert.NotEmpty(t, received.Meta.UserAgent, "Go http client sets a default User-Agent")
}

func TestApp_MissingWebhookConfiguration(t *testing.T) {
	cfg := &config.Config{
		ServerAddress: ":8080",
		AppName:       "url-relay",
	}

	application := NewApp(cfg)

	server := httptest.NewServer(application.handler)
	defer server.Close()

	c := collector.New(cfg.AppName, server.URL+"/api/submit")
	c.SetEntryURL(c.Entries()[0].ID, "a.com")

	result, err := c.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, collector.StateFailed, result.State)
	assert.Equal(t, "webhook URL is not configured", result.Message)
}
