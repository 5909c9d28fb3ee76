package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/config"
	"github.com/riskibarqy/fantasy-auction/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           "127.0.0.1:0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		ShutdownTimeout:    time.Second,
		StorageDriver:      config.StorageMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		DraftRounds:        17,
		StartingBudget:     1000,
		AutoBidInterval:    time.Second,
		ScoringWorkers:     2,
		FPLBaseURL:         "http://127.0.0.1:1",
		FPLTimeout:         time.Second,
		LiveStatsCacheTTL:  time.Minute,
		BootstrapCacheTTL:  time.Minute,
		AnubisBaseURL:      "http://127.0.0.1:1",
		AnubisTimeout:      time.Second,
		AnubisCacheTTL:     time.Second,
		CORSAllowedOrigins: []string{"*"},
	}
}

func TestNew_MemoryStorageServesRoutes(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.db)
	assert.Nil(t, a.bus.relay)
	assert.Nil(t, a.bus.locker)

	rec := httptest.NewRecorder()
	a.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	a.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "Highbury Hustlers"), rec.Body.String())

	rec = httptest.NewRecorder()
	a.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	_, err := New(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	cfg := memoryConfig()
	cfg.AutoBidEnabled = true

	a, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not stop after cancel")
	}
}
