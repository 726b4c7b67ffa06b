package utils

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"ticketml-service/internal/config"
)

func TestNewLoggerFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ticketml.log")
	logger, err := NewLogger(&config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: path,
	})
	require.NoError(t, err)

	logger.Info("hello", zap.String("backend", "cbm"))
	require.NoError(t, CloseLogger(logger))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"backend":"cbm"`)
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	_, err := NewLogger(&config.LoggingConfig{Level: "loud", Output: "stderr"})
	assert.Error(t, err)
}

func TestJobLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	jobLogger := NewJobLogger(zap.New(core), "job-1", "ibm4610")

	jobLogger.Start(zap.Int("documents", 2))
	duration := jobLogger.Error(errors.New("paper out"))
	assert.GreaterOrEqual(t, duration, time.Duration(0))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Print job started", entries[0].Message)
	assert.Equal(t, "job-1", entries[0].ContextMap()["job_id"])
	assert.Equal(t, int64(2), entries[0].ContextMap()["documents"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "paper out", entries[1].ContextMap()["error"])
}

func TestPrinterLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	printerLogger := NewPrinterLogger(zap.New(core), "cbm", "SERIAL")

	printerLogger.LogConnection("open", nil)
	printerLogger.LogConnection("close", errors.New("device gone"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "SERIAL", entries[0].ContextMap()["connection"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestLogAPIRequestLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	serviceLogger := NewServiceLogger(zap.New(core), "http-server")

	serviceLogger.LogAPIRequest("POST", "/api/v1/tickets/print", "curl", "127.0.0.1", http.StatusOK, time.Millisecond)
	serviceLogger.LogAPIRequest("POST", "/api/v1/tickets/print", "curl", "127.0.0.1", http.StatusBadRequest, time.Millisecond)
	serviceLogger.LogAPIRequest("POST", "/api/v1/tickets/print", "curl", "127.0.0.1", http.StatusBadGateway, time.Millisecond)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "http-server", entries[0].ContextMap()["service"])
}
