package routes

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"ticketml-service/internal/config"
	"ticketml-service/internal/driver"
	"ticketml-service/internal/middleware"
	"ticketml-service/internal/protocol"
	"ticketml-service/internal/service"
)

type apiResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id"`
	Error     *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *service.PrintService, *protocol.BufferConnection) {
	t.Helper()
	return newLoggedTestRouter(t, zap.NewNop())
}

func newLoggedTestRouter(t *testing.T, logger *zap.Logger) (*gin.Engine, *service.PrintService, *protocol.BufferConnection) {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{MaxBodyBytes: 256},
		Printer: config.PrinterConfig{
			Backend:          "ibm4610",
			Connection:       "memory",
			StripIndentation: true,
		},
		App: config.AppConfig{Name: "ticketml-service", Version: "test", Environment: "test"},
	}

	printService := service.NewPrintService(driver.NewDefaultRegistry(nil, logger), &cfg.Printer, io.Discard, logger)
	conn := protocol.NewBufferConnection()
	printService.SetProtocolFactory(func(*config.PrinterConfig) (protocol.DeviceProtocol, error) {
		return conn, nil
	})

	return NewRouter(cfg, logger, printService).SetupRouter(), printService, conn
}

func perform(router *gin.Engine, method, path, contentType, body string) (*httptest.ResponseRecorder, apiResponse) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp apiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestPrintRawMarkup(t *testing.T) {
	router, _, conn := newTestRouter(t)

	w, resp := perform(router, http.MethodPost, "/api/v1/tickets/print", "application/xml", `<ticket><b>HI</b></ticket>`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, resp.RequestID, w.Header().Get(middleware.RequestIDHeader))

	var result struct {
		Backend      string `json:"backend"`
		Status       string `json:"status"`
		BytesWritten int64  `json:"bytes_written"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, "ibm4610", result.Backend)
	assert.Equal(t, "SUCCESS", result.Status)
	assert.Equal(t, int64(12), result.BytesWritten)
	assert.True(t, bytes.HasSuffix(conn.Bytes(), []byte{'H', 'I', 0x1B, 0x47, 0x00, 0x0C}))
}

func TestPrintJSONWithBackend(t *testing.T) {
	router, _, conn := newTestRouter(t)

	body := `{"backend":"cbm","documents":["<ticket>a</ticket>","<ticket>b</ticket>"]}`
	w, resp := perform(router, http.MethodPost, "/api/v1/tickets/print", "application/json", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, resp.Success)
	assert.Equal(t, 2, bytes.Count(conn.Bytes(), []byte{0x1D, 0x56, 0x01}))
}

func TestPrintInvalidMarkup(t *testing.T) {
	router, _, _ := newTestRouter(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"syntax", "/api/v1/tickets/print", `<ticket attr=1/>`},
		{"attribute", "/api/v1/tickets/print", `<ticket><align mode="up">x</align></ticket>`},
		{"unknown backend", "/api/v1/tickets/print?backend=epson", `<ticket/>`},
		{"unencodable", "/api/v1/tickets/print", `<ticket>ルーク</ticket>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := perform(router, http.MethodPost, tt.path, "text/xml", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
		})
	}
}

func TestPrintValidation(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w, resp := perform(router, http.MethodPost, "/api/v1/tickets/print", "application/json", `{"backend":"cbm"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	w, resp = perform(router, http.MethodPost, "/api/v1/tickets/print", "text/xml", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestPrintBodyTooLarge(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body := "<ticket>" + strings.Repeat("x", 512) + "</ticket>"
	w, resp := perform(router, http.MethodPost, "/api/v1/tickets/print", "text/xml", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", resp.Error.Code)
}

func TestPrintPrinterUnavailable(t *testing.T) {
	router, printService, _ := newTestRouter(t)
	printService.SetProtocolFactory(func(*config.PrinterConfig) (protocol.DeviceProtocol, error) {
		return nil, errors.New("serial port busy")
	})

	w, resp := perform(router, http.MethodPost, "/api/v1/tickets/print", "text/xml", `<ticket/>`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PRINTER_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "serial port busy")
}

func TestPreview(t *testing.T) {
	router, _, conn := newTestRouter(t)

	w, resp := perform(router, http.MethodPost, "/api/v1/tickets/preview", "application/json", `{"markup":"<ticket>x</ticket>"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var preview struct {
		Backend string `json:"backend"`
		Size    int    `json:"size"`
		Hex     string `json:"hex"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &preview))
	assert.Equal(t, "ibm4610", preview.Backend)
	assert.Equal(t, "1b610078"+"0c", preview.Hex)
	assert.Equal(t, 5, preview.Size)
	assert.Empty(t, conn.Bytes())
}

func TestPreviewRaw(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w, _ := perform(router, http.MethodPost, "/api/v1/tickets/preview?format=raw&backend=cbm", "text/xml", `<ticket>x</ticket>`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))

	want, err := hex.DecodeString("1b2100" + "1b6100" + "78" + "0a0a0a0a1d5601")
	require.NoError(t, err)
	assert.Equal(t, want, w.Body.Bytes())
}

func TestListBackends(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w, resp := perform(router, http.MethodGet, "/api/v1/backends", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Default  string `json:"default"`
		Backends []struct {
			Name              string `json:"name"`
			CharactersPerLine int    `json:"characters_per_line"`
		} `json:"backends"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "ibm4610", data.Default)
	require.Len(t, data.Backends, 2)
	assert.Equal(t, "cbm", data.Backends[0].Name)
	assert.Equal(t, 44, data.Backends[1].CharactersPerLine)
}

func TestHealthRoutes(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for _, path := range []string{"/health", "/ready", "/live"} {
		w, _ := perform(router, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRequestIDIsReused(t *testing.T) {
	router, _, _ := newTestRouter(t)
	const id = "7f1c7a52-8a0c-4c5e-9b43-3c1f0f6a9d11"

	req := httptest.NewRequest(http.MethodGet, "/api/v1/backends", nil)
	req.Header.Set(middleware.RequestIDHeader, id)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get(middleware.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/backends", nil)
	req.Header.Set(middleware.RequestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEqual(t, "not-a-uuid", w.Header().Get(middleware.RequestIDHeader))
}

func TestPrintRequestLogNamesJob(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	router, _, _ := newLoggedTestRouter(t, zap.New(core))

	w, resp := perform(router, http.MethodPost, "/api/v1/tickets/print", "application/xml", `<ticket>a</ticket>`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		JobID string `json:"job_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &result))

	entries := logs.FilterMessage("API request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, resp.RequestID, fields["request_id"])
	assert.Equal(t, "ibm4610", fields["backend"])
	assert.Equal(t, result.JobID, fields["job_id"])
}
