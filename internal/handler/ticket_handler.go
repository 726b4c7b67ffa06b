// internal/handler/ticket_handler.go
package handler

import (
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ticketml-service/internal/model"
	"ticketml-service/internal/service"
	"ticketml-service/internal/utils"
)

// TicketHandler handles ticket printing requests
type TicketHandler struct {
	printService *service.PrintService
	logger       *utils.ServiceLogger
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(printService *service.PrintService, logger *zap.Logger) *TicketHandler {
	return &TicketHandler{
		printService: printService,
		logger:       utils.NewServiceLogger(logger, "ticket-handler"),
	}
}

// TicketRequest is the JSON form of a print or preview request.
// Markup is a single document; Documents renders several in order.
type TicketRequest struct {
	Backend   string   `json:"backend"`
	Markup    string   `json:"markup"`
	Documents []string `json:"documents"`
}

// PreviewResponse carries the rendered printer bytes
type PreviewResponse struct {
	Backend string `json:"backend"`
	Size    int    `json:"size"`
	Hex     string `json:"hex"`
}

// RegisterRoutes registers ticket routes
func (h *TicketHandler) RegisterRoutes(router *gin.RouterGroup) {
	tickets := router.Group("/tickets")
	{
		tickets.POST("/print", h.PrintTicket)
		tickets.POST("/preview", h.PreviewTicket)
	}
	router.GET("/backends", h.ListBackends)
}

// PrintTicket renders the submitted markup on the configured printer.
// The body is either a TicketRequest or raw XML with ?backend=name.
func (h *TicketHandler) PrintTicket(c *gin.Context) {
	backend, documents, ok := h.bindTicket(c)
	if !ok {
		return
	}

	if backend == "" {
		backend = h.printService.DefaultBackend()
	}
	c.Set(utils.ContextBackend, backend)

	job := model.NewPrintJob(backend, documents...)
	c.Set(utils.ContextJobID, job.ID.String())
	result, err := h.printService.Print(c.Request.Context(), job)
	if err != nil {
		h.logger.Error("Print job failed", zap.String("job_id", job.ID.String()), zap.Error(err))
		if service.IsInputError(err) {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid ticket", err)
			return
		}
		utils.ErrorResponse(c, http.StatusBadGateway, "Printer unavailable", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket printed", result)
}

// PreviewTicket renders the submitted markup without a printer.
// ?format=raw returns the bytes as application/octet-stream.
func (h *TicketHandler) PreviewTicket(c *gin.Context) {
	backend, documents, ok := h.bindTicket(c)
	if !ok {
		return
	}
	if backend == "" {
		backend = h.printService.DefaultBackend()
	}
	c.Set(utils.ContextBackend, backend)

	data, err := h.printService.Preview(backend, documents...)
	if err != nil {
		if service.IsInputError(err) {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid ticket", err)
			return
		}
		h.logger.Error("Preview failed", zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, "Preview failed", err)
		return
	}

	if c.Query("format") == "raw" {
		c.Data(http.StatusOK, "application/octet-stream", data)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket rendered", PreviewResponse{
		Backend: backend,
		Size:    len(data),
		Hex:     hex.EncodeToString(data),
	})
}

// ListBackends lists the printer backends
func (h *TicketHandler) ListBackends(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Backends retrieved", gin.H{
		"default":  h.printService.DefaultBackend(),
		"backends": h.printService.Backends(),
	})
}

// bindTicket reads the backend name and documents from the request.
// It writes the error response itself and reports false on failure.
func (h *TicketHandler) bindTicket(c *gin.Context) (string, [][]byte, bool) {
	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		var req TicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bodyError(c, err)
			return "", nil, false
		}

		documents := make([][]byte, 0, len(req.Documents)+1)
		if req.Markup != "" {
			documents = append(documents, []byte(req.Markup))
		}
		for _, doc := range req.Documents {
			documents = append(documents, []byte(doc))
		}
		if len(documents) == 0 {
			utils.ValidationErrorResponse(c, map[string]string{
				"markup": "markup or documents is required",
			})
			return "", nil, false
		}
		return req.Backend, documents, true
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		bodyError(c, err)
		return "", nil, false
	}
	if len(body) == 0 {
		utils.ValidationErrorResponse(c, map[string]string{
			"body": "markup is required",
		})
		return "", nil, false
	}
	return c.Query("backend"), [][]byte{body}, true
}

func bodyError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large", err)
		return
	}
	utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
}
