// internal/service/print_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"ticketml-service/internal/config"
	"ticketml-service/internal/driver"
	"ticketml-service/internal/encoding"
	"ticketml-service/internal/markup"
	"ticketml-service/internal/model"
	"ticketml-service/internal/protocol"
	"ticketml-service/internal/render"
	"ticketml-service/internal/utils"
	pkgdriver "ticketml-service/pkg/driver"
)

// ErrNoDocuments is returned for jobs without markup
var ErrNoDocuments = errors.New("print job has no documents")

// ProtocolFactory opens the link to the configured printer
type ProtocolFactory func(cfg *config.PrinterConfig) (protocol.DeviceProtocol, error)

// PrintService renders TicketML documents onto the configured printer.
// Jobs for the physical printer run one at a time.
type PrintService struct {
	registry *driver.Registry
	printer  config.PrinterConfig
	connect  ProtocolFactory
	logger   *utils.ServiceLogger

	mutex sync.Mutex
}

// NewPrintService creates a new print service instance.
// Debug connections write their hex dump to debugOut.
func NewPrintService(registry *driver.Registry, printer *config.PrinterConfig, debugOut io.Writer, logger *zap.Logger) *PrintService {
	return &PrintService{
		registry: registry,
		printer:  *printer,
		connect: func(cfg *config.PrinterConfig) (protocol.DeviceProtocol, error) {
			return protocol.CreateProtocol(cfg, debugOut, logger)
		},
		logger: utils.NewServiceLogger(logger, "print-service"),
	}
}

// SetProtocolFactory replaces how printer connections are created
func (ps *PrintService) SetProtocolFactory(factory ProtocolFactory) {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()
	ps.connect = factory
}

// Backends lists the available printer backends
func (ps *PrintService) Backends() []driver.BackendInfo {
	return ps.registry.List()
}

// DefaultBackend returns the configured backend name
func (ps *PrintService) DefaultBackend() string {
	return ps.printer.Backend
}

// Print renders every document of job on the printer through one backend
// instance. Documents are parsed before the printer is touched, so
// malformed markup never produces output.
func (ps *PrintService) Print(ctx context.Context, job *model.PrintJob) (*model.PrintResult, error) {
	backendName := ps.backendName(job.Backend)
	jobLogger := utils.NewJobLogger(ps.logger.Logger, job.ID.String(), backendName)
	jobLogger.Start(zap.Int("documents", len(job.Documents)))

	docs, err := ps.prepare(backendName, job.Documents)
	if err != nil {
		jobLogger.Error(err)
		return nil, err
	}

	ps.mutex.Lock()
	defer ps.mutex.Unlock()

	conn, err := ps.connect(&ps.printer)
	if err != nil {
		jobLogger.Error(err)
		return nil, fmt.Errorf("failed to create printer connection: %w", err)
	}
	printerLogger := utils.NewPrinterLogger(jobLogger.Logger(), backendName, string(conn.GetProtocolType()))

	if err := ps.open(ctx, conn); err != nil {
		printerLogger.LogConnection("open", err)
		jobLogger.Error(err)
		return nil, err
	}
	printerLogger.LogConnection("open", nil)
	defer func() {
		err := conn.Close()
		printerLogger.LogConnection("close", err)
	}()

	if err := ps.render(conn, backendName, docs, jobLogger.Logger()); err != nil {
		jobLogger.Error(err)
		return nil, err
	}

	stats := conn.GetStats()
	printerLogger.LogWrite(stats.BytesWritten, stats.OperationCount, stats.FlushCount)
	duration := jobLogger.Success(zap.Int64("bytes_written", stats.BytesWritten))

	return &model.PrintResult{
		JobID:        job.ID,
		Backend:      backendName,
		Connection:   conn.GetProtocolType(),
		Status:       model.JobStatusSuccess,
		Documents:    len(docs),
		BytesWritten: stats.BytesWritten,
		Duration:     duration.String(),
		Timestamp:    time.Now(),
	}, nil
}

// Preview renders documents into memory and returns the printer bytes
func (ps *PrintService) Preview(backendName string, documents ...[]byte) ([]byte, error) {
	backendName = ps.backendName(backendName)

	docs, err := ps.prepare(backendName, documents)
	if err != nil {
		return nil, err
	}

	conn := protocol.NewBufferConnection()
	if err := ps.render(conn, backendName, docs, ps.logger.Logger); err != nil {
		return nil, err
	}
	return conn.Bytes(), nil
}

func (ps *PrintService) backendName(name string) string {
	if name == "" {
		return ps.printer.Backend
	}
	return name
}

// prepare validates the backend name and parses every document
func (ps *PrintService) prepare(backendName string, documents [][]byte) ([]markup.Node, error) {
	if !ps.registry.IsSupported(backendName) {
		return nil, &driver.UnknownBackendError{Name: backendName, Known: ps.registry.Names()}
	}
	if len(documents) == 0 {
		return nil, ErrNoDocuments
	}

	docs := make([]markup.Node, 0, len(documents))
	for i, data := range documents {
		if ps.printer.StripIndentation {
			data = markup.StripIndentation(data)
		}
		doc, err := markup.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (ps *PrintService) open(ctx context.Context, conn protocol.DeviceProtocol) error {
	if ps.printer.OpenTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ps.printer.OpenTimeout)
		defer cancel()
	}
	if err := conn.Open(ctx); err != nil {
		return fmt.Errorf("failed to open printer connection: %w", err)
	}
	return nil
}

// render builds one backend on transport and renders docs through it in order,
// so deferred commands carry over from one document to the next.
func (ps *PrintService) render(transport protocol.Transport, backendName string, docs []markup.Node, logger *zap.Logger) error {
	backend, err := ps.registry.Create(backendName, transport)
	if err != nil {
		return err
	}

	interpreter := render.New(backend, logger)
	for i, doc := range docs {
		if err := interpreter.Render(doc); err != nil {
			return fmt.Errorf("document %d: %w", i+1, err)
		}
	}

	if err := transport.Flush(); err != nil {
		return fmt.Errorf("failed to flush printer connection: %w", err)
	}
	return nil
}

// IsInputError reports whether err was caused by the submitted markup or
// request rather than by the printer or its connection.
func IsInputError(err error) bool {
	var (
		markupErr   *render.MarkupError
		syntaxErr   *markup.SyntaxError
		encodingErr *encoding.EncodingError
		rangeErr    *pkgdriver.RangeError
		backendErr  *driver.UnknownBackendError
	)
	switch {
	case errors.As(err, &markupErr),
		errors.As(err, &syntaxErr),
		errors.As(err, &encodingErr),
		errors.As(err, &rangeErr),
		errors.As(err, &backendErr):
		return true
	}
	return errors.Is(err, pkgdriver.ErrUnsupported) ||
		errors.Is(err, markup.ErrNoRoot) ||
		errors.Is(err, ErrNoDocuments)
}
