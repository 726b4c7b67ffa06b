// internal/render/interpreter.go
package render

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"ticketml-service/internal/markup"
	"ticketml-service/pkg/driver"
)

type event int

const (
	enter event = iota
	exit
)

// Interpreter walks a markup tree and drives a backend.
// One Interpreter serves one render at a time, like the backend it owns.
type Interpreter struct {
	backend driver.Backend
	stack   *Stack
	logger  *zap.Logger

	stats RenderStats
}

// RenderStats summarizes the last render
type RenderStats struct {
	Elements  int
	TextCalls int
	Duration  time.Duration
}

// New creates an interpreter for backend
func New(backend driver.Backend, logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interpreter{
		backend: backend,
		stack:   NewStack(),
		logger:  logger,
	}
}

// Interpret renders doc on backend with a fresh interpreter
func Interpret(doc markup.Node, backend driver.Backend) error {
	return New(backend, nil).Render(doc)
}

// Render walks doc in document order. The first error aborts the walk;
// bytes already written stay written.
func (in *Interpreter) Render(doc markup.Node) error {
	in.stack.Reset()
	in.stats = RenderStats{}
	startTime := time.Now()

	err := in.walk(doc)
	in.stats.Duration = time.Since(startTime)

	if err != nil {
		in.logger.Debug("Render aborted",
			zap.Int("elements", in.stats.Elements),
			zap.Error(err),
		)
		return err
	}

	in.logger.Debug("Render completed",
		zap.Int("elements", in.stats.Elements),
		zap.Int("text_calls", in.stats.TextCalls),
		zap.Duration("duration", in.stats.Duration),
	)
	return nil
}

// Stats returns the statistics of the last render
func (in *Interpreter) Stats() RenderStats {
	return in.stats
}

// Frame returns the format frame in effect
func (in *Interpreter) Frame() Frame {
	return in.stack.Top()
}

func (in *Interpreter) walk(node markup.Node) error {
	if node.IsComment() {
		return nil
	}
	in.stats.Elements++

	t := lookupTag(node.Tag())
	h := handlers[t]

	if h != nil {
		if err := h(in, enter, node); err != nil {
			return err
		}
	}
	if t.printsText() {
		if err := in.printText(node.Text()); err != nil {
			return err
		}
	}

	for _, child := range node.Children() {
		if err := in.walk(child); err != nil {
			return err
		}
	}

	if h != nil {
		if err := h(in, exit, node); err != nil {
			return err
		}
	}
	return in.printText(node.Tail())
}

var newlines = strings.NewReplacer("\r", "", "\n", "")

// normalize removes source line breaks; they never print as line breaks
func normalize(text string) string {
	return newlines.Replace(text)
}

func (in *Interpreter) printText(text string) error {
	text = normalize(text)
	if text == "" {
		return nil
	}
	in.stats.TextCalls++
	return in.backend.PrintText(text)
}
