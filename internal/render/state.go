// internal/render/state.go
package render

import "ticketml-service/pkg/driver"

// Frame is a snapshot of the text attributes in effect
type Frame struct {
	Emphasis     bool
	DoubleHeight bool
	DoubleWidth  bool
	Underline    bool
	Alignment    driver.Alignment
	FontWidth    int
	FontHeight   int
}

// BaseFrame is the state at the start of every document
func BaseFrame() Frame {
	return Frame{
		Alignment:  driver.AlignLeft,
		FontWidth:  1,
		FontHeight: 1,
	}
}

// Override changes one attribute of a pushed frame
type Override func(*Frame)

func WithEmphasis(on bool) Override     { return func(f *Frame) { f.Emphasis = on } }
func WithDoubleHeight(on bool) Override { return func(f *Frame) { f.DoubleHeight = on } }
func WithDoubleWidth(on bool) Override  { return func(f *Frame) { f.DoubleWidth = on } }
func WithUnderline(on bool) Override    { return func(f *Frame) { f.Underline = on } }

func WithAlignment(a driver.Alignment) Override {
	return func(f *Frame) { f.Alignment = a }
}

func WithFontWidth(w int) Override  { return func(f *Frame) { f.FontWidth = w } }
func WithFontHeight(h int) Override { return func(f *Frame) { f.FontHeight = h } }

// Stack holds the nested format frames; the base frame is never popped
type Stack struct {
	frames []Frame
}

// NewStack creates a stack holding only the base frame
func NewStack() *Stack {
	return &Stack{frames: []Frame{BaseFrame()}}
}

// Push copies the top frame, applies overrides and returns the new top
func (s *Stack) Push(overrides ...Override) Frame {
	frame := s.Top()
	for _, override := range overrides {
		override(&frame)
	}
	s.frames = append(s.frames, frame)
	return frame
}

// Pop removes the top frame and returns the one below it.
// Popping the base frame is a programming error and panics.
func (s *Stack) Pop() Frame {
	if len(s.frames) <= 1 {
		panic("render: pop of base format frame")
	}
	s.frames = s.frames[:len(s.frames)-1]
	return s.Top()
}

// Top returns the frame in effect
func (s *Stack) Top() Frame {
	return s.frames[len(s.frames)-1]
}

// Depth returns the number of frames including the base frame
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Reset drops every frame above the base frame
func (s *Stack) Reset() {
	s.frames = s.frames[:1]
	s.frames[0] = BaseFrame()
}
