// internal/render/errors.go
package render

import "fmt"

// MarkupError reports a missing or invalid attribute on a markup element
type MarkupError struct {
	Tag    string
	Attr   string
	Value  string
	Reason string
	Err    error
}

func (e *MarkupError) Error() string {
	msg := fmt.Sprintf("<%s>: attribute %q", e.Tag, e.Attr)
	if e.Value != "" {
		msg += fmt.Sprintf(" value %q", e.Value)
	}
	return msg + ": " + e.Reason
}

func (e *MarkupError) Unwrap() error {
	return e.Err
}

func missingAttr(tag, attr string) *MarkupError {
	return &MarkupError{Tag: tag, Attr: attr, Reason: "must be set"}
}

func invalidAttr(tag, attr, value string, err error) *MarkupError {
	reason := "unrecognized value"
	if err != nil {
		reason = err.Error()
	}
	return &MarkupError{Tag: tag, Attr: attr, Value: value, Reason: reason, Err: err}
}
