package llm

import (
	"bytes"
	"encoding/json"
	"strings"
)

// CompletionResult is either a Success or a Failure.
type CompletionResult interface {
	// Display returns the text printed to the user.
	Display() string
	completionResult()
}

// Success carries the model's reply verbatim.
type Success struct {
	Text string
}

func (s Success) Display() string { return s.Text }

func (Success) completionResult() {}

// Failure carries a JSON body that was not a completion, typically an API
// error envelope.
type Failure struct {
	RawPayload json.RawMessage
}

// Display pretty-prints the payload with two-space indentation and sorted keys.
func (f Failure) Display() string {
	decoder := json.NewDecoder(bytes.NewReader(f.RawPayload))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return string(f.RawPayload)
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return string(f.RawPayload)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func (Failure) completionResult() {}
