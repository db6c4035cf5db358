// Package formats loads Wavefront OBJ models and their MTL material libraries
// through the g3n OBJ decoder.
package formats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/g3n/engine/loader/obj"
)

// ParseError reports a malformed OBJ or MTL file.
type ParseError struct {
	Kind string // "obj" or "mtl"
	Line int    // 1-based line number, 0 when not tied to a line
	Msg  string
	Err  error
}

// Error implements error.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind)
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// decode runs the g3n decoder over one OBJ stream and an optional MTL stream.
// Decoder failures, including panics on statements it does not guard
// against, come back as *ParseError.
func decode(kind string, objData, mtlData io.Reader) (dec *obj.Decoder, err error) {
	defer func() {
		if r := recover(); r != nil {
			dec = nil
			err = &ParseError{Kind: kind, Msg: "malformed file", Err: fmt.Errorf("%v", r)}
		}
	}()

	dec, err = obj.DecodeReader(objData, mtlData)
	if err != nil {
		return nil, &ParseError{Kind: kind, Line: errorLine(err), Msg: "decoding failed", Err: err}
	}
	return dec, nil
}

// errorLine extracts the line number the decoder appends to its own
// messages ("... in line:12"). Errors passed through from strconv carry none.
func errorLine(err error) int {
	msg := err.Error()
	i := strings.LastIndex(msg, "in line:")
	if i < 0 {
		return 0
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(msg[i+len("in line:"):]))
	if convErr != nil {
		return 0
	}
	return n
}
