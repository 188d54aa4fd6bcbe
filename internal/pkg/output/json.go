// Package output provides utilities for consistent CLI output formatting.
package output

import (
	"encoding/json"
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether w is a terminal. Anything that is not an *os.File
// is treated as a pipe.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// MarshalJSONPretty marshals v to JSON with explicit formatting control.
// When pretty is true, output is indented with 2 spaces.
func MarshalJSONPretty(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteJSON writes v to w as one JSON document followed by a newline, pretty
// when w is a terminal.
func WriteJSON(w io.Writer, v any) error {
	data, err := MarshalJSONPretty(v, IsTerminal(w))
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
