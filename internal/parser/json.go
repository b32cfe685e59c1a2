package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// parseJSON keeps numbers as json.Number so identifiers and amounts survive untouched.
func parseJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse json: unexpected data after document")
	}
	return doc, nil
}
