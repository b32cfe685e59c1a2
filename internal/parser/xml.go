package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

const (
	attrPrefix = "@"
	textKey    = "#text"
)

// repeatedElements are MISMO sections that stay arrays even when a report holds only one.
var repeatedElements = map[string]bool{
	"CREDIT_LIABILITY":     true,
	"CREDIT_INQUIRY":       true,
	"CREDIT_PUBLIC_RECORD": true,
	"CREDIT_COLLECTION":    true,
	"CREDIT_SCORE":         true,
}

type xmlElement struct {
	fields map[string]any
	// lists marks children whose value is an array built from sibling elements.
	lists map[string]bool
	name  string
	text  strings.Builder
}

func newXMLElement(start xml.StartElement) *xmlElement {
	el := &xmlElement{
		name:   start.Name.Local,
		fields: map[string]any{},
		lists:  map[string]bool{},
	}
	for _, attr := range start.Attr {
		el.fields[attrPrefix+attr.Name.Local] = attr.Value
	}
	return el
}

func (e *xmlElement) addChild(name string, value any) {
	existing, ok := e.fields[name]
	switch {
	case !ok && repeatedElements[name]:
		e.fields[name] = []any{value}
		e.lists[name] = true
	case !ok:
		e.fields[name] = value
	case e.lists[name]:
		e.fields[name] = append(existing.([]any), value)
	default:
		e.fields[name] = []any{existing, value}
		e.lists[name] = true
	}
}

// value collapses an element to a string when it carries only text.
func (e *xmlElement) value() any {
	text := strings.TrimSpace(e.text.String())
	if len(e.fields) == 0 {
		return text
	}
	if text != "" {
		e.fields[textKey] = text
	}
	return e.fields
}

// parseXML maps elements to objects keyed by local name, attributes to "@name"
// keys and mixed text to "#text". The root element becomes the single top-level key.
func parseXML(r io.Reader) (any, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, fmt.Errorf("unsupported charset %q: %w", charset, err)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	var stack []*xmlElement
	var root map[string]any

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, newXMLElement(t))
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("parse xml: unexpected end element %s", t.Name.Local)
			}
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				root = map[string]any{el.name: el.value()}
				continue
			}
			stack[len(stack)-1].addChild(el.name, el.value())
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("parse xml: unclosed element %s", stack[len(stack)-1].name)
	}
	if root == nil {
		return nil, errors.New("parse xml: no root element")
	}
	return root, nil
}
