// Package parser turns bureau report files into the plain trees the pipeline walks:
// map[string]any objects, []any arrays and primitive leaves.
package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/bureau-dispute-flow/internal/common"
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// Format names a supported report encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXML  Format = "xml"
	FormatHTML Format = "html"
)

var extensionFormats = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".xml":  FormatXML,
	".html": FormatHTML,
	".htm":  FormatHTML,
}

// FormatForFile picks a format from the file extension.
func FormatForFile(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if f, ok := extensionFormats[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: extension %q", common.ErrUnsupportedFormat, ext)
}

// ParseFormat resolves a format name such as "json" or "yml".
func ParseFormat(name string) (Format, error) {
	return FormatForFile("." + strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "."))
}

// Parse decodes one report document from r.
func Parse(r io.Reader, format Format) (model.ReportDocument, error) {
	switch format {
	case FormatJSON:
		return parseJSON(r)
	case FormatYAML:
		return parseYAML(r)
	case FormatXML:
		return parseXML(r)
	case FormatHTML:
		return parseHTML(r)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, format)
	}
}

// ParseFile opens path and decodes it according to its extension.
func ParseFile(path string) (model.ReportDocument, error) {
	format, err := FormatForFile(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := Parse(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return doc, nil
}
