package parser

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// maxFieldIndex bounds array growth from names like "tradelines[99999]".
const maxFieldIndex = 10000

var fieldStepPattern = regexp.MustCompile(`([^.\[\]]+)|\[(\d+)\]`)

type fieldStep struct {
	key   string
	index int
}

// parseHTML collects saved report pages: named form controls and elements
// carrying data-field. Names such as "tradelines[0].creditorName" are expanded
// into nested objects and arrays.
func parseHTML(r io.Reader) (any, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var root any = map[string]any{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			}
			if name, value, ok := fieldValue(n); ok {
				if steps := parseFieldName(name); steps != nil {
					root = assignField(root, steps, value)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return root, nil
}

func fieldValue(n *html.Node) (string, string, bool) {
	if name := attr(n, "data-field"); name != "" {
		if v, ok := attrOK(n, "data-value"); ok {
			return name, v, true
		}
		return name, textContent(n), true
	}

	name := attr(n, "name")
	if name == "" {
		return "", "", false
	}

	switch n.Data {
	case "input":
		switch strings.ToLower(attr(n, "type")) {
		case "checkbox", "radio":
			if _, checked := attrOK(n, "checked"); !checked {
				return "", "", false
			}
			if v, ok := attrOK(n, "value"); ok {
				return name, v, true
			}
			return name, "Y", true
		case "submit", "button", "reset", "image", "file":
			return "", "", false
		}
		return name, attr(n, "value"), true
	case "textarea":
		return name, textContent(n), true
	case "select":
		return name, selectedOption(n), true
	default:
		return "", "", false
	}
}

func selectedOption(sel *html.Node) string {
	var first, chosen *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if chosen != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "option" {
			if first == nil {
				first = n
			}
			if _, ok := attrOK(n, "selected"); ok {
				chosen = n
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(sel)

	if chosen == nil {
		chosen = first
	}
	if chosen == nil {
		return ""
	}
	if v, ok := attrOK(chosen, "value"); ok {
		return v
	}
	return textContent(chosen)
}

// parseFieldName splits "a.b[2].c" into steps; nil means the name is unusable.
func parseFieldName(name string) []fieldStep {
	matches := fieldStepPattern.FindAllStringSubmatch(name, -1)
	if len(matches) == 0 {
		return nil
	}
	steps := make([]fieldStep, 0, len(matches))
	for _, m := range matches {
		if m[2] == "" {
			steps = append(steps, fieldStep{key: strings.TrimSpace(m[1]), index: -1})
			continue
		}
		idx, err := strconv.Atoi(m[2])
		if err != nil || idx > maxFieldIndex {
			return nil
		}
		steps = append(steps, fieldStep{index: idx})
	}
	return steps
}

// assignField writes value at steps below node and returns the updated node.
// A later field overwrites an earlier one with the same name.
func assignField(node any, steps []fieldStep, value string) any {
	if len(steps) == 0 {
		return value
	}
	step := steps[0]

	if step.index >= 0 {
		arr, _ := node.([]any)
		for len(arr) <= step.index {
			arr = append(arr, nil)
		}
		arr[step.index] = assignField(arr[step.index], steps[1:], value)
		return arr
	}

	obj, ok := node.(map[string]any)
	if !ok {
		obj = map[string]any{}
	}
	obj[step.key] = assignField(obj[step.key], steps[1:], value)
	return obj
}

func attr(n *html.Node, key string) string {
	v, _ := attrOK(n, key)
	return v
}

func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
