// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package richtext

import (
	"bytes"
	"encoding/json"
	"html"
	"strconv"
	"strings"

	"github.com/olegiv/corpsite/internal/util"
)

// Element types of a mixed layout.
const (
	ElementText     = "text"
	ElementHeading  = "heading"
	ElementHTML     = "html"
	ElementMarkdown = "markdown"
	ElementTable    = "table"
	ElementList     = "list"
	ElementImage    = "image"
)

// layoutColumns maps layout names to their column count.
var layoutColumns = map[string]int{
	"single":        1,
	"two-column":    2,
	"three-column":  3,
	"sidebar-left":  2,
	"sidebar-right": 2,
}

// Element is one item of a mixed layout. Content holds the element's own
// payload: a JSON string for text, heading, html, markdown and image, and
// the table or list object for those types.
type Element struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
	// Column is the 1-based target column; 0 distributes round-robin.
	Column int `json:"column,omitempty"`
}

// Layout is the structured form of a mixed block.
type Layout struct {
	Title    string    `json:"title"`
	Layout   string    `json:"layout"`
	Elements []Element `json:"elements"`
}

// findLayout locates a {title, layout, elements} object either nested under
// "json" (the {html, json} editor shape) or at the top level.
func findLayout(data []byte) (Layout, bool) {
	var wrapper struct {
		JSON json.RawMessage `json:"json"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return Layout{}, false
	}
	if len(wrapper.JSON) > 0 {
		nested := wrapper.JSON
		// Some editors stored the nested object as a JSON string.
		var s string
		if json.Unmarshal(nested, &s) == nil {
			nested = []byte(s)
		}
		if l, ok := parseLayout(nested); ok {
			return l, true
		}
	}
	return parseLayout(data)
}

func parseLayout(data []byte) (Layout, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Layout{}, false
	}
	if _, ok := fields["layout"]; !ok {
		return Layout{}, false
	}
	if _, ok := fields["elements"]; !ok {
		return Layout{}, false
	}
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, false
	}
	return l, true
}

// Compose renders a titled layout of elements into columns.
// Unknown element types are skipped.
func (d *Decoder) Compose(title, layout string, elements []Element) string {
	cols, ok := layoutColumns[layout]
	if !ok {
		cols = 1
		layout = "single"
	}

	columns := make([][]string, cols)
	for i, el := range elements {
		markup := d.renderElement(el)
		if markup == "" {
			continue
		}
		col := i % cols
		if el.Column >= 1 && el.Column <= cols {
			col = el.Column - 1
		}
		columns[col] = append(columns[col], markup)
	}

	var sb strings.Builder
	sb.WriteString(`<section class="mixed-content layout-`)
	sb.WriteString(util.Slugify(layout))
	sb.WriteString(`">`)
	if title != "" {
		sb.WriteString(`<h3 class="mixed-title">`)
		sb.WriteString(html.EscapeString(title))
		sb.WriteString(`</h3>`)
	}
	sb.WriteString(`<div class="mixed-columns columns-`)
	sb.WriteString(strconv.Itoa(cols))
	sb.WriteString(`">`)
	for _, col := range columns {
		sb.WriteString(`<div class="mixed-column">`)
		for _, markup := range col {
			sb.WriteString(`<div class="mixed-element">`)
			sb.WriteString(markup)
			sb.WriteString(`</div>`)
		}
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div></section>`)
	return sb.String()
}

func (d *Decoder) renderElement(el Element) string {
	switch el.Type {
	case ElementText:
		s, ok := elementString(el.Content)
		if !ok || s == "" {
			return ""
		}
		escaped := html.EscapeString(s)
		return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
	case ElementHeading:
		s, ok := elementString(el.Content)
		if !ok || s == "" {
			return ""
		}
		return "<h4>" + html.EscapeString(s) + "</h4>"
	case ElementHTML:
		s, ok := elementString(el.Content)
		if !ok {
			return ""
		}
		return d.rewriteAssetURLs(d.policy.Sanitize(decodeEntities(s)))
	case ElementMarkdown:
		s, ok := elementString(el.Content)
		if !ok {
			return ""
		}
		var buf bytes.Buffer
		if err := d.markdown.Convert([]byte(s), &buf); err != nil {
			return ""
		}
		return d.rewriteAssetURLs(d.policy.Sanitize(buf.String()))
	case ElementTable:
		if t, ok := parseTable(el.Content); ok {
			return renderTable(t)
		}
	case ElementList:
		if l, ok := parseList(el.Content); ok {
			return renderList(l)
		}
	case ElementImage:
		if src, ok := parseImage(el.Content); ok {
			return d.renderImage(src)
		}
	}
	return ""
}

func elementString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
