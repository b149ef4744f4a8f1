// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package richtext

import (
	"encoding/json"
	"errors"
	"html"
	"regexp"
	"strings"
)

// Default colors for columns without an explicit style.
const (
	defaultHeaderBackground = "#f3f4f6"
	defaultHeaderColor      = "#111827"
	defaultCellBackground   = "#ffffff"
	defaultCellColor        = "#374151"
)

// colorValue accepts hex colors, color names and rgb()/rgba() values.
var colorValue = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20}|rgba?\([0-9.,\s%]+\))$`)

var errNonScalarCell = errors.New("richtext: cell must be a scalar value")

// Cell is a table or list value. Editors store strings, but numbers and
// booleans are accepted and rendered as their JSON text.
type Cell string

// UnmarshalJSON implements json.Unmarshaler.
func (c *Cell) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = Cell(s)
		return nil
	}
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "null" {
		*c = ""
		return nil
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return errNonScalarCell
	}
	*c = Cell(trimmed)
	return nil
}

// ColumnStyle colors one table column.
type ColumnStyle struct {
	Background string `json:"background,omitempty"`
	Color      string `json:"color,omitempty"`
}

// Table is the payload of a table block.
type Table struct {
	Headers []Cell         `json:"headers"`
	Rows    [][]Cell       `json:"rows"`
	Styles  []*ColumnStyle `json:"styles,omitempty"`
}

func parseTable(data []byte) (Table, bool) {
	var t Table
	if err := json.Unmarshal(data, &t); err != nil || t.Headers == nil {
		return Table{}, false
	}
	return t, true
}

// columnStyle returns the inline style of column i.
func (t Table) columnStyle(i int, header bool) string {
	bg, fg := defaultCellBackground, defaultCellColor
	if header {
		bg, fg = defaultHeaderBackground, defaultHeaderColor
	}
	if i < len(t.Styles) && t.Styles[i] != nil {
		if s := t.Styles[i]; colorValue.MatchString(s.Background) {
			bg = s.Background
		}
		if s := t.Styles[i]; colorValue.MatchString(s.Color) {
			fg = s.Color
		}
	}
	return "background-color:" + bg + ";color:" + fg
}

// renderTable emits one header cell per header and one row per data row.
// Rows are rendered as given, without padding or truncation.
func renderTable(t Table) string {
	var sb strings.Builder
	sb.WriteString(`<table class="content-table"><thead><tr>`)
	for i, h := range t.Headers {
		sb.WriteString(`<th style="`)
		sb.WriteString(t.columnStyle(i, true))
		sb.WriteString(`">`)
		sb.WriteString(html.EscapeString(string(h)))
		sb.WriteString(`</th>`)
	}
	sb.WriteString(`</tr></thead><tbody>`)
	for _, row := range t.Rows {
		sb.WriteString(`<tr>`)
		for i, c := range row {
			sb.WriteString(`<td style="`)
			sb.WriteString(t.columnStyle(i, false))
			sb.WriteString(`">`)
			sb.WriteString(html.EscapeString(string(c)))
			sb.WriteString(`</td>`)
		}
		sb.WriteString(`</tr>`)
	}
	sb.WriteString(`</tbody></table>`)
	return sb.String()
}
