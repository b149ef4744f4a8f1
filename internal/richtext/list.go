// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package richtext

import (
	"encoding/json"
	"html"
	"strings"
)

// List types
const (
	ListOrdered   = "ordered"
	ListUnordered = "unordered"
)

// List is the payload of a list block.
type List struct {
	Type  string `json:"type"`
	Items []Cell `json:"items"`
}

func parseList(data []byte) (List, bool) {
	var l List
	if err := json.Unmarshal(data, &l); err != nil || l.Items == nil {
		return List{}, false
	}
	return l, true
}

// renderList emits an ordered or unordered list, items in input order.
func renderList(l List) string {
	tag := "ul"
	if l.Type == ListOrdered {
		tag = "ol"
	}

	var sb strings.Builder
	sb.WriteString("<" + tag + ` class="content-list">`)
	for _, item := range l.Items {
		sb.WriteString("<li>")
		sb.WriteString(html.EscapeString(string(item)))
		sb.WriteString("</li>")
	}
	sb.WriteString("</" + tag + ">")
	return sb.String()
}
