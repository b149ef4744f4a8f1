// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package richtext

import (
	"encoding/json"
	"html"
	"strings"
)

// parseImage reads a JSON string holding the image URL.
func parseImage(data []byte) (string, bool) {
	var src string
	if err := json.Unmarshal(data, &src); err != nil {
		return "", false
	}
	src = strings.TrimSpace(src)
	if src == "" {
		return "", false
	}
	return src, true
}

func (d *Decoder) renderImage(src string) string {
	if abs, ok := d.absoluteURL(src); ok {
		src = abs
	}
	return `<img src="` + html.EscapeString(src) + `" alt="" loading="lazy" class="content-image">`
}
