// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package richtext turns stored content block payloads into markup fragments.
//
// Payloads come in two shapes: legacy payloads whose structure depends on the
// declared block kind, and envelopes ({"kind": ..., "data": ...}) written by
// Adapt. Decode accepts both and produces identical markup for equivalent
// payloads. Decoding never fails: malformed payloads degrade to entity-decoded
// HTML with asset URLs made absolute.
package richtext

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"

	"github.com/olegiv/corpsite/internal/model"
)

// DefaultUploadPrefix is the path prefix of uploaded files.
const DefaultUploadPrefix = "/uploads/"

// Options configures a Decoder.
type Options struct {
	// AssetOrigin is the absolute origin uploaded files are served from,
	// e.g. https://cdn.example.com.
	AssetOrigin string
	// UploadPrefix marks upload-relative URLs. Defaults to DefaultUploadPrefix.
	UploadPrefix string
}

// Decoder renders content block payloads. It is safe for concurrent use.
type Decoder struct {
	origin   string
	prefix   string
	policy   *bluemonday.Policy
	markdown goldmark.Markdown
}

// NewDecoder creates a Decoder.
func NewDecoder(opts Options) *Decoder {
	prefix := opts.UploadPrefix
	if prefix == "" {
		prefix = DefaultUploadPrefix
	}
	return &Decoder{
		origin:   strings.TrimRight(opts.AssetOrigin, "/"),
		prefix:   prefix,
		policy:   bluemonday.UGCPolicy(),
		markdown: goldmark.New(),
	}
}

// Decode renders payload, declared as kind, into a markup fragment.
func (d *Decoder) Decode(payload string, kind model.BlockKind) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = d.fallback(payload)
		}
	}()

	if env, ok := EnvelopeFor(payload, kind); ok {
		return d.Render(env)
	}
	return d.Render(d.Adapt(payload, kind))
}

// Render renders an envelope.
func (d *Decoder) Render(env Envelope) string {
	switch env.Kind {
	case model.BlockKindText:
		var s string
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return d.fallback(string(env.Data))
		}
		return s
	case model.BlockKindTable:
		t, ok := parseTable(env.Data)
		if !ok {
			return d.fallback(string(env.Data))
		}
		return renderTable(t)
	case model.BlockKindList:
		l, ok := parseList(env.Data)
		if !ok {
			return d.fallback(string(env.Data))
		}
		return renderList(l)
	case model.BlockKindImage:
		src, ok := parseImage(env.Data)
		if !ok {
			return d.fallback(string(env.Data))
		}
		return d.renderImage(src)
	case model.BlockKindMixed:
		l, ok := findLayout(env.Data)
		if !ok {
			return d.fallback(string(env.Data))
		}
		return d.Compose(l.Title, l.Layout, l.Elements)
	case KindHTML:
		var s string
		if err := json.Unmarshal(env.Data, &s); err != nil {
			s = string(env.Data)
		}
		return d.fallback(s)
	}
	return d.fallback(string(env.Data))
}

// normalizeText unwraps a JSON-encoded string, strips one pair of enclosing
// double quotes and decodes HTML entities.
func normalizeText(payload string) string {
	s := payload
	var parsed string
	if err := json.Unmarshal([]byte(payload), &parsed); err == nil {
		s = parsed
	}
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return decodeEntities(s)
}

var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&amp;", "&",
)

// decodeEntities restores the five entities a rich-text editor escapes.
func decodeEntities(s string) string {
	return entityReplacer.Replace(s)
}

// fallback renders a payload that could not be interpreted for its kind.
func (d *Decoder) fallback(payload string) string {
	return d.rewriteAssetURLs(decodeEntities(payload))
}

// absoluteURL rewrites an upload-relative URL against the asset origin.
func (d *Decoder) absoluteURL(u string) (string, bool) {
	if d.origin == "" || !strings.HasPrefix(u, d.prefix) {
		return u, false
	}
	return d.origin + u, true
}

// rewriteAssetURLs makes upload-relative src attributes absolute. Only start
// tags carrying such an attribute are re-serialized; every other token is
// written back byte for byte.
func (d *Decoder) rewriteAssetURLs(markup string) string {
	if d.origin == "" || !strings.Contains(markup, d.prefix) {
		return markup
	}

	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	b.Grow(len(markup) + len(d.origin))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return b.String()
			}
			return markup
		}

		raw := string(z.Raw())
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			b.WriteString(raw)
			continue
		}

		tok := z.Token()
		changed := false
		for i, attr := range tok.Attr {
			if attr.Namespace != "" || attr.Key != "src" {
				continue
			}
			if abs, ok := d.absoluteURL(strings.TrimSpace(attr.Val)); ok {
				tok.Attr[i].Val = abs
				changed = true
			}
		}
		if changed {
			b.WriteString(tok.String())
		} else {
			b.WriteString(raw)
		}
	}
}
