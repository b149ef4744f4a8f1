// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package richtext

import (
	"strings"
	"testing"

	"github.com/olegiv/corpsite/internal/model"
)

func TestAdaptPreservesOutput(t *testing.T) {
	d := newTestDecoder()

	tests := []struct {
		name    string
		payload string
		kind    model.BlockKind
		want    model.BlockKind
	}{
		{"text json", `"<p>Hi &amp; bye</p>"`, model.BlockKindText, model.BlockKindText},
		{"text raw", `<p>Hi</p>`, model.BlockKindText, model.BlockKindText},
		{"table", `{"headers":["A"],"rows":[["1"]],"styles":[{"background":"#eee"}]}`, model.BlockKindTable, model.BlockKindTable},
		{"list", `{"type":"ordered","items":["x"]}`, model.BlockKindList, model.BlockKindList},
		{"image", `"/uploads/x.png"`, model.BlockKindImage, model.BlockKindImage},
		{"mixed", mixedLayout, model.BlockKindMixed, model.BlockKindMixed},
		{"malformed table", `&lt;p&gt;x`, model.BlockKindTable, KindHTML},
		{"unknown kind", `<img src="/uploads/a.png">`, "video", KindHTML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := d.Adapt(tt.payload, tt.kind)
			if env.Kind != tt.want {
				t.Errorf("Adapt kind = %q, want %q", env.Kind, tt.want)
			}

			encoded := env.Encode()
			if !IsEnvelope(encoded) {
				t.Fatalf("encoded envelope not recognized: %s", encoded)
			}

			legacy := d.Decode(tt.payload, tt.kind)
			migrated := d.Decode(encoded, tt.kind)
			if legacy != migrated {
				t.Errorf("output changed after migration:\nlegacy:   %s\nmigrated: %s", legacy, migrated)
			}
		})
	}
}

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    bool
	}{
		{"valid", `{"kind":"list","data":{"items":[]}}`, true},
		{"html kind", `{"kind":"html","data":"<p>x</p>"}`, true},
		{"unknown kind", `{"kind":"video","data":"x"}`, false},
		{"extra key", `{"kind":"list","data":{},"v":1}`, false},
		{"missing data", `{"kind":"list","x":1}`, false},
		{"legacy table", `{"headers":[],"rows":[]}`, false},
		{"string", `"kind"`, false},
		{"not json", `<p>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := ParseEnvelope(tt.payload); got != tt.want {
				t.Errorf("ParseEnvelope(%q) = %v, want %v", tt.payload, got, tt.want)
			}
		})
	}
}

func TestEnvelopeFor(t *testing.T) {
	table := `{"kind":"table","data":{"headers":["A"],"rows":[["1"]]}}`
	htmlEnv := `{"kind":"html","data":"<p>x</p>"}`

	tests := []struct {
		name    string
		payload string
		kind    model.BlockKind
		want    bool
	}{
		{"same kind", table, model.BlockKindTable, true},
		{"other kind", table, model.BlockKindText, false},
		{"html agrees with any kind", htmlEnv, model.BlockKindList, true},
		{"legacy payload", `{"headers":["A"],"rows":[]}`, model.BlockKindTable, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := EnvelopeFor(tt.payload, tt.kind); got != tt.want {
				t.Errorf("EnvelopeFor(%q, %q) = %v, want %v", tt.payload, tt.kind, got, tt.want)
			}
		})
	}
}

func TestDecodePrefersDeclaredKind(t *testing.T) {
	d := newTestDecoder()
	payload := `{"kind":"table","data":{"headers":["A"],"rows":[["1"]]}}`

	if got := d.Decode(payload, model.BlockKindTable); !strings.Contains(got, "<table") {
		t.Errorf("Decode as table = %q, want a table", got)
	}
	got := d.Decode(payload, model.BlockKindText)
	if strings.Contains(got, "<table") {
		t.Errorf("Decode as text = %q, rendered the envelope's table", got)
	}
	if got != normalizeText(payload) {
		t.Errorf("Decode as text = %q, want the payload as text %q", got, normalizeText(payload))
	}
}
