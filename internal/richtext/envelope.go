// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package richtext

import (
	"encoding/json"

	"github.com/olegiv/corpsite/internal/model"
)

// KindHTML marks an envelope holding raw markup that could not be
// interpreted as its declared kind.
const KindHTML model.BlockKind = "html"

// Envelope is the explicit, discriminated form of a stored payload.
type Envelope struct {
	Kind model.BlockKind `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Encode serializes the envelope for storage.
func (e Envelope) Encode() string {
	b, err := json.Marshal(e)
	if err != nil {
		return ""
	}
	return string(b)
}

// ParseEnvelope recognizes a payload written by Encode: a JSON object with
// exactly the keys "kind" and "data" and a known kind.
func ParseEnvelope(payload string) (Envelope, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &fields); err != nil || len(fields) != 2 {
		return Envelope{}, false
	}
	rawKind, okKind := fields["kind"]
	data, okData := fields["data"]
	if !okKind || !okData {
		return Envelope{}, false
	}
	var kind model.BlockKind
	if err := json.Unmarshal(rawKind, &kind); err != nil {
		return Envelope{}, false
	}
	if !kind.IsValid() && kind != KindHTML {
		return Envelope{}, false
	}
	return Envelope{Kind: kind, Data: data}, true
}

// EnvelopeFor returns the envelope in payload when it agrees with the
// declared kind. An envelope of another kind does not; the declared kind wins
// and the payload is treated as legacy. KindHTML agrees with every kind.
func EnvelopeFor(payload string, kind model.BlockKind) (Envelope, bool) {
	env, ok := ParseEnvelope(payload)
	if !ok || (env.Kind != kind && env.Kind != KindHTML) {
		return Envelope{}, false
	}
	return env, true
}

// IsEnvelope reports whether payload is already in envelope form.
func IsEnvelope(payload string) bool {
	_, ok := ParseEnvelope(payload)
	return ok
}

// Adapt interprets a legacy payload declared as kind and returns its envelope.
// Payloads that do not parse for their kind become KindHTML envelopes, so
// rendering the result matches decoding the legacy payload.
func (d *Decoder) Adapt(payload string, kind model.BlockKind) Envelope {
	switch kind {
	case model.BlockKindText:
		return envelopeOf(model.BlockKindText, normalizeText(payload))
	case model.BlockKindTable:
		if t, ok := parseTable([]byte(payload)); ok {
			return envelopeOf(model.BlockKindTable, t)
		}
	case model.BlockKindList:
		if l, ok := parseList([]byte(payload)); ok {
			return envelopeOf(model.BlockKindList, l)
		}
	case model.BlockKindImage:
		if src, ok := parseImage([]byte(payload)); ok {
			return envelopeOf(model.BlockKindImage, src)
		}
	case model.BlockKindMixed:
		if l, ok := findLayout([]byte(payload)); ok {
			return envelopeOf(model.BlockKindMixed, l)
		}
	}
	return envelopeOf(KindHTML, payload)
}

func envelopeOf(kind model.BlockKind, v any) Envelope {
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal("")
		kind = KindHTML
	}
	return Envelope{Kind: kind, Data: data}
}
