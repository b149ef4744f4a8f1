// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestContentReferenceKind(t *testing.T) {
	tests := []struct {
		target ContentTarget
		want   ItemKind
	}{
		{CertificateTarget{}, ItemKindCertificate},
		{ContactTarget{}, ItemKindContact},
		{ProductGroupTarget{ProductGroupID: 1}, ItemKindProductGroup},
		{ProductTarget{ProductID: 2}, ItemKindProduct},
		{SolutionTarget{SolutionID: 3}, ItemKindSolution},
		{nil, ""},
	}

	for _, tt := range tests {
		ref := ContentReference{Target: tt.target}
		if got := ref.Kind(); got != tt.want {
			t.Errorf("Kind() = %q, want %q", got, tt.want)
		}
	}
}

func TestBlockKindIsValid(t *testing.T) {
	for _, k := range []BlockKind{BlockKindText, BlockKindTable, BlockKindList, BlockKindImage, BlockKindMixed} {
		if !k.IsValid() {
			t.Errorf("%q.IsValid() = false", k)
		}
	}
	for _, k := range []BlockKind{"", "video", "TEXT"} {
		if k.IsValid() {
			t.Errorf("%q.IsValid() = true", k)
		}
	}
}

func TestOwnerTypeIsValid(t *testing.T) {
	for _, o := range []OwnerType{OwnerMarket, OwnerSolution, OwnerAbout} {
		if !o.IsValid() {
			t.Errorf("%q.IsValid() = false", o)
		}
	}
	if OwnerType("product").IsValid() {
		t.Error(`"product".IsValid() = true`)
	}
}

func TestTranslationsHas(t *testing.T) {
	ts := Translations{{Language: "tr"}, {Language: "en"}}
	if !ts.Has("en") || !ts.Has("tr") {
		t.Error("Has() missed a stored language")
	}
	if ts.Has("de") {
		t.Error(`Has("de") = true`)
	}
	if Translations(nil).Has("en") {
		t.Error("nil Translations reported a language")
	}
}

func TestTranslationLabel(t *testing.T) {
	tests := []struct {
		name      string
		tr        Translation
		label     string
		synthetic bool
	}{
		{"named", Translation{ID: 1, Language: "en", Name: "Pumps"}, "Pumps", false},
		{"empty name", Translation{ID: 2, Language: "tr"}, "", false},
		{"synthetic", Translation{Fallback: "pumps"}, "pumps", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
			if got := tt.tr.IsSynthetic(); got != tt.synthetic {
				t.Errorf("IsSynthetic() = %v, want %v", got, tt.synthetic)
			}
		})
	}
}

func TestBlockEditValidate(t *testing.T) {
	tests := []struct {
		name    string
		edit    BlockEdit
		wantErr bool
	}{
		{"valid", BlockEdit{Language: "en", Kind: BlockKindText}, false},
		{"regional language", BlockEdit{Language: "pt-BR", Kind: BlockKindMixed}, false},
		{"missing language", BlockEdit{Kind: BlockKindText}, true},
		{"short language", BlockEdit{Language: "e", Kind: BlockKindText}, true},
		{"missing kind", BlockEdit{Language: "en"}, true},
		{"unknown kind", BlockEdit{Language: "en", Kind: "video"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.edit.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSelectionValidate(t *testing.T) {
	if err := (Selection{}).Validate(); err != nil {
		t.Errorf("empty selection: %v", err)
	}
	if err := (Selection{ProductGroupIDs: []int64{1, 2}, SolutionIDs: []int64{3}}).Validate(); err != nil {
		t.Errorf("valid selection: %v", err)
	}
	if err := (Selection{ProductIDs: []int64{4, 0}}).Validate(); err == nil {
		t.Error("zero product id: error = nil")
	}
	if err := (Selection{SolutionIDs: []int64{-1}}).Validate(); err == nil {
		t.Error("negative solution id: error = nil")
	}
}
