// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Entity types for translations
const (
	EntityTypeProductGroup = "product_group"
	EntityTypeProduct      = "product"
	EntityTypeSolution     = "solution"
	EntityTypeMarket       = "market"
	EntityTypeAboutPage    = "about_page"
)

// FallbackLanguage is consulted when the requested language has no translation.
const FallbackLanguage = "en"

// Translation is a language-tagged bag of display fields for one entity.
// At most one Translation exists per (EntityType, EntityID, Language).
type Translation struct {
	ID          int64  `json:"id"`
	EntityType  string `json:"entity_type"`
	EntityID    int64  `json:"entity_id"`
	Language    string `json:"language"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Fallback holds a human-readable label (the entity slug) when no
	// translation record exists at all. Name is empty in that case.
	Fallback string `json:"fallback,omitempty"`
}

// IsSynthetic reports whether the translation was fabricated because the
// entity has no translation records.
func (t Translation) IsSynthetic() bool {
	return t.ID == 0 && t.Language == ""
}

// Label returns Name, or Fallback when Name is empty.
func (t Translation) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Fallback
}

// Translatable is implemented by every entity that carries translations.
type Translatable interface {
	TranslationSlug() string
	TranslationList() []Translation
}
