// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n resolves translated display fields of catalog entities and
// negotiates request languages.
package i18n

import "github.com/olegiv/corpsite/internal/model"

// Resolve returns the best translation of entity for language.
//
// Search order: exact language, then model.FallbackLanguage, then the first
// translation in storage order. An entity without translations yields a
// synthetic record with an empty Name and the slug as Fallback.
func Resolve(entity model.Translatable, language string) model.Translation {
	return ResolveList(entity.TranslationList(), entity.TranslationSlug(), language)
}

// ResolveList is Resolve over a bare translation list.
func ResolveList(translations []model.Translation, slug, language string) model.Translation {
	if t, ok := find(translations, language); ok {
		return t
	}
	if t, ok := find(translations, model.FallbackLanguage); ok {
		return t
	}
	if len(translations) > 0 {
		return translations[0]
	}
	return model.Translation{Fallback: slug}
}

func find(translations []model.Translation, language string) (model.Translation, bool) {
	for _, t := range translations {
		if t.Language == language {
			return t, true
		}
	}
	return model.Translation{}, false
}
