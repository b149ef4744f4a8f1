// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"slices"

	"golang.org/x/text/language"
)

// Matcher picks a content language from an Accept-Language header.
type Matcher struct {
	codes   []string
	matcher language.Matcher
}

// NewMatcher creates a Matcher over the given language codes. The first code
// is returned when nothing matches.
func NewMatcher(codes ...string) *Matcher {
	tags := make([]language.Tag, 0, len(codes))
	kept := make([]string, 0, len(codes))
	for _, code := range codes {
		if slices.Contains(kept, code) {
			continue
		}
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		kept = append(kept, code)
	}
	if len(kept) == 0 {
		tags = []language.Tag{language.English}
		kept = []string{"en"}
	}
	return &Matcher{codes: kept, matcher: language.NewMatcher(tags)}
}

// Default returns the code used when nothing matches.
func (m *Matcher) Default() string {
	return m.codes[0]
}

// Match finds the best matching supported code for an Accept-Language value
// or a single language code.
func (m *Matcher) Match(acceptLang string) string {
	if acceptLang == "" {
		return m.Default()
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return m.Default()
		}
		tags = []language.Tag{tag}
	}

	_, idx, conf := m.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(m.codes) {
		return m.Default()
	}
	return m.codes[idx]
}

// Codes returns the supported codes, default first.
func (m *Matcher) Codes() []string {
	return slices.Clone(m.codes)
}

// MatchLanguage picks the best of supported for an Accept-Language value,
// falling back to the first supported code.
func MatchLanguage(acceptLang string, supported []string) string {
	return NewMatcher(supported...).Match(acceptLang)
}
