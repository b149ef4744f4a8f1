// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Translations is the per-entity translation list, kept in storage order.
type Translations []Translation

// Has reports whether a translation exists for the language.
func (ts Translations) Has(language string) bool {
	for _, t := range ts {
		if t.Language == language {
			return true
		}
	}
	return false
}

// ProductGroup is a top-level product category.
type ProductGroup struct {
	ID           int64        `json:"id"`
	Slug         string       `json:"slug"`
	Position     int          `json:"position"`
	Translations Translations `json:"translations"`
}

func (g *ProductGroup) TranslationSlug() string        { return g.Slug }
func (g *ProductGroup) TranslationList() []Translation { return g.Translations }

// Product belongs to exactly one ProductGroup.
type Product struct {
	ID             int64        `json:"id"`
	ProductGroupID int64        `json:"product_group_id"`
	Slug           string       `json:"slug"`
	Translations   Translations `json:"translations"`
}

func (p *Product) TranslationSlug() string        { return p.Slug }
func (p *Product) TranslationList() []Translation { return p.Translations }

// Solution is an industry solution page.
type Solution struct {
	ID              int64        `json:"id"`
	Slug            string       `json:"slug"`
	HasExtraContent bool         `json:"has_extra_content"`
	Translations    Translations `json:"translations"`
}

func (s *Solution) TranslationSlug() string        { return s.Slug }
func (s *Solution) TranslationList() []Translation { return s.Translations }

// Market is a target market with its own linked content list.
type Market struct {
	ID              int64        `json:"id"`
	Slug            string       `json:"slug"`
	HasCertificates bool         `json:"has_certificates"`
	HasProducts     bool         `json:"has_products"`
	HasSolutions    bool         `json:"has_solutions"`
	HasExtraContent bool         `json:"has_extra_content"`
	Translations    Translations `json:"translations"`
}

func (m *Market) TranslationSlug() string        { return m.Slug }
func (m *Market) TranslationList() []Translation { return m.Translations }

// AboutPage is a company "about" page.
type AboutPage struct {
	ID              int64        `json:"id"`
	Slug            string       `json:"slug"`
	HasExtraContent bool         `json:"has_extra_content"`
	Translations    Translations `json:"translations"`
}

func (a *AboutPage) TranslationSlug() string        { return a.Slug }
func (a *AboutPage) TranslationList() []Translation { return a.Translations }

var (
	_ Translatable = (*ProductGroup)(nil)
	_ Translatable = (*Product)(nil)
	_ Translatable = (*Solution)(nil)
	_ Translatable = (*Market)(nil)
	_ Translatable = (*AboutPage)(nil)
)
