// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/corpsite/internal/model"
)

const createProductGroup = `
INSERT INTO product_groups (slug, position, created_at, updated_at)
VALUES (?, ?, ?, ?)
RETURNING id
`

// CreateProductGroupParams holds the columns of a new product group.
type CreateProductGroupParams struct {
	Slug     string
	Position int
}

func (q *Queries) CreateProductGroup(ctx context.Context, arg CreateProductGroupParams) (int64, error) {
	now := time.Now()
	var id int64
	err := q.db.QueryRowContext(ctx, createProductGroup, arg.Slug, arg.Position, now, now).Scan(&id)
	return id, err
}

const getProductGroup = `
SELECT id, slug, position FROM product_groups WHERE id = ?
`

// GetProductGroup loads a product group with its translations.
func (q *Queries) GetProductGroup(ctx context.Context, id int64) (*model.ProductGroup, error) {
	var g model.ProductGroup
	if err := q.db.QueryRowContext(ctx, getProductGroup, id).Scan(&g.ID, &g.Slug, &g.Position); err != nil {
		return nil, err
	}
	ts, err := q.ListTranslations(ctx, model.EntityTypeProductGroup, g.ID)
	if err != nil {
		return nil, err
	}
	g.Translations = ts
	return &g, nil
}

const createProduct = `
INSERT INTO products (product_group_id, slug, created_at, updated_at)
VALUES (?, ?, ?, ?)
RETURNING id
`

// CreateProductParams holds the columns of a new product.
type CreateProductParams struct {
	ProductGroupID int64
	Slug           string
}

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (int64, error) {
	now := time.Now()
	var id int64
	err := q.db.QueryRowContext(ctx, createProduct, arg.ProductGroupID, arg.Slug, now, now).Scan(&id)
	return id, err
}

const getProduct = `
SELECT id, product_group_id, slug FROM products WHERE id = ?
`

// GetProduct loads a product with its translations.
func (q *Queries) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	if err := q.db.QueryRowContext(ctx, getProduct, id).Scan(&p.ID, &p.ProductGroupID, &p.Slug); err != nil {
		return nil, err
	}
	ts, err := q.ListTranslations(ctx, model.EntityTypeProduct, p.ID)
	if err != nil {
		return nil, err
	}
	p.Translations = ts
	return &p, nil
}

const createSolution = `
INSERT INTO solutions (slug, created_at, updated_at)
VALUES (?, ?, ?)
RETURNING id
`

func (q *Queries) CreateSolution(ctx context.Context, slug string) (int64, error) {
	now := time.Now()
	var id int64
	err := q.db.QueryRowContext(ctx, createSolution, slug, now, now).Scan(&id)
	return id, err
}

const getSolution = `
SELECT id, slug, has_extra_content FROM solutions WHERE id = ?
`

// GetSolution loads a solution with its translations.
func (q *Queries) GetSolution(ctx context.Context, id int64) (*model.Solution, error) {
	var s model.Solution
	if err := q.db.QueryRowContext(ctx, getSolution, id).Scan(&s.ID, &s.Slug, &s.HasExtraContent); err != nil {
		return nil, err
	}
	ts, err := q.ListTranslations(ctx, model.EntityTypeSolution, s.ID)
	if err != nil {
		return nil, err
	}
	s.Translations = ts
	return &s, nil
}

const createMarket = `
INSERT INTO markets (slug, has_certificates, has_products, has_solutions, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id
`

// CreateMarketParams holds the columns of a new market.
type CreateMarketParams struct {
	Slug            string
	HasCertificates bool
	HasProducts     bool
	HasSolutions    bool
}

func (q *Queries) CreateMarket(ctx context.Context, arg CreateMarketParams) (int64, error) {
	now := time.Now()
	var id int64
	err := q.db.QueryRowContext(ctx, createMarket,
		arg.Slug, arg.HasCertificates, arg.HasProducts, arg.HasSolutions, now, now,
	).Scan(&id)
	return id, err
}

const getMarket = `
SELECT id, slug, has_certificates, has_products, has_solutions, has_extra_content
FROM markets WHERE id = ?
`

// GetMarket loads a market with its translations.
func (q *Queries) GetMarket(ctx context.Context, id int64) (*model.Market, error) {
	var m model.Market
	err := q.db.QueryRowContext(ctx, getMarket, id).Scan(
		&m.ID, &m.Slug, &m.HasCertificates, &m.HasProducts, &m.HasSolutions, &m.HasExtraContent,
	)
	if err != nil {
		return nil, err
	}
	ts, err := q.ListTranslations(ctx, model.EntityTypeMarket, m.ID)
	if err != nil {
		return nil, err
	}
	m.Translations = ts
	return &m, nil
}

const createAboutPage = `
INSERT INTO about_pages (slug, created_at, updated_at)
VALUES (?, ?, ?)
RETURNING id
`

func (q *Queries) CreateAboutPage(ctx context.Context, slug string) (int64, error) {
	now := time.Now()
	var id int64
	err := q.db.QueryRowContext(ctx, createAboutPage, slug, now, now).Scan(&id)
	return id, err
}

const getAboutPage = `
SELECT id, slug, has_extra_content FROM about_pages WHERE id = ?
`

// GetAboutPage loads an about page with its translations.
func (q *Queries) GetAboutPage(ctx context.Context, id int64) (*model.AboutPage, error) {
	var a model.AboutPage
	if err := q.db.QueryRowContext(ctx, getAboutPage, id).Scan(&a.ID, &a.Slug, &a.HasExtraContent); err != nil {
		return nil, err
	}
	ts, err := q.ListTranslations(ctx, model.EntityTypeAboutPage, a.ID)
	if err != nil {
		return nil, err
	}
	a.Translations = ts
	return &a, nil
}

// ownerTables maps block owners to the table carrying their has_extra_content flag.
var ownerTables = map[model.OwnerType]string{
	model.OwnerMarket:   "markets",
	model.OwnerSolution: "solutions",
	model.OwnerAbout:    "about_pages",
}

func ownerTable(owner model.OwnerType) (string, error) {
	table, ok := ownerTables[owner]
	if !ok {
		return "", fmt.Errorf("unknown owner type %q", owner)
	}
	return table, nil
}

// OwnerExists reports whether the owner row exists.
func (q *Queries) OwnerExists(ctx context.Context, owner model.Owner) (bool, error) {
	table, err := ownerTable(owner.Type)
	if err != nil {
		return false, err
	}
	var n int
	// table comes from the fixed ownerTables map
	err = q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+" WHERE id = ?", owner.ID).Scan(&n)
	return n > 0, err
}

// SetHasExtraContent stores the derived "has extra content" flag of an owner.
func (q *Queries) SetHasExtraContent(ctx context.Context, owner model.Owner, has bool) error {
	table, err := ownerTable(owner.Type)
	if err != nil {
		return err
	}
	_, err = q.db.ExecContext(ctx,
		"UPDATE "+table+" SET has_extra_content = ?, updated_at = ? WHERE id = ?",
		has, time.Now(), owner.ID,
	)
	return err
}

const listTranslations = `
SELECT id, entity_type, entity_id, language, name, description
FROM translations
WHERE entity_type = ? AND entity_id = ?
ORDER BY id
`

// ListTranslations returns an entity's translations in storage order.
func (q *Queries) ListTranslations(ctx context.Context, entityType string, entityID int64) (model.Translations, error) {
	rows, err := q.db.QueryContext(ctx, listTranslations, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items model.Translations
	for rows.Next() {
		var t model.Translation
		if err := rows.Scan(&t.ID, &t.EntityType, &t.EntityID, &t.Language, &t.Name, &t.Description); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const upsertTranslation = `
INSERT INTO translations (entity_type, entity_id, language, name, description)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (entity_type, entity_id, language)
DO UPDATE SET name = excluded.name, description = excluded.description
`

// UpsertTranslationParams holds one translation record.
type UpsertTranslationParams struct {
	EntityType  string
	EntityID    int64
	Language    string
	Name        string
	Description string
}

// UpsertTranslation creates or replaces the translation for (entity, language).
func (q *Queries) UpsertTranslation(ctx context.Context, arg UpsertTranslationParams) error {
	_, err := q.db.ExecContext(ctx, upsertTranslation,
		arg.EntityType, arg.EntityID, arg.Language, arg.Name, arg.Description,
	)
	return err
}
