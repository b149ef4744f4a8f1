// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/corpsite/internal/model"
	"github.com/olegiv/corpsite/internal/store"
)

// catalog creates catalog rows for tests.
type catalog struct {
	t  *testing.T
	q  *store.Queries
	db *sql.DB
}

func newCatalog(t *testing.T, db *sql.DB) *catalog {
	return &catalog{t: t, q: store.New(db), db: db}
}

func (c *catalog) translate(entityType string, id int64, names map[string]string) {
	c.t.Helper()
	for lang, name := range names {
		require.NoError(c.t, c.q.UpsertTranslation(context.Background(), store.UpsertTranslationParams{
			EntityType: entityType,
			EntityID:   id,
			Language:   lang,
			Name:       name,
		}))
	}
}

func (c *catalog) group(slug string, names map[string]string) int64 {
	c.t.Helper()
	id, err := c.q.CreateProductGroup(context.Background(), store.CreateProductGroupParams{Slug: slug})
	require.NoError(c.t, err)
	c.translate(model.EntityTypeProductGroup, id, names)
	return id
}

func (c *catalog) product(groupID int64, slug string, names map[string]string) int64 {
	c.t.Helper()
	id, err := c.q.CreateProduct(context.Background(), store.CreateProductParams{ProductGroupID: groupID, Slug: slug})
	require.NoError(c.t, err)
	c.translate(model.EntityTypeProduct, id, names)
	return id
}

func (c *catalog) solution(slug string, names map[string]string) int64 {
	c.t.Helper()
	id, err := c.q.CreateSolution(context.Background(), slug)
	require.NoError(c.t, err)
	c.translate(model.EntityTypeSolution, id, names)
	return id
}

func (c *catalog) market(arg store.CreateMarketParams) *model.Market {
	c.t.Helper()
	id, err := c.q.CreateMarket(context.Background(), arg)
	require.NoError(c.t, err)
	m, err := c.q.GetMarket(context.Background(), id)
	require.NoError(c.t, err)
	return m
}

func (c *catalog) about(slug string) int64 {
	c.t.Helper()
	id, err := c.q.CreateAboutPage(context.Background(), slug)
	require.NoError(c.t, err)
	return id
}

func en(name string) map[string]string { return map[string]string{"en": name} }

func kinds(refs []model.ContentReference) []model.ItemKind {
	out := make([]model.ItemKind, len(refs))
	for i, r := range refs {
		out[i] = r.Kind()
	}
	return out
}

func positions(refs []model.ContentReference) []int {
	out := make([]int, len(refs))
	for i, r := range refs {
		out[i] = r.Position
	}
	return out
}
