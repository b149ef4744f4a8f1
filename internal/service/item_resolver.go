// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/corpsite/internal/i18n"
	"github.com/olegiv/corpsite/internal/model"
)

// CatalogReader loads catalog entities with their translations. Getters
// return sql.ErrNoRows for unknown ids. *store.Queries implements it.
type CatalogReader interface {
	GetProductGroup(ctx context.Context, id int64) (*model.ProductGroup, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	GetSolution(ctx context.Context, id int64) (*model.Solution, error)
}

// ItemResolver turns content references into display-ready items.
type ItemResolver struct {
	catalog CatalogReader
	logger  *slog.Logger
}

// NewItemResolver creates an ItemResolver.
func NewItemResolver(catalog CatalogReader, logger *slog.Logger) *ItemResolver {
	return &ItemResolver{catalog: catalog, logger: logger}
}

// Resolve resolves a single reference. The bool result is false when the
// reference points at a missing entity or an entity without a usable slug;
// such items are dropped by callers. Store failures are returned as errors.
func (r *ItemResolver) Resolve(ctx context.Context, ref model.ContentReference, language string) (model.ResolvedContentItem, bool, error) {
	item := model.ResolvedContentItem{Kind: ref.Kind(), Position: ref.Position}

	switch t := ref.Target.(type) {
	case model.CertificateTarget:
		item.TargetURL = model.CertificatesURL
		return item, true, nil

	case model.ContactTarget:
		item.TargetURL = model.ContactURL
		return item, true, nil

	case model.ProductGroupTarget:
		group, err := r.catalog.GetProductGroup(ctx, t.ProductGroupID)
		if err != nil {
			return r.drop(ref, err)
		}
		if group.Slug == "" {
			return r.drop(ref, nil)
		}
		item.Name = i18n.Resolve(group, language).Name
		item.TargetURL = "/products/" + group.Slug
		return item, true, nil

	case model.ProductTarget:
		product, err := r.catalog.GetProduct(ctx, t.ProductID)
		if err != nil {
			return r.drop(ref, err)
		}
		group, err := r.catalog.GetProductGroup(ctx, product.ProductGroupID)
		if err != nil {
			return r.drop(ref, err)
		}
		if product.Slug == "" || group.Slug == "" {
			return r.drop(ref, nil)
		}
		item.Name = i18n.Resolve(product, language).Name
		item.TargetURL = "/products/" + group.Slug + "/" + product.Slug
		return item, true, nil

	case model.SolutionTarget:
		solution, err := r.catalog.GetSolution(ctx, t.SolutionID)
		if err != nil {
			return r.drop(ref, err)
		}
		if solution.Slug == "" {
			return r.drop(ref, nil)
		}
		item.Name = i18n.Resolve(solution, language).Name
		item.TargetURL = "/solutions/" + solution.Slug
		return item, true, nil
	}

	return r.drop(ref, nil)
}

// ResolveAll resolves refs in order, omitting dropped items.
func (r *ItemResolver) ResolveAll(ctx context.Context, refs []model.ContentReference, language string) ([]model.ResolvedContentItem, error) {
	items := make([]model.ResolvedContentItem, 0, len(refs))
	for _, ref := range refs {
		item, ok, err := r.Resolve(ctx, ref, language)
		if err != nil {
			return nil, err
		}
		if ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *ItemResolver) drop(ref model.ContentReference, err error) (model.ResolvedContentItem, bool, error) {
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return model.ResolvedContentItem{}, false, fmt.Errorf("resolving %s reference %d: %w", ref.Kind(), ref.ID, err)
	}
	r.logger.Warn("dropping unresolvable content reference",
		"reference_id", ref.ID,
		"market_id", ref.MarketID,
		"kind", ref.Kind(),
	)
	return model.ResolvedContentItem{}, false, nil
}
