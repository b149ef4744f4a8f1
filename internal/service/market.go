// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/olegiv/corpsite/internal/cache"
	"github.com/olegiv/corpsite/internal/model"
	"github.com/olegiv/corpsite/internal/store"
)

// MarketService manages the linked content list of markets.
type MarketService struct {
	db       *sql.DB
	queries  *store.Queries
	resolver *ItemResolver
	cache    *cache.MarketContentCache
	logger   *slog.Logger
}

// NewMarketService creates a new MarketService.
// If contentCache is nil, resolved content is computed on every call.
func NewMarketService(db *sql.DB, contentCache *cache.MarketContentCache, logger *slog.Logger) *MarketService {
	queries := store.New(db)
	return &MarketService{
		db:       db,
		queries:  queries,
		resolver: NewItemResolver(queries, logger),
		cache:    contentCache,
		logger:   logger,
	}
}

// ReplaceContent rebuilds a market's content references from sel. Selections
// the market is not eligible for are discarded before assembly. The previous
// references are deleted and the new set inserted in one transaction.
func (s *MarketService) ReplaceContent(ctx context.Context, marketID int64, sel model.Selection) ([]model.ContentReference, error) {
	if err := sel.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	}

	var refs []model.ContentReference

	err := store.InTx(ctx, s.db, func(q *store.Queries) error {
		market, err := q.GetMarket(ctx, marketID)
		if err != nil {
			return notFound(err, "market", marketID)
		}

		if !market.HasProducts {
			sel.ProductGroupIDs = nil
			sel.ProductIDs = nil
		}
		if !market.HasSolutions {
			sel.SolutionIDs = nil
		}

		refs, err = NewAssembler(q, s.logger).Assemble(ctx, market, sel)
		if err != nil {
			return err
		}

		if err := q.DeleteMarketContentRefs(ctx, marketID); err != nil {
			return fmt.Errorf("deleting content references: %w", err)
		}
		for i := range refs {
			id, err := q.CreateMarketContentRef(ctx, refs[i])
			if err != nil {
				return fmt.Errorf("creating content reference at position %d: %w", refs[i].Position, err)
			}
			refs[i].ID = id
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, marketID)
	s.logger.Info("market content replaced", "market_id", marketID, "references", len(refs))
	return refs, nil
}

// ResolveContent returns the market's display-ready content list in language,
// ordered by position. Unresolvable references are omitted.
func (s *MarketService) ResolveContent(ctx context.Context, marketID int64, language string) ([]model.ResolvedContentItem, error) {
	if _, err := s.queries.GetMarket(ctx, marketID); err != nil {
		return nil, notFound(err, "market", marketID)
	}

	load := func() ([]model.ResolvedContentItem, error) {
		s.logger.Debug("resolving market content", "market_id", marketID, "language", language)
		refs, err := s.queries.ListMarketContentRefs(ctx, marketID)
		if err != nil {
			return nil, fmt.Errorf("listing content references: %w", err)
		}
		return s.resolver.ResolveAll(ctx, refs, language)
	}

	if s.cache == nil {
		return load()
	}
	return s.cache.GetOrLoad(ctx, marketID, language, load)
}

// Selection reconstructs the selection that produced the market's stored
// references. Marker references are not part of a selection.
func (s *MarketService) Selection(ctx context.Context, marketID int64) (model.Selection, error) {
	sel := model.Selection{
		ProductGroupIDs: []int64{},
		ProductIDs:      []int64{},
		SolutionIDs:     []int64{},
	}

	if _, err := s.queries.GetMarket(ctx, marketID); err != nil {
		return sel, notFound(err, "market", marketID)
	}

	refs, err := s.queries.ListMarketContentRefs(ctx, marketID)
	if err != nil {
		return sel, fmt.Errorf("listing content references: %w", err)
	}

	for _, ref := range refs {
		switch t := ref.Target.(type) {
		case model.ProductGroupTarget:
			sel.ProductGroupIDs = append(sel.ProductGroupIDs, t.ProductGroupID)
		case model.ProductTarget:
			sel.ProductIDs = append(sel.ProductIDs, t.ProductID)
		case model.SolutionTarget:
			sel.SolutionIDs = append(sel.SolutionIDs, t.SolutionID)
		}
	}
	return sel, nil
}

// invalidate drops cached resolutions of a market. Failures only log: the
// cache entries expire on their own.
func (s *MarketService) invalidate(ctx context.Context, marketID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, marketID); err != nil {
		s.logger.Warn("failed to invalidate market content cache", "market_id", marketID, "error", err)
	}
}
