// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/olegiv/corpsite/internal/model"
)

// MarketContentCache caches resolved market content lists per language.
type MarketContentCache struct {
	items *TypedCache[[]model.ResolvedContentItem]
}

// NewMarketContentCache creates a MarketContentCache on top of backend.
func NewMarketContentCache(backend Cacher, ttl time.Duration) *MarketContentCache {
	return &MarketContentCache{
		items: NewTypedCache[[]model.ResolvedContentItem](backend, ttl),
	}
}

func marketPrefix(marketID int64) string {
	return "market:" + strconv.FormatInt(marketID, 10) + ":"
}

func marketKey(marketID int64, language string) string {
	return marketPrefix(marketID) + language
}

// GetOrLoad returns the cached items for (marketID, language) or loads them.
func (c *MarketContentCache) GetOrLoad(ctx context.Context, marketID int64, language string,
	load func() ([]model.ResolvedContentItem, error)) ([]model.ResolvedContentItem, error) {
	return c.items.GetOrSet(ctx, marketKey(marketID, language), load)
}

// Invalidate drops every language of a market.
func (c *MarketContentCache) Invalidate(ctx context.Context, marketID int64) error {
	return c.items.DeleteByPrefix(ctx, marketPrefix(marketID))
}
