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
	"github.com/olegiv/corpsite/internal/richtext"
	"github.com/olegiv/corpsite/internal/store"
)

// RenderedBlock is a content block together with its decoded markup.
type RenderedBlock struct {
	model.ContentBlock
	HTML string `json:"html"`
}

// BlockGroup is one group key with every language variant stored under it.
type BlockGroup struct {
	GroupKey int64                `json:"group_key"`
	Blocks   []model.ContentBlock `json:"blocks"`
}

// BlockService edits and renders the "extra content" blocks of markets,
// solutions and about pages.
type BlockService struct {
	db          *sql.DB
	queries     *store.Queries
	decoder     *richtext.Decoder
	marketCache *cache.MarketContentCache
	logger      *slog.Logger
}

// NewBlockService creates a new BlockService. marketCache may be nil.
func NewBlockService(db *sql.DB, decoder *richtext.Decoder, marketCache *cache.MarketContentCache, logger *slog.Logger) *BlockService {
	return &BlockService{
		db:          db,
		queries:     store.New(db),
		decoder:     decoder,
		marketCache: marketCache,
		logger:      logger,
	}
}

// SyncGroup applies per-language edits to one block group of owner.
//
// With a nil groupKey a new group is created with key max(existing)+1.
// Blocks whose language appears in edits are updated in place, keeping
// their id; missing languages are created. Blocks for languages absent from
// edits are left untouched. All edits are applied in one transaction and the
// full group is returned in creation order.
func (s *BlockService) SyncGroup(ctx context.Context, owner model.Owner, groupKey *int64, edits []model.BlockEdit) ([]model.ContentBlock, error) {
	if !owner.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOwner, owner.Type)
	}
	if err := validateEdits(edits); err != nil {
		return nil, err
	}
	if groupKey != nil && *groupKey <= 0 {
		return nil, fmt.Errorf("%w: group key must be positive", ErrInvalidEdit)
	}

	var (
		blocks []model.ContentBlock
		key    int64
	)
	err := store.InTx(ctx, s.db, func(q *store.Queries) error {
		if err := requireOwner(ctx, q, owner); err != nil {
			return err
		}

		if groupKey != nil {
			key = *groupKey
		} else {
			maxKey, err := q.MaxGroupKey(ctx, owner)
			if err != nil {
				return fmt.Errorf("reading group keys: %w", err)
			}
			key = maxKey + 1
		}

		existing, err := q.ListBlocksByGroup(ctx, owner, key)
		if err != nil {
			return fmt.Errorf("listing group %d: %w", key, err)
		}
		byLanguage := make(map[string]model.ContentBlock, len(existing))
		for _, b := range existing {
			byLanguage[b.Language] = b
		}

		for _, e := range edits {
			block, found := byLanguage[e.Language]
			block.Title = e.Title
			block.Kind = e.Kind
			block.Content = s.encodePayload(e.Content, e.Kind)

			if found {
				block, err = q.UpdateContentBlock(ctx, block)
			} else {
				block.Owner = owner
				block.GroupKey = key
				block.Language = e.Language
				block, err = q.CreateContentBlock(ctx, block)
			}
			if err != nil {
				return fmt.Errorf("saving %s block of group %d: %w", e.Language, key, err)
			}
			byLanguage[e.Language] = block
		}

		if err := syncExtraContentFlag(ctx, q, owner); err != nil {
			return err
		}

		blocks, err = q.ListBlocksByGroup(ctx, owner, key)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.ownerChanged(ctx, owner)
	s.logger.Info("content block group synced",
		"owner_type", owner.Type,
		"owner_id", owner.ID,
		"group_key", key,
		"edits", len(edits),
	)
	return blocks, nil
}

// ListGroups returns the owner's blocks in language ordered by group key,
// each with its rendered markup.
func (s *BlockService) ListGroups(ctx context.Context, owner model.Owner, language string) ([]RenderedBlock, error) {
	if !owner.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOwner, owner.Type)
	}
	if err := requireOwner(ctx, s.queries, owner); err != nil {
		return nil, err
	}

	blocks, err := s.queries.ListBlocksByOwnerLanguage(ctx, owner, language)
	if err != nil {
		return nil, fmt.Errorf("listing blocks: %w", err)
	}

	out := make([]RenderedBlock, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, RenderedBlock{ContentBlock: b, HTML: s.decoder.Decode(b.Content, b.Kind)})
	}
	return out, nil
}

// ListVariants returns all of the owner's blocks grouped by group key in
// ascending key order, for editors working across languages.
func (s *BlockService) ListVariants(ctx context.Context, owner model.Owner) ([]BlockGroup, error) {
	if !owner.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOwner, owner.Type)
	}
	if err := requireOwner(ctx, s.queries, owner); err != nil {
		return nil, err
	}

	blocks, err := s.queries.ListBlocksByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("listing blocks: %w", err)
	}

	groups := []BlockGroup{}
	for _, b := range blocks {
		if n := len(groups); n > 0 && groups[n-1].GroupKey == b.GroupKey {
			groups[n-1].Blocks = append(groups[n-1].Blocks, b)
			continue
		}
		groups = append(groups, BlockGroup{GroupKey: b.GroupKey, Blocks: []model.ContentBlock{b}})
	}
	return groups, nil
}

// DeleteGroup removes every language variant of one block group.
func (s *BlockService) DeleteGroup(ctx context.Context, owner model.Owner, groupKey int64) error {
	if !owner.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidOwner, owner.Type)
	}

	err := store.InTx(ctx, s.db, func(q *store.Queries) error {
		n, err := q.DeleteBlockGroup(ctx, owner, groupKey)
		if err != nil {
			return fmt.Errorf("deleting group %d: %w", groupKey, err)
		}
		if n == 0 {
			return fmt.Errorf("block group %d: %w", groupKey, ErrNotFound)
		}
		return syncExtraContentFlag(ctx, q, owner)
	})
	if err != nil {
		return err
	}

	s.ownerChanged(ctx, owner)
	s.logger.Info("content block group deleted", "owner_type", owner.Type, "owner_id", owner.ID, "group_key", groupKey)
	return nil
}

// DeleteBlock removes a single language variant.
func (s *BlockService) DeleteBlock(ctx context.Context, id int64) error {
	var owner model.Owner

	err := store.InTx(ctx, s.db, func(q *store.Queries) error {
		block, err := q.GetContentBlock(ctx, id)
		if err != nil {
			return notFound(err, "content block", id)
		}
		owner = block.Owner

		if _, err := q.DeleteContentBlock(ctx, id); err != nil {
			return fmt.Errorf("deleting content block %d: %w", id, err)
		}
		return syncExtraContentFlag(ctx, q, owner)
	})
	if err != nil {
		return err
	}

	s.ownerChanged(ctx, owner)
	s.logger.Info("content block deleted", "block_id", id)
	return nil
}

// Render loads a block and returns its markup.
func (s *BlockService) Render(ctx context.Context, id int64) (string, error) {
	block, err := s.queries.GetContentBlock(ctx, id)
	if err != nil {
		return "", notFound(err, "content block", id)
	}
	return s.decoder.Decode(block.Content, block.Kind), nil
}

// MigratePayloads rewrites every legacy payload into envelope form in one
// transaction and returns the number of rewritten blocks. Running it again
// rewrites nothing.
func (s *BlockService) MigratePayloads(ctx context.Context) (int, error) {
	migrated := 0

	err := store.InTx(ctx, s.db, func(q *store.Queries) error {
		blocks, err := q.ListAllBlocks(ctx)
		if err != nil {
			return fmt.Errorf("listing blocks: %w", err)
		}
		for _, b := range blocks {
			if _, ok := richtext.EnvelopeFor(b.Content, b.Kind); ok {
				continue
			}
			if err := q.UpdateContentBlockPayload(ctx, b.ID, s.decoder.Adapt(b.Content, b.Kind).Encode()); err != nil {
				return fmt.Errorf("migrating content block %d: %w", b.ID, err)
			}
			migrated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if migrated > 0 {
		s.logger.Info("content block payloads migrated", "blocks", migrated)
	}
	return migrated, nil
}

// encodePayload stores editor payloads as envelopes. An envelope of another
// kind than the edit declares is treated as a legacy payload of that kind.
func (s *BlockService) encodePayload(content string, kind model.BlockKind) string {
	if _, ok := richtext.EnvelopeFor(content, kind); ok {
		return content
	}
	return s.decoder.Adapt(content, kind).Encode()
}

// ownerChanged drops cached market content after a market's blocks changed.
func (s *BlockService) ownerChanged(ctx context.Context, owner model.Owner) {
	if owner.Type != model.OwnerMarket || s.marketCache == nil {
		return
	}
	if err := s.marketCache.Invalidate(ctx, owner.ID); err != nil {
		s.logger.Warn("failed to invalidate market content cache", "market_id", owner.ID, "error", err)
	}
}

func validateEdits(edits []model.BlockEdit) error {
	if len(edits) == 0 {
		return fmt.Errorf("%w: no edits", ErrInvalidEdit)
	}
	for i, e := range edits {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("%w: edit %d: %w", ErrInvalidEdit, i, err)
		}
	}
	return nil
}

func requireOwner(ctx context.Context, q *store.Queries, owner model.Owner) error {
	ok, err := q.OwnerExists(ctx, owner)
	if err != nil {
		return fmt.Errorf("checking %s %d: %w", owner.Type, owner.ID, err)
	}
	if !ok {
		return fmt.Errorf("%s %d: %w", owner.Type, owner.ID, ErrNotFound)
	}
	return nil
}

// syncExtraContentFlag recomputes has_extra_content from the block count.
func syncExtraContentFlag(ctx context.Context, q *store.Queries, owner model.Owner) error {
	n, err := q.CountBlocksByOwner(ctx, owner)
	if err != nil {
		return fmt.Errorf("counting blocks: %w", err)
	}
	if err := q.SetHasExtraContent(ctx, owner, n > 0); err != nil {
		return fmt.Errorf("updating extra content flag: %w", err)
	}
	return nil
}
