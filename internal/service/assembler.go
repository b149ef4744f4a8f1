// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/corpsite/internal/model"
)

// Assembler builds the ordered content reference list of a market.
type Assembler struct {
	catalog CatalogReader
	logger  *slog.Logger
}

// NewAssembler creates an Assembler.
func NewAssembler(catalog CatalogReader, logger *slog.Logger) *Assembler {
	return &Assembler{catalog: catalog, logger: logger}
}

// Assemble returns the full replacement reference set for market. Positions
// start at 1 and increase by one per emitted reference: the certificate
// marker (when the market has certificates), the contact marker, then the
// selected product groups, products and solutions in caller order.
//
// Entities without an English translation are skipped, as are products whose
// own or group slug is empty and ids that do not exist. The market's
// HasProducts and HasSolutions flags are not consulted.
func (a *Assembler) Assemble(ctx context.Context, market *model.Market, sel model.Selection) ([]model.ContentReference, error) {
	var refs []model.ContentReference
	emit := func(target model.ContentTarget) {
		refs = append(refs, model.ContentReference{
			MarketID: market.ID,
			Position: len(refs) + 1,
			Target:   target,
		})
	}

	if market.HasCertificates {
		emit(model.CertificateTarget{})
	}
	emit(model.ContactTarget{})

	for _, id := range sel.ProductGroupIDs {
		group, err := a.catalog.GetProductGroup(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				a.excluded(model.ItemKindProductGroup, id, "not found")
				continue
			}
			return nil, fmt.Errorf("loading %s %d: %w", model.ItemKindProductGroup, id, err)
		}
		if !group.Translations.Has(model.FallbackLanguage) {
			a.excluded(model.ItemKindProductGroup, id, "missing english translation")
			continue
		}
		emit(model.ProductGroupTarget{ProductGroupID: id})
	}

	for _, id := range sel.ProductIDs {
		product, err := a.catalog.GetProduct(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				a.excluded(model.ItemKindProduct, id, "not found")
				continue
			}
			return nil, fmt.Errorf("loading %s %d: %w", model.ItemKindProduct, id, err)
		}
		if !product.Translations.Has(model.FallbackLanguage) {
			a.excluded(model.ItemKindProduct, id, "missing english translation")
			continue
		}
		group, err := a.catalog.GetProductGroup(ctx, product.ProductGroupID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				a.excluded(model.ItemKindProductGroup, product.ProductGroupID, "not found")
				continue
			}
			return nil, fmt.Errorf("loading %s %d: %w", model.ItemKindProductGroup, product.ProductGroupID, err)
		}
		if product.Slug == "" || group.Slug == "" {
			a.excluded(model.ItemKindProduct, id, "missing slug")
			continue
		}
		emit(model.ProductTarget{ProductID: id})
	}

	for _, id := range sel.SolutionIDs {
		solution, err := a.catalog.GetSolution(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				a.excluded(model.ItemKindSolution, id, "not found")
				continue
			}
			return nil, fmt.Errorf("loading %s %d: %w", model.ItemKindSolution, id, err)
		}
		if !solution.Translations.Has(model.FallbackLanguage) {
			a.excluded(model.ItemKindSolution, id, "missing english translation")
			continue
		}
		emit(model.SolutionTarget{SolutionID: id})
	}

	return refs, nil
}

func (a *Assembler) excluded(kind model.ItemKind, id int64, reason string) {
	a.logger.Debug("excluding selection from market content", "kind", kind, "id", id, "reason", reason)
}
