// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/olegiv/corpsite/internal/model"
	"github.com/olegiv/corpsite/internal/util"
)

const listMarketContentRefs = `
SELECT id, market_id, kind, product_group_id, product_id, solution_id, position
FROM market_content_refs
WHERE market_id = ?
ORDER BY position
`

// ListMarketContentRefs returns a market's references ordered by position.
func (q *Queries) ListMarketContentRefs(ctx context.Context, marketID int64) ([]model.ContentReference, error) {
	rows, err := q.db.QueryContext(ctx, listMarketContentRefs, marketID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var refs []model.ContentReference
	for rows.Next() {
		var (
			ref                  model.ContentReference
			kind                 string
			groupID, prodID, sID sql.NullInt64
		)
		if err := rows.Scan(&ref.ID, &ref.MarketID, &kind, &groupID, &prodID, &sID, &ref.Position); err != nil {
			return nil, err
		}
		target, err := targetFromColumns(model.ItemKind(kind), groupID, prodID, sID)
		if err != nil {
			return nil, fmt.Errorf("market content ref %d: %w", ref.ID, err)
		}
		ref.Target = target
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

const deleteMarketContentRefs = `
DELETE FROM market_content_refs WHERE market_id = ?
`

// DeleteMarketContentRefs removes every reference of a market.
func (q *Queries) DeleteMarketContentRefs(ctx context.Context, marketID int64) error {
	_, err := q.db.ExecContext(ctx, deleteMarketContentRefs, marketID)
	return err
}

const createMarketContentRef = `
INSERT INTO market_content_refs (market_id, kind, product_group_id, product_id, solution_id, position)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id
`

// CreateMarketContentRef persists one reference and returns its id.
func (q *Queries) CreateMarketContentRef(ctx context.Context, ref model.ContentReference) (int64, error) {
	groupID, prodID, sID, err := columnsFromTarget(ref.Target)
	if err != nil {
		return 0, err
	}
	var id int64
	err = q.db.QueryRowContext(ctx, createMarketContentRef,
		ref.MarketID, string(ref.Kind()), groupID, prodID, sID, ref.Position,
	).Scan(&id)
	return id, err
}

func targetFromColumns(kind model.ItemKind, groupID, prodID, sID sql.NullInt64) (model.ContentTarget, error) {
	switch kind {
	case model.ItemKindCertificate:
		return model.CertificateTarget{}, nil
	case model.ItemKindContact:
		return model.ContactTarget{}, nil
	case model.ItemKindProductGroup:
		if groupID.Valid {
			return model.ProductGroupTarget{ProductGroupID: groupID.Int64}, nil
		}
	case model.ItemKindProduct:
		if prodID.Valid {
			return model.ProductTarget{ProductID: prodID.Int64}, nil
		}
	case model.ItemKindSolution:
		if sID.Valid {
			return model.SolutionTarget{SolutionID: sID.Int64}, nil
		}
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	return nil, fmt.Errorf("kind %q without target id", kind)
}

func columnsFromTarget(t model.ContentTarget) (groupID, prodID, sID sql.NullInt64, err error) {
	switch v := t.(type) {
	case model.CertificateTarget, model.ContactTarget:
	case model.ProductGroupTarget:
		groupID = util.NullID(v.ProductGroupID)
	case model.ProductTarget:
		prodID = util.NullID(v.ProductID)
	case model.SolutionTarget:
		sID = util.NullID(v.SolutionID)
	default:
		err = fmt.Errorf("unsupported content target %T", t)
	}
	return
}
