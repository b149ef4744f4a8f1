// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/olegiv/corpsite/internal/model"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "corpsite-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() { _ = db.Close() }
}

func TestProductGroupWithTranslations(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	id, err := q.CreateProductGroup(ctx, CreateProductGroupParams{Slug: "valves", Position: 2})
	if err != nil {
		t.Fatalf("CreateProductGroup: %v", err)
	}

	for _, tr := range []UpsertTranslationParams{
		{EntityType: model.EntityTypeProductGroup, EntityID: id, Language: "tr", Name: "Vanalar"},
		{EntityType: model.EntityTypeProductGroup, EntityID: id, Language: "en", Name: "Valves"},
	} {
		if err := q.UpsertTranslation(ctx, tr); err != nil {
			t.Fatalf("UpsertTranslation: %v", err)
		}
	}

	g, err := q.GetProductGroup(ctx, id)
	if err != nil {
		t.Fatalf("GetProductGroup: %v", err)
	}
	if g.Slug != "valves" || g.Position != 2 {
		t.Errorf("group = %+v", g)
	}
	if len(g.Translations) != 2 {
		t.Fatalf("len(Translations) = %d, want 2", len(g.Translations))
	}
	// Storage order is insertion order.
	if g.Translations[0].Language != "tr" {
		t.Errorf("first translation = %q, want tr", g.Translations[0].Language)
	}
}

func TestUpsertTranslationReplaces(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	id, err := q.CreateSolution(ctx, "water")
	if err != nil {
		t.Fatalf("CreateSolution: %v", err)
	}

	for _, name := range []string{"Water", "Water Treatment"} {
		if err := q.UpsertTranslation(ctx, UpsertTranslationParams{
			EntityType: model.EntityTypeSolution, EntityID: id, Language: "en", Name: name,
		}); err != nil {
			t.Fatalf("UpsertTranslation: %v", err)
		}
	}

	ts, err := q.ListTranslations(ctx, model.EntityTypeSolution, id)
	if err != nil {
		t.Fatalf("ListTranslations: %v", err)
	}
	if len(ts) != 1 {
		t.Fatalf("len = %d, want 1 (one translation per language)", len(ts))
	}
	if ts[0].Name != "Water Treatment" {
		t.Errorf("Name = %q, want %q", ts[0].Name, "Water Treatment")
	}
}

func TestGetMissingReturnsErrNoRows(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	if _, err := q.GetProductGroup(ctx, 1); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetProductGroup err = %v, want sql.ErrNoRows", err)
	}
	if _, err := q.GetProduct(ctx, 1); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetProduct err = %v, want sql.ErrNoRows", err)
	}
	if _, err := q.GetSolution(ctx, 1); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetSolution err = %v, want sql.ErrNoRows", err)
	}
	if _, err := q.GetMarket(ctx, 1); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetMarket err = %v, want sql.ErrNoRows", err)
	}
	if _, err := q.GetContentBlock(ctx, 1); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetContentBlock err = %v, want sql.ErrNoRows", err)
	}
}

func TestMarketContentRefsRoundTrip(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	marketID, err := q.CreateMarket(ctx, CreateMarketParams{Slug: "europe", HasCertificates: true})
	if err != nil {
		t.Fatalf("CreateMarket: %v", err)
	}

	targets := []model.ContentTarget{
		model.CertificateTarget{},
		model.ContactTarget{},
		model.ProductGroupTarget{ProductGroupID: 7},
		model.ProductTarget{ProductID: 8},
		model.SolutionTarget{SolutionID: 9},
	}
	// Insert in reverse to prove listing orders by position.
	for i := len(targets) - 1; i >= 0; i-- {
		if _, err := q.CreateMarketContentRef(ctx, model.ContentReference{
			MarketID: marketID, Position: i + 1, Target: targets[i],
		}); err != nil {
			t.Fatalf("CreateMarketContentRef(%d): %v", i+1, err)
		}
	}

	refs, err := q.ListMarketContentRefs(ctx, marketID)
	if err != nil {
		t.Fatalf("ListMarketContentRefs: %v", err)
	}
	if len(refs) != len(targets) {
		t.Fatalf("len = %d, want %d", len(refs), len(targets))
	}
	for i, ref := range refs {
		if ref.Position != i+1 {
			t.Errorf("refs[%d].Position = %d", i, ref.Position)
		}
		if ref.Target != targets[i] {
			t.Errorf("refs[%d].Target = %#v, want %#v", i, ref.Target, targets[i])
		}
	}

	if err := q.DeleteMarketContentRefs(ctx, marketID); err != nil {
		t.Fatalf("DeleteMarketContentRefs: %v", err)
	}
	refs, err = q.ListMarketContentRefs(ctx, marketID)
	if err != nil {
		t.Fatalf("ListMarketContentRefs: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("len after delete = %d, want 0", len(refs))
	}
}

func TestMarketContentRefDuplicatePosition(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	marketID, err := q.CreateMarket(ctx, CreateMarketParams{Slug: "europe"})
	if err != nil {
		t.Fatalf("CreateMarket: %v", err)
	}
	ref := model.ContentReference{MarketID: marketID, Position: 1, Target: model.ContactTarget{}}
	if _, err := q.CreateMarketContentRef(ctx, ref); err != nil {
		t.Fatalf("CreateMarketContentRef: %v", err)
	}
	if _, err := q.CreateMarketContentRef(ctx, ref); err == nil {
		t.Error("expected unique violation for duplicate position")
	}
}

func TestContentBlockLifecycle(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	aboutID, err := q.CreateAboutPage(ctx, "company")
	if err != nil {
		t.Fatalf("CreateAboutPage: %v", err)
	}
	owner := model.Owner{Type: model.OwnerAbout, ID: aboutID}

	if maxKey, err := q.MaxGroupKey(ctx, owner); err != nil || maxKey != 0 {
		t.Fatalf("MaxGroupKey = %d, %v; want 0", maxKey, err)
	}

	b, err := q.CreateContentBlock(ctx, model.ContentBlock{
		Owner: owner, Language: "en", GroupKey: 3, Kind: model.BlockKindText, Title: "Intro", Content: "<p>Hi</p>",
	})
	if err != nil {
		t.Fatalf("CreateContentBlock: %v", err)
	}
	if b.ID == 0 || b.CreatedAt.IsZero() {
		t.Errorf("block = %+v", b)
	}

	if _, err := q.CreateContentBlock(ctx, model.ContentBlock{
		Owner: owner, Language: "en", GroupKey: 3, Kind: model.BlockKindText,
	}); err == nil {
		t.Error("expected unique violation for duplicate (owner, group, language)")
	}

	b.Title = "Welcome"
	b.Kind = model.BlockKindList
	updated, err := q.UpdateContentBlock(ctx, b)
	if err != nil {
		t.Fatalf("UpdateContentBlock: %v", err)
	}
	if updated.ID != b.ID || updated.Title != "Welcome" || updated.Kind != model.BlockKindList {
		t.Errorf("updated = %+v", updated)
	}

	if maxKey, err := q.MaxGroupKey(ctx, owner); err != nil || maxKey != 3 {
		t.Errorf("MaxGroupKey = %d, %v; want 3", maxKey, err)
	}
	if n, err := q.CountBlocksByOwner(ctx, owner); err != nil || n != 1 {
		t.Errorf("CountBlocksByOwner = %d, %v; want 1", n, err)
	}

	n, err := q.DeleteBlockGroup(ctx, owner, 3)
	if err != nil || n != 1 {
		t.Errorf("DeleteBlockGroup = %d, %v; want 1", n, err)
	}
}

func TestSetHasExtraContent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	solutionID, err := q.CreateSolution(ctx, "water")
	if err != nil {
		t.Fatalf("CreateSolution: %v", err)
	}
	owner := model.Owner{Type: model.OwnerSolution, ID: solutionID}

	if ok, err := q.OwnerExists(ctx, owner); err != nil || !ok {
		t.Fatalf("OwnerExists = %v, %v", ok, err)
	}
	if ok, err := q.OwnerExists(ctx, model.Owner{Type: model.OwnerSolution, ID: 99}); err != nil || ok {
		t.Errorf("OwnerExists(99) = %v, %v", ok, err)
	}
	if _, err := q.OwnerExists(ctx, model.Owner{Type: "page", ID: 1}); err == nil {
		t.Error("expected error for unknown owner type")
	}

	if err := q.SetHasExtraContent(ctx, owner, true); err != nil {
		t.Fatalf("SetHasExtraContent: %v", err)
	}
	s, err := q.GetSolution(ctx, solutionID)
	if err != nil {
		t.Fatalf("GetSolution: %v", err)
	}
	if !s.HasExtraContent {
		t.Error("HasExtraContent = false, want true")
	}
}

func TestInTxRollsBack(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	errAbort := errors.New("abort")

	err := InTx(ctx, db, func(q *Queries) error {
		if _, err := q.CreateMarket(ctx, CreateMarketParams{Slug: "europe"}); err != nil {
			return err
		}
		return errAbort
	})
	if !errors.Is(err, errAbort) {
		t.Fatalf("InTx err = %v, want errAbort", err)
	}

	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM markets").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("markets = %d, want 0 after rollback", n)
	}
}

func TestPragmasOnEveryConnection(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()

	// Holding the first connection forces the pool to open a second one.
	var conns []*sql.Conn
	for range 2 {
		conn, err := db.Conn(ctx)
		if err != nil {
			t.Fatalf("Conn: %v", err)
		}
		defer func() { _ = conn.Close() }()
		conns = append(conns, conn)
	}

	for i, conn := range conns {
		var foreignKeys, busyTimeout int
		if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
			t.Fatalf("conn %d foreign_keys: %v", i, err)
		}
		if err := conn.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&busyTimeout); err != nil {
			t.Fatalf("conn %d busy_timeout: %v", i, err)
		}
		if foreignKeys != 1 {
			t.Errorf("conn %d foreign_keys = %d, want 1", i, foreignKeys)
		}
		if busyTimeout != 5000 {
			t.Errorf("conn %d busy_timeout = %d, want 5000", i, busyTimeout)
		}
	}
}

func TestSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()

	if err := Seed(ctx, db, false); err != nil {
		t.Fatalf("Seed(disabled): %v", err)
	}
	var n int
	_ = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM markets").Scan(&n)
	if n != 0 {
		t.Fatalf("disabled seed created %d markets", n)
	}

	if err := Seed(ctx, db, true); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	// Second seed should skip.
	if err := Seed(ctx, db, true); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	_ = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM markets").Scan(&n)
	if n != 1 {
		t.Errorf("markets = %d, want 1", n)
	}
	_ = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM product_groups").Scan(&n)
	if n != len(demoGroups) {
		t.Errorf("product groups = %d, want %d", n, len(demoGroups))
	}
}
