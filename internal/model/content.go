// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// ItemKind identifies the variant of a market content reference.
type ItemKind string

// Content reference kinds
const (
	ItemKindCertificate  ItemKind = "certificate"
	ItemKindContact      ItemKind = "contact"
	ItemKindProductGroup ItemKind = "product_group"
	ItemKindProduct      ItemKind = "product"
	ItemKindSolution     ItemKind = "solution"
)

// Fixed target URLs for marker references.
const (
	CertificatesURL = "/certificates"
	ContactURL      = "/contact"
)

// ContentTarget is the payload of a ContentReference. Exactly one concrete
// type is active per reference; the set of implementations is closed.
type ContentTarget interface {
	Kind() ItemKind
	isContentTarget()
}

// CertificateTarget points at the certificates page.
type CertificateTarget struct{}

// ContactTarget points at the contact page.
type ContactTarget struct{}

// ProductGroupTarget points at a product group.
type ProductGroupTarget struct {
	ProductGroupID int64
}

// ProductTarget points at a product.
type ProductTarget struct {
	ProductID int64
}

// SolutionTarget points at a solution.
type SolutionTarget struct {
	SolutionID int64
}

func (CertificateTarget) Kind() ItemKind  { return ItemKindCertificate }
func (ContactTarget) Kind() ItemKind      { return ItemKindContact }
func (ProductGroupTarget) Kind() ItemKind { return ItemKindProductGroup }
func (ProductTarget) Kind() ItemKind      { return ItemKindProduct }
func (SolutionTarget) Kind() ItemKind     { return ItemKindSolution }

func (CertificateTarget) isContentTarget()  {}
func (ContactTarget) isContentTarget()      {}
func (ProductGroupTarget) isContentTarget() {}
func (ProductTarget) isContentTarget()      {}
func (SolutionTarget) isContentTarget()     {}

// ContentReference is one entry of a market's linked content list.
// Position is 1-based and strictly increasing within a market.
type ContentReference struct {
	ID       int64
	MarketID int64
	Position int
	Target   ContentTarget
}

// Kind returns the kind of the reference target.
func (r ContentReference) Kind() ItemKind {
	if r.Target == nil {
		return ""
	}
	return r.Target.Kind()
}

// ResolvedContentItem is a display-ready content reference. Name is
// language specific and may be empty.
type ResolvedContentItem struct {
	Kind      ItemKind `json:"kind"`
	Name      string   `json:"name"`
	TargetURL string   `json:"target_url"`
	Position  int      `json:"position"`
}

// Selection lists the entities an editor linked to a market, in display order.
type Selection struct {
	ProductGroupIDs []int64 `json:"product_group_ids"`
	ProductIDs      []int64 `json:"product_ids"`
	SolutionIDs     []int64 `json:"solution_ids"`
}

// BlockKind is the declared kind of a rich content payload.
type BlockKind string

// Content block kinds
const (
	BlockKindText  BlockKind = "text"
	BlockKindTable BlockKind = "table"
	BlockKindList  BlockKind = "list"
	BlockKindImage BlockKind = "image"
	BlockKindMixed BlockKind = "mixed"
)

// IsValid reports whether k is a known block kind.
func (k BlockKind) IsValid() bool {
	switch k {
	case BlockKindText, BlockKindTable, BlockKindList, BlockKindImage, BlockKindMixed:
		return true
	}
	return false
}

// OwnerType identifies the entity type owning content blocks.
type OwnerType string

// Content block owners
const (
	OwnerMarket   OwnerType = "market"
	OwnerSolution OwnerType = "solution"
	OwnerAbout    OwnerType = "about"
)

// IsValid reports whether o is a known owner type.
func (o OwnerType) IsValid() bool {
	switch o {
	case OwnerMarket, OwnerSolution, OwnerAbout:
		return true
	}
	return false
}

// Owner identifies the parent entity of a content block.
type Owner struct {
	Type OwnerType `json:"type"`
	ID   int64     `json:"id"`
}

// ContentBlock is one language variant of an editable "extra content" block.
// GroupKey ties together the language variants of one logical block; at most
// one block exists per (owner, GroupKey, Language).
type ContentBlock struct {
	ID        int64     `json:"id"`
	Owner     Owner     `json:"owner"`
	Language  string    `json:"language"`
	GroupKey  int64     `json:"group_key"`
	Kind      BlockKind `json:"kind"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlockEdit is one language's edit for a content block group.
type BlockEdit struct {
	Language string    `json:"language"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Kind     BlockKind `json:"kind"`
}
