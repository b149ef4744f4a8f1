// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/corpsite/internal/model"
)

// ownerSegments maps URL path segments to block owner types.
var ownerSegments = map[string]model.OwnerType{
	"markets":   model.OwnerMarket,
	"solutions": model.OwnerSolution,
	"about":     model.OwnerAbout,
}

// SyncGroupRequest is the body of the block group PUT endpoints.
type SyncGroupRequest struct {
	Edits []model.BlockEdit `json:"edits"`
}

// RenderResponse is the body of the block render endpoint.
type RenderResponse struct {
	ID   int64  `json:"id"`
	HTML string `json:"html"`
}

// requireOwner resolves the {owner}/{id} URL parameters. Unknown owner
// segments are reported as 404 since the path does not exist.
func requireOwner(w http.ResponseWriter, r *http.Request) (model.Owner, bool) {
	ownerType, ok := ownerSegments[chi.URLParam(r, "owner")]
	if !ok {
		WriteNotFound(w, "Not found")
		return model.Owner{}, false
	}
	id, ok := requireID(w, r, "id")
	if !ok {
		return model.Owner{}, false
	}
	return model.Owner{Type: ownerType, ID: id}, true
}

// ListBlocks handles GET /{owner}/{id}/blocks.
func (h *Handler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	lang := h.language(r)
	blocks, err := h.blocks.ListGroups(r.Context(), owner, lang)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, blocks, &Meta{Total: len(blocks), Language: lang})
}

// ListBlockGroups handles GET /{owner}/{id}/block-groups.
func (h *Handler) ListBlockGroups(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	groups, err := h.blocks.ListVariants(r.Context(), owner)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, groups, &Meta{Total: len(groups)})
}

// CreateBlockGroup handles PUT /{owner}/{id}/blocks. The group key is assigned.
func (h *Handler) CreateBlockGroup(w http.ResponseWriter, r *http.Request) {
	h.syncGroup(w, r, nil)
}

// UpdateBlockGroup handles PUT /{owner}/{id}/blocks/{groupKey}.
func (h *Handler) UpdateBlockGroup(w http.ResponseWriter, r *http.Request) {
	key, ok := requireID(w, r, "groupKey")
	if !ok {
		return
	}
	h.syncGroup(w, r, &key)
}

func (h *Handler) syncGroup(w http.ResponseWriter, r *http.Request, groupKey *int64) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req SyncGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	blocks, err := h.blocks.SyncGroup(r.Context(), owner, groupKey, req.Edits)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, blocks, &Meta{Total: len(blocks)})
}

// DeleteBlockGroup handles DELETE /{owner}/{id}/blocks/{groupKey}.
func (h *Handler) DeleteBlockGroup(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	key, ok := requireID(w, r, "groupKey")
	if !ok {
		return
	}

	if err := h.blocks.DeleteGroup(r.Context(), owner, key); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RenderBlock handles GET /blocks/{blockID}/render.
func (h *Handler) RenderBlock(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "blockID")
	if !ok {
		return
	}

	html, err := h.blocks.Render(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, RenderResponse{ID: id, HTML: html}, nil)
}
