// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/corpsite/internal/model"
)

// GetMarketContent handles GET /markets/{id}/content.
func (h *Handler) GetMarketContent(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id")
	if !ok {
		return
	}

	lang := h.language(r)
	items, err := h.markets.ResolveContent(r.Context(), id, lang)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, items, &Meta{Total: len(items), Language: lang})
}

// GetMarketSelection handles GET /markets/{id}/selection.
func (h *Handler) GetMarketSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id")
	if !ok {
		return
	}

	sel, err := h.markets.Selection(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, sel, nil)
}

// ReplaceMarketContent handles PUT /markets/{id}/content.
func (h *Handler) ReplaceMarketContent(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id")
	if !ok {
		return
	}

	var sel model.Selection
	if !decodeBody(w, r, &sel) {
		return
	}

	if _, err := h.markets.ReplaceContent(r.Context(), id, sel); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	lang := h.language(r)
	items, err := h.markets.ResolveContent(r.Context(), id, lang)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, items, &Meta{Total: len(items), Language: lang})
}
