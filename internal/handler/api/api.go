// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON REST API for market content and content blocks.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/corpsite/internal/i18n"
	"github.com/olegiv/corpsite/internal/service"
	"github.com/olegiv/corpsite/internal/util"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	markets   *service.MarketService
	blocks    *service.BlockService
	languages *i18n.Matcher
	logger    *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(markets *service.MarketService, blocks *service.BlockService, languages *i18n.Matcher, logger *slog.Logger) *Handler {
	return &Handler{
		markets:   markets,
		blocks:    blocks,
		languages: languages,
		logger:    logger,
	}
}

// Routes registers the API endpoints on r. Paths are registered flat so the
// /markets/{id}/... routes and the /{owner}/{id}/blocks routes can coexist.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/status", h.Status)

	r.Get("/markets/{id}/content", h.GetMarketContent)
	r.Put("/markets/{id}/content", h.ReplaceMarketContent)
	r.Get("/markets/{id}/selection", h.GetMarketSelection)

	r.Get("/blocks/{blockID}/render", h.RenderBlock)

	r.Get("/{owner}/{id}/blocks", h.ListBlocks)
	r.Get("/{owner}/{id}/block-groups", h.ListBlockGroups)
	r.Put("/{owner}/{id}/blocks", h.CreateBlockGroup)
	r.Put("/{owner}/{id}/blocks/{groupKey}", h.UpdateBlockGroup)
	r.Delete("/{owner}/{id}/blocks/{groupKey}", h.DeleteBlockGroup)
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta describes a list response.
type Meta struct {
	Total    int    `json:"total"`
	Language string `json:"language,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response.
func WriteValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", message, nil)
}

// writeServiceError maps service errors to API responses.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteNotFound(w, err.Error())
	case errors.Is(err, service.ErrInvalidEdit), errors.Is(err, service.ErrInvalidSelection):
		WriteValidationError(w, err.Error())
	case errors.Is(err, service.ErrInvalidOwner):
		WriteBadRequest(w, err.Error(), nil)
	default:
		h.logger.Error("api request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		WriteInternalError(w, "Internal server error")
	}
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status    string   `json:"status"`
	Version   string   `json:"version"`
	Languages []string `json:"languages"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{
		Status:    "ok",
		Version:   "v1",
		Languages: h.languages.Codes(),
	}, nil)
}

// language returns the lang query parameter, or the best Accept-Language match.
func (h *Handler) language(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	return h.languages.Match(r.Header.Get("Accept-Language"))
}

// requireID parses a positive id URL parameter, writing 400 on failure.
func requireID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, ok := util.ParseID(chi.URLParam(r, param))
	if !ok {
		WriteBadRequest(w, "Invalid "+param, nil)
		return 0, false
	}
	return id, true
}

// decodeBody decodes a JSON request body into v, writing 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		WriteBadRequest(w, "Invalid JSON body", map[string]string{"body": err.Error()})
		return false
	}
	return true
}
