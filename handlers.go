package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies accepted by create and update.
const maxBodyBytes = 1 << 20

// Handler handles HTTP requests for items.
type Handler struct {
	store   Store
	logger  *zap.Logger
	version string
}

// NewHandler creates a Handler with dependencies.
func NewHandler(store Store, logger *zap.Logger, version string) *Handler {
	return &Handler{store: store, logger: logger, version: version}
}

// handleHealth processes GET /health.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
	})
}

// handleListItems processes GET /api/v1/items.
func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.logger, http.StatusOK, h.store.List(), "")
}

// handleGetItem processes GET /api/v1/items/{id}.
func (h *Handler) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	item, err := h.store.Get(id)
	if err != nil {
		h.writeStoreError(w, id, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, item, "")
}

// handleCreateItem processes POST /api/v1/items.
func (h *Handler) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeFailure(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeFailure(w, h.logger, http.StatusBadRequest, "name is required")
		return
	}

	now := time.Now().UTC()
	item := Item{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	h.store.Insert(item)

	w.Header().Set("Location", fmt.Sprintf("/api/v1/items/%s", item.ID))
	writeSuccess(w, h.logger, http.StatusCreated, item, msgCreated)
}

// handleUpdateItem processes PUT /api/v1/items/{id}.
func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	var req UpdateItemRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeFailure(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		writeFailure(w, h.logger, http.StatusBadRequest, "name must not be empty")
		return
	}

	item, err := h.store.Update(id, ItemPatch{Name: req.Name, Description: req.Description})
	if err != nil {
		h.writeStoreError(w, id, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, item, msgUpdated)
}

// handleDeleteItem processes DELETE /api/v1/items/{id}.
func (h *Handler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	if !h.store.Remove(id) {
		h.writeStoreError(w, id, ErrNotFound)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, nil, msgDeleted)
}

// handleNotFound answers requests that match no route.
func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeFailure(w, h.logger, http.StatusNotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
}

// handleMethodNotAllowed answers requests with an unsupported method.
func (h *Handler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeFailure(w, h.logger, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
}

// itemID parses the {id} path parameter, writing a 400 when it is malformed.
func (h *Handler) itemID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeFailure(w, h.logger, http.StatusBadRequest, fmt.Sprintf("%v %q", ErrInvalidID, raw))
		return uuid.Nil, false
	}
	return id, true
}

// writeStoreError maps a store error to a failure envelope.
func (h *Handler) writeStoreError(w http.ResponseWriter, id uuid.UUID, err error) {
	if errors.Is(err, ErrNotFound) {
		writeFailure(w, h.logger, http.StatusNotFound, fmt.Sprintf("Item with id %s not found", id))
		return
	}
	h.logger.Error("store error", zap.Stringer("id", id), zap.Error(err))
	writeFailure(w, h.logger, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// decodeBody reads a single JSON object into dst, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request payload: %v", ErrInvalidInput, err)
	}
	if err := ensureSingleJSON(dec); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// ensureSingleJSON ensures only a single JSON object is in the request body.
func ensureSingleJSON(dec *json.Decoder) error {
	if t, err := dec.Token(); err != io.EOF || t != nil {
		return errors.New("request body must only contain a single JSON object")
	}
	return nil
}
