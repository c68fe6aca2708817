package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/aminekebichi/MyDay/internal/apperr"
	"github.com/aminekebichi/MyDay/internal/models"
	"github.com/aminekebichi/MyDay/internal/service"
	"github.com/aminekebichi/MyDay/shared/middleware"
)

const (
	SessionHeader = "X-Session-Token"
	maxBodyBytes  = 1 << 20
)

type ItemHandler struct {
	itemService *service.ItemService
	logger      *logrus.Logger
}

func NewItemHandler(is *service.ItemService, logger *logrus.Logger) *ItemHandler {
	return &ItemHandler{
		itemService: is,
		logger:      logger,
	}
}

type errorResponse struct {
	Error   string              `json:"error"`
	Code    apperr.Code         `json:"code"`
	Details map[string][]string `json:"details,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func (h *ItemHandler) entry(r *http.Request, handler string) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"component":  "http_handler",
		"handler":    handler,
		"request_id": middleware.GetRequestID(r.Context()),
	})
}

// authenticate resolves the caller or writes a 401.
func (h *ItemHandler) authenticate(w http.ResponseWriter, r *http.Request, logEntry *logrus.Entry) (*models.User, bool) {
	user, err := h.itemService.Authenticate(r.Context(), r.Header.Get(SessionHeader))
	if err != nil {
		h.writeError(w, logEntry, err)
		return nil, false
	}
	return user, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *ItemHandler) writeError(w http.ResponseWriter, logEntry *logrus.Entry, err error) {
	e := apperr.From(err)
	switch e.Code {
	case apperr.CodeInternal:
		logEntry.WithError(err).Error("request failed")
	case apperr.CodeUnauthorized:
		logEntry.Warn("unauthorized")
	default:
		logEntry.WithField("code", e.Code).Debug(e.Message)
	}
	writeJSON(w, e.Status(), errorResponse{Error: e.Message, Code: e.Code, Details: e.Details})
}

// decodeBody maps malformed JSON to BAD_REQUEST and wrongly typed fields to
// VALIDATION_ERROR.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "_"
		}
		return apperr.Validation(map[string][]string{
			field: {"Expected " + typeErr.Type.String() + ", received " + typeErr.Value},
		})
	}
	if errors.Is(err, io.EOF) {
		return apperr.BadRequest("Request body is required")
	}
	return apperr.BadRequest("Invalid request body")
}

// ListDay handles GET /api/items?date=YYYY-MM-DD.
func (h *ItemHandler) ListDay(w http.ResponseWriter, r *http.Request) {
	logEntry := h.entry(r, "ListDay")
	user, ok := h.authenticate(w, r, logEntry)
	if !ok {
		return
	}

	items, err := h.itemService.Day(r.Context(), user, r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, logEntry, err)
		return
	}
	logEntry.WithField("count", len(items)).Debug("day items listed")
	writeJSON(w, http.StatusOK, items)
}

// ListWeek handles GET /api/items/week?start=YYYY-MM-DD.
func (h *ItemHandler) ListWeek(w http.ResponseWriter, r *http.Request) {
	logEntry := h.entry(r, "ListWeek")
	user, ok := h.authenticate(w, r, logEntry)
	if !ok {
		return
	}

	items, err := h.itemService.Week(r.Context(), user, r.URL.Query().Get("start"))
	if err != nil {
		h.writeError(w, logEntry, err)
		return
	}
	logEntry.WithField("count", len(items)).Debug("week items listed")
	writeJSON(w, http.StatusOK, items)
}

// CreateItem handles POST /api/items.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	logEntry := h.entry(r, "CreateItem")
	user, ok := h.authenticate(w, r, logEntry)
	if !ok {
		return
	}

	var req service.CreateItemInput
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, logEntry, err)
		return
	}

	item, err := h.itemService.Create(r.Context(), user, &req)
	if err != nil {
		h.writeError(w, logEntry, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PATCH /api/items/{id}.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	logEntry := h.entry(r, "UpdateItem")
	user, ok := h.authenticate(w, r, logEntry)
	if !ok {
		return
	}

	id := r.PathValue("id")
	var req service.UpdateItemInput
	if id != "" {
		if err := decodeBody(w, r, &req); err != nil {
			h.writeError(w, logEntry, err)
			return
		}
	}

	item, err := h.itemService.Update(r.Context(), user, id, &req)
	if err != nil {
		h.writeError(w, logEntry.WithField("item_id", id), err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/items/{id}.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	logEntry := h.entry(r, "DeleteItem")
	user, ok := h.authenticate(w, r, logEntry)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if err := h.itemService.Delete(r.Context(), user, id); err != nil {
		h.writeError(w, logEntry.WithField("item_id", id), err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// Health handles GET /healthz.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
