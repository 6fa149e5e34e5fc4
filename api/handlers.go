package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"iph/core"
	"iph/service"
	"iph/storage"
)

// respondJSON writes a JSON response with proper error handling
func (a *API) respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		a.logger.Errorw("Failed to encode JSON response",
			"error", err,
			"data_type", fmt.Sprintf("%T", data))
	}
}

// respondError writes a structured JSON error body.
func (a *API) respondError(w http.ResponseWriter, message string, statusCode int) {
	a.respondJSON(w, map[string]string{"error": message}, statusCode)
}

// decodeAndValidate decodes the request body into dst and runs struct
// validation. Writes the error response itself and reports success.
func (a *API) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		a.respondError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	if err := a.validate.Struct(dst); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			a.respondError(w, fmt.Sprintf("invalid field %s: failed %s validation", first.Field(), first.Tag()), http.StatusBadRequest)
		} else {
			a.respondError(w, "invalid request body", http.StatusBadRequest)
		}
		return false
	}
	return true
}

// pathID extracts the numeric {id} path variable.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// pagination resolves limit/offset from page/page_size query parameters,
// clamped to the configured maximum.
func (a *API) pagination(r *http.Request) (limit, offset int) {
	limit = a.config.API.DefaultPageSize
	page := 1

	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > a.config.API.MaxPageSize {
		limit = a.config.API.MaxPageSize
	}
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	return limit, (page - 1) * limit
}

// handleEventError maps service and storage errors onto HTTP responses.
// Validation failures carry structured detail so clients can fix the whole
// payload in one round trip.
func (a *API) handleEventError(w http.ResponseWriter, err error) {
	var refErr *service.ReferenceNotFoundError
	if errors.As(err, &refErr) {
		a.respondJSON(w, map[string]interface{}{
			"error":   "referenced ids not found",
			"missing": refErr.Missing,
		}, http.StatusBadRequest)
		return
	}

	var violation *core.RuleViolation
	if errors.As(err, &violation) {
		a.respondJSON(w, map[string]interface{}{
			"error":  "business rule violation",
			"rule":   violation.Rule,
			"detail": violation.Detail,
		}, http.StatusBadRequest)
		return
	}

	var fieldErr *service.RequiredFieldError
	if errors.As(err, &fieldErr) {
		a.respondError(w, fieldErr.Error(), http.StatusBadRequest)
		return
	}

	switch {
	case errors.Is(err, storage.ErrNoFields):
		a.respondError(w, "no fields to update", http.StatusBadRequest)
	case errors.Is(err, storage.ErrEventNotFound),
		errors.Is(err, storage.ErrDetaineeLinkNotFound),
		errors.Is(err, storage.ErrDrugNotFound),
		errors.Is(err, storage.ErrWeaponNotFound),
		errors.Is(err, storage.ErrMotiveCategoryNotFound):
		a.respondError(w, err.Error(), http.StatusNotFound)
	default:
		a.logger.Errorw("Request failed", "error", err)
		a.respondError(w, "internal server error", http.StatusInternalServerError)
	}
}

func (a *API) createEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	event := req.toEvent()
	if err := a.events.CreateEvent(r.Context(), event); err != nil {
		a.handleEventError(w, err)
		return
	}

	a.respondJSON(w, event, http.StatusCreated)
}

func (a *API) getEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, "invalid event id", http.StatusBadRequest)
		return
	}

	event, err := a.events.GetEvent(r.Context(), id)
	if err != nil {
		a.handleEventError(w, err)
		return
	}
	a.respondJSON(w, event, http.StatusOK)
}

func (a *API) listEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset := a.pagination(r)

	events, total, err := a.events.ListEvents(r.Context(), limit, offset)
	if err != nil {
		a.handleEventError(w, err)
		return
	}
	if events == nil {
		events = []core.Event{}
	}

	a.respondJSON(w, map[string]interface{}{
		"events": events,
		"total":  total,
	}, http.StatusOK)
}

func (a *API) searchEvents(w http.ResponseWriter, r *http.Request) {
	folio := r.URL.Query().Get("folio")
	if folio == "" {
		a.respondError(w, "folio query parameter is required", http.StatusBadRequest)
		return
	}
	for _, c := range folio {
		if c < '0' || c > '9' {
			a.respondError(w, "folio must contain only digits", http.StatusBadRequest)
			return
		}
	}

	limit, offset := a.pagination(r)
	events, err := a.events.SearchEventsByFolio(r.Context(), folio, limit, offset)
	if err != nil {
		a.handleEventError(w, err)
		return
	}
	if events == nil {
		events = []core.Event{}
	}
	a.respondJSON(w, events, http.StatusOK)
}

func (a *API) listEventsByRegion(w http.ResponseWriter, r *http.Request) {
	regionID, err := pathID(r)
	if err != nil {
		a.respondError(w, "invalid region id", http.StatusBadRequest)
		return
	}

	limit, offset := a.pagination(r)
	events, err := a.events.ListEventsByRegion(r.Context(), regionID, limit, offset)
	if err != nil {
		a.handleEventError(w, err)
		return
	}
	if events == nil {
		events = []core.Event{}
	}
	a.respondJSON(w, events, http.StatusOK)
}

func (a *API) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, "invalid event id", http.StatusBadRequest)
		return
	}

	var req updateEventRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	if err := a.events.UpdateEvent(r.Context(), id, req.toUpdate()); err != nil {
		a.handleEventError(w, err)
		return
	}

	event, err := a.events.GetEvent(r.Context(), id)
	if err != nil {
		a.handleEventError(w, err)
		return
	}
	a.respondJSON(w, event, http.StatusOK)
}

func (a *API) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, "invalid event id", http.StatusBadRequest)
		return
	}

	if err := a.events.DeleteEvent(r.Context(), id); err != nil {
		a.handleEventError(w, err)
		return
	}
	a.respondJSON(w, map[string]string{"status": "deleted"}, http.StatusOK)
}

func (a *API) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := a.db.HealthCheck(); err != nil {
		a.respondJSON(w, map[string]string{"status": "unhealthy", "error": err.Error()}, http.StatusServiceUnavailable)
		return
	}
	a.respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
