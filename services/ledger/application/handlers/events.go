package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/stockpilot/pkg/errhttp"
	"github.com/ghuser/stockpilot/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockpilot/pkg/validator"
	appsvcs "github.com/ghuser/stockpilot/services/ledger/application/services"
)

// EventRequest is the request body for POST /api/events and PUT /api/events/{id}.
type EventRequest struct {
	Name          string    `json:"name" validate:"required,min=1,max=255"`
	Location      string    `json:"location" validate:"max=255"`
	Date          time.Time `json:"date" validate:"required"`
	Administrator string    `json:"administrator" validate:"required,min=1,max=255"`
}

// PostEventHandler handles POST /api/events requests.
type PostEventHandler struct {
	svc *appsvcs.Services
}

// NewPostEventHandler returns a PostEventHandler backed by the given services.
func NewPostEventHandler(svc *appsvcs.Services) *PostEventHandler {
	return &PostEventHandler{svc: svc}
}

// Execute creates a new event.
func (h *PostEventHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[EventRequest](w, r)
	if !ok {
		return
	}

	event, err := h.svc.Event.Create(r.Context(), req.Name, req.Location, req.Date, req.Administrator)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toEventResponse(event))
}

// GetEventHandler handles GET /api/events/{id} requests.
type GetEventHandler struct {
	svc *appsvcs.Services
}

// NewGetEventHandler returns a GetEventHandler backed by the given services.
func NewGetEventHandler(svc *appsvcs.Services) *GetEventHandler {
	return &GetEventHandler{svc: svc}
}

// Execute fetches one event.
func (h *GetEventHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	event, err := h.svc.Event.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toEventResponse(event))
}

// ListEventsHandler handles GET /api/events requests.
type ListEventsHandler struct {
	svc *appsvcs.Services
}

// NewListEventsHandler returns a ListEventsHandler backed by the given services.
func NewListEventsHandler(svc *appsvcs.Services) *ListEventsHandler {
	return &ListEventsHandler{svc: svc}
}

// Execute lists all events.
func (h *ListEventsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.Event.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out := make([]EventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, toEventResponse(event))
	}
	httpx.JSON(w, http.StatusOK, out)
}

// PutEventHandler handles PUT /api/events/{id} requests.
type PutEventHandler struct {
	svc *appsvcs.Services
}

// NewPutEventHandler returns a PutEventHandler backed by the given services.
func NewPutEventHandler(svc *appsvcs.Services) *PutEventHandler {
	return &PutEventHandler{svc: svc}
}

// Execute applies an edit to an event.
func (h *PutEventHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[EventRequest](w, r)
	if !ok {
		return
	}

	event, err := h.svc.Event.Update(r.Context(), id, req.Name, req.Location, req.Date, req.Administrator)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toEventResponse(event))
}

// DeleteEventHandler handles DELETE /api/events/{id} requests.
type DeleteEventHandler struct {
	svc *appsvcs.Services
}

// NewDeleteEventHandler returns a DeleteEventHandler backed by the given services.
func NewDeleteEventHandler(svc *appsvcs.Services) *DeleteEventHandler {
	return &DeleteEventHandler{svc: svc}
}

// Execute deletes an event and its stock allocations. Sales recorded under
// the event remain in the history.
func (h *DeleteEventHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Event.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
