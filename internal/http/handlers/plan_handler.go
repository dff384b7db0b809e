// README: Agent endpoints; conversational Markdown replies and structured itineraries.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmate/internal/modules/booking"
	"tripmate/internal/modules/itinerary"
	"tripmate/internal/service"
)

// Planner produces structured itineraries.
type Planner interface {
	Plan(ctx context.Context, req service.PlanRequest) (itinerary.AgentOutput, error)
}

// ChatResponder answers conversational queries.
type ChatResponder interface {
	Reply(ctx context.Context, query string, prefs map[string]any) (string, error)
}

type PlanHandler struct {
	planner   Planner
	concierge ChatResponder
}

func NewPlanHandler(planner Planner, concierge ChatResponder) *PlanHandler {
	return &PlanHandler{planner: planner, concierge: concierge}
}

type chatReq struct {
	Query       string         `json:"query"`
	Preferences map[string]any `json:"preferences"`
}

type chatResp struct {
	Reply string `json:"reply"`
}

// Chat handles POST /agent/plan.
func (h *PlanHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Empty query")
		return
	}

	reply, err := h.concierge.Reply(c.Request.Context(), req.Query, req.Preferences)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			writeError(c, http.StatusBadRequest, "Empty query")
			return
		}
		writeError(c, http.StatusInternalServerError, "LLM error: "+err.Error())
		return
	}
	writeJSON(c, http.StatusOK, chatResp{Reply: reply})
}

type structuredReq struct {
	FreeText      string                    `json:"free_text"`
	FreeTextCamel string                    `json:"freeText"`
	Booking       *booking.Input            `json:"booking"`
	UserID        string                    `json:"use_latest_booking_for_user_id"`
	Preferences   *booking.PreferencesInput `json:"preferences"`
}

// Structured handles POST /agent/plan/structured.
func (h *PlanHandler) Structured(c *gin.Context) {
	var req structuredReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	planReq := service.PlanRequest{
		FreeText:    req.FreeText,
		UserID:      req.UserID,
		Preferences: req.Preferences.Preferences(),
	}
	if planReq.FreeText == "" {
		planReq.FreeText = req.FreeTextCamel
	}
	if req.Booking != nil {
		bc, err := req.Booking.Context()
		if err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		planReq.Booking = &bc
	}

	out, err := h.planner.Plan(c.Request.Context(), planReq)
	if err != nil {
		if errors.Is(err, service.ErrNoBookingContext) {
			writeError(c, http.StatusBadRequest, "No booking context provided or found")
			return
		}
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, out)
}
