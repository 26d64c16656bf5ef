package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"tally/internal/core"
)

type setBudgetRequest struct {
	Month string `json:"month"`
	Limit string `json:"limit"`
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var req setBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid request body", core.ErrInvalidArgument))
		return
	}

	month, err := core.ParseMonth(req.Month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := core.ParseAmount(req.Limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.tracker.SetBudget(r.Context(), sess, month, limit); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type budgetViewResponse struct {
	Budget string `json:"budget"`
}

func (s *Server) handleViewBudget(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	view, err := s.tracker.ViewBudget(r.Context(), sess)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, budgetViewResponse{Budget: view})
}

type checkLimitRequest struct {
	Recipient string `json:"recipient"`
}

// handleCheckLimit runs the over-limit check. The notification
// recipient defaults to the session email.
func (s *Server) handleCheckLimit(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var req checkLimitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid request body", core.ErrInvalidArgument))
		return
	}
	recipient := req.Recipient
	if recipient == "" {
		recipient = sess.Email
	}

	if err := s.tracker.CheckExpenseLimit(r.Context(), sess, recipient); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
