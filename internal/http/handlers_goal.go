package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"tally/internal/core"
)

type setGoalRequest struct {
	Name   string `json:"name"`
	Target string `json:"target"`
}

func (s *Server) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var req setGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid request body", core.ErrInvalidArgument))
		return
	}

	target, err := core.ParseAmount(req.Target)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.tracker.SetGoal(r.Context(), sess, req.Name, target); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type goalViewResponse struct {
	Goal string `json:"goal"`
}

func (s *Server) handleViewGoal(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	view, err := s.tracker.ViewGoal(r.Context(), sess)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goalViewResponse{Goal: view})
}
