package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tally/internal/core"
	"tally/internal/services"
)

type transactionRequest struct {
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type transactionResponse struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Amount:      core.FormatAmount(t.Amount),
		Category:    t.Category,
		Date:        t.Date.Format(core.DateLayout),
		Description: t.Description,
		Type:        strings.ToLower(t.TypeLabel()),
	}
}

func parseType(s string) (income bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return true, nil
	case "expense":
		return false, nil
	default:
		return false, fmt.Errorf("%w: type %q must be income or expense", core.ErrInvalidArgument, s)
	}
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(core.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not yyyy-MM-dd", core.ErrInvalidArgument, s)
	}
	return d, nil
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid request body", core.ErrInvalidArgument))
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	income, err := parseType(req.Type)
	if err != nil {
		writeError(w, r, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, r, err)
		return
	}

	txn, err := s.tracker.AddTransaction(r.Context(), sess, amount, req.Category, date, req.Description, income)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.bumpGeneration(sess.UserID)
	writeJSON(w, http.StatusCreated, toTransactionResponse(txn))
}

type listingResponse struct {
	Listing string `json:"listing"`
}

// handleListTransactions renders the formatted listing. At most one of
// the date, category and type query filters may be applied.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	q := r.URL.Query()

	var (
		listing string
		err     error
	)
	switch {
	case q.Get("date") != "":
		var date time.Time
		date, err = parseDate(q.Get("date"))
		if err == nil {
			listing, err = s.tracker.ListTransactionsByDate(r.Context(), sess, date)
		}
	case q.Get("category") != "":
		listing, err = s.tracker.ListTransactionsByCategory(r.Context(), sess, q.Get("category"))
	case q.Get("type") != "":
		var income bool
		income, err = parseType(q.Get("type"))
		if err == nil {
			listing, err = s.tracker.ListTransactionsByType(r.Context(), sess, income)
		}
	default:
		listing, err = s.tracker.ListTransactions(r.Context(), sess)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listingResponse{Listing: listing})
}

type updateTransactionRequest struct {
	Amount      *string `json:"amount"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	id := r.PathValue("id")

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid request body", core.ErrInvalidArgument))
		return
	}

	var patch services.TransactionPatch
	if req.Amount != nil {
		amount, err := core.ParseAmount(*req.Amount)
		if err != nil {
			writeError(w, r, err)
			return
		}
		patch.Amount = &amount
	}
	patch.Category = req.Category
	patch.Description = req.Description

	txn, err := s.tracker.UpdateTransaction(r.Context(), sess, id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.bumpGeneration(sess.UserID)
	writeJSON(w, http.StatusOK, toTransactionResponse(txn))
}

func (s *Server) handleRemoveTransaction(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	id := r.PathValue("id")

	if err := s.tracker.RemoveTransaction(r.Context(), sess, id); err != nil {
		writeError(w, r, err)
		return
	}
	s.bumpGeneration(sess.UserID)
	w.WriteHeader(http.StatusNoContent)
}

type balanceResponse struct {
	Balance string `json:"balance"`
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	balance, err := s.tracker.Balance(r.Context(), sess)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Balance: core.FormatAmount(balance)})
}

type reportResponse struct {
	Report string `json:"report"`
}

// handleReport renders the period report for ?from=yyyy-MM-dd&to=yyyy-MM-dd.
// Responses are cached per user and invalidated on any ledger mutation.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	q := r.URL.Query()

	from, err := parseDate(q.Get("from"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	to, err := parseDate(q.Get("to"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	key := s.reportKey(sess.UserID, q.Get("from"), q.Get("to"))
	if cached, ok := s.reportCache.Get(key); ok {
		writeJSON(w, http.StatusOK, reportResponse{Report: cached})
		return
	}

	report, err := s.tracker.Report(r.Context(), sess, from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.reportCache.Set(key, report)
	writeJSON(w, http.StatusOK, reportResponse{Report: report})
}
