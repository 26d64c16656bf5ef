package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tally/internal/auth"
	"tally/internal/services"
	"tally/internal/storage/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := memory.New()
	tracker := services.NewTracker(store, nil)
	tokens := auth.NewJWTManager("0123456789abcdef", time.Hour)
	s := NewServer(":0", store, tracker, tokens)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})
	return s
}

func do(t *testing.T, s *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

// registerAndLogin creates an account and returns a bearer token.
func registerAndLogin(t *testing.T, s *Server, email string) string {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/register", "",
		`{"email":"`+email+`","name":"Test","password":"s3cretpass"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodPost, "/api/login", "",
		`{"email":"`+email+`","password":"s3cretpass"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login returned an empty token")
	}
	return resp.Token
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := do(t, s, http.MethodGet, path, "", "")
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/balance", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/api/balance", "garbage-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", rec.Code)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newTestServer(t)
	registerAndLogin(t, s, "ada@example.com")

	rec := do(t, s, http.MethodPost, "/api/login", "",
		`{"email":"ada@example.com","password":"wrongpass"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", rec.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/register", "",
		`{"email":"not-an-email","name":"x","password":"s3cretpass"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad email status = %d, want 400", rec.Code)
	}

	rec = do(t, s, http.MethodPost, "/api/register", "",
		`{"email":"ok@example.com","name":"x","password":"short"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("weak password status = %d, want 400", rec.Code)
	}
}

func TestTransactionFlow(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "ada@example.com")

	rec := do(t, s, http.MethodPost, "/api/transactions", token,
		`{"amount":"12.50","category":"Food","date":"2024-05-10","description":"lunch","type":"expense"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add transaction status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID     string `json:"id"`
		Amount string `json:"amount"`
		Type   string `json:"type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" || created.Amount != "12.50" || created.Type != "expense" {
		t.Errorf("create response = %+v", created)
	}

	rec = do(t, s, http.MethodPost, "/api/transactions", token,
		`{"amount":"1000","category":"Salary","date":"2024-05-01","type":"income"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add income status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodGet, "/api/balance", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("balance status = %d", rec.Code)
	}
	var balance struct {
		Balance string `json:"balance"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &balance); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	if balance.Balance != "987.50" {
		t.Errorf("balance = %q, want 987.50", balance.Balance)
	}

	rec = do(t, s, http.MethodGet, "/api/transactions?type=expense", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listing struct {
		Listing string `json:"listing"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if !strings.HasPrefix(listing.Listing, "Expense transactions:\n") || strings.Contains(listing.Listing, "Salary") {
		t.Errorf("listing = %q", listing.Listing)
	}

	rec = do(t, s, http.MethodDelete, "/api/transactions/"+created.ID, token, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
	rec = do(t, s, http.MethodDelete, "/api/transactions/"+created.ID, token, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestTransactionValidation(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "ada@example.com")

	tests := []struct {
		name string
		body string
	}{
		{name: "negative amount", body: `{"amount":"-5","category":"Food","date":"2024-05-10","type":"expense"}`},
		{name: "empty category", body: `{"amount":"5","category":"","date":"2024-05-10","type":"expense"}`},
		{name: "bad date", body: `{"amount":"5","category":"Food","date":"10/05/2024","type":"expense"}`},
		{name: "bad type", body: `{"amount":"5","category":"Food","date":"2024-05-10","type":"transfer"}`},
		{name: "not json", body: `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/transactions", token, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestReportCachingInvalidatesOnMutation(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "ada@example.com")

	do(t, s, http.MethodPost, "/api/transactions", token,
		`{"amount":"100","category":"Food","date":"2024-05-10","type":"expense"}`)

	fetch := func() string {
		rec := do(t, s, http.MethodGet, "/api/report?from=2024-05-01&to=2024-05-31", token, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("report status = %d, body %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Report string `json:"report"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode report: %v", err)
		}
		return resp.Report
	}

	first := fetch()
	if !strings.Contains(first, "Expenses for period: 100.00") {
		t.Errorf("report = %q", first)
	}
	if second := fetch(); second != first {
		t.Errorf("cached report differs: %q vs %q", second, first)
	}

	// A mutation must invalidate the cached report.
	do(t, s, http.MethodPost, "/api/transactions", token,
		`{"amount":"50","category":"Food","date":"2024-05-11","type":"expense"}`)
	third := fetch()
	if !strings.Contains(third, "Expenses for period: 150.00") {
		t.Errorf("report after mutation = %q", third)
	}
}

func TestBudgetAndGoalEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "ada@example.com")

	rec := do(t, s, http.MethodPut, "/api/budget", token, `{"month":"2024-05","limit":"500"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("set budget status = %d, body %s", rec.Code, rec.Body.String())
	}
	rec = do(t, s, http.MethodPut, "/api/budget", token, `{"month":"May 2024","limit":"500"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad month status = %d, want 400", rec.Code)
	}

	do(t, s, http.MethodPost, "/api/transactions", token,
		`{"amount":"120.50","category":"Food","date":"2024-05-10","type":"expense"}`)

	rec = do(t, s, http.MethodGet, "/api/budget", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("view budget status = %d", rec.Code)
	}
	var budget struct {
		Budget string `json:"budget"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &budget); err != nil {
		t.Fatalf("decode budget: %v", err)
	}
	if !strings.Contains(budget.Budget, "Spent: 120.50") {
		t.Errorf("budget view = %q", budget.Budget)
	}

	rec = do(t, s, http.MethodPost, "/api/budget/check", token, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("check status = %d, want 204", rec.Code)
	}

	rec = do(t, s, http.MethodPut, "/api/goal", token, `{"name":"Vacation","target":"2000"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("set goal status = %d, body %s", rec.Code, rec.Body.String())
	}

	do(t, s, http.MethodPost, "/api/transactions", token,
		`{"amount":"500","category":"Salary","date":"2024-05-01","type":"income"}`)

	rec = do(t, s, http.MethodGet, "/api/goal", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("view goal status = %d", rec.Code)
	}
	var goal struct {
		Goal string `json:"goal"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &goal); err != nil {
		t.Fatalf("decode goal: %v", err)
	}
	if !strings.Contains(goal.Goal, "Progress: 25%") {
		t.Errorf("goal view = %q", goal.Goal)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	s := newTestServer(t)
	adaToken := registerAndLogin(t, s, "ada@example.com")
	bobToken := registerAndLogin(t, s, "bob@example.com")

	do(t, s, http.MethodPost, "/api/transactions", adaToken,
		`{"amount":"100","category":"Food","date":"2024-05-10","type":"expense"}`)

	rec := do(t, s, http.MethodGet, "/api/transactions", bobToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listing struct {
		Listing string `json:"listing"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if listing.Listing != "No transactions found.\n" {
		t.Errorf("other user's listing = %q", listing.Listing)
	}
}
