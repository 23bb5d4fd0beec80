package ledger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestRouter(repo Repository) http.Handler {
	svc := NewService(repo, nil, slog.Default())
	h := NewHandler(slog.Default(), svc)
	r := chi.NewRouter()
	r.Route("/transactions", h.MountRoutes)
	return r
}

func TestHandlerCreateAndList(t *testing.T) {
	router := newTestRouter(&memRepo{})

	body, _ := json.Marshal(map[string]interface{}{
		"date":        "2024-01-05",
		"type":        "Income",
		"amount":      800,
		"category":    "Consultation",
		"patientName": "Shreya Iyer",
		"payment":     "UPI",
	})
	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, TypeIncome, created.Type)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
}

func TestHandlerCreateRejectsInvalidBody(t *testing.T) {
	router := newTestRouter(&memRepo{})

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"date":`},
		{"missing fields", `{"date":"2024-01-05"}`},
		{"bad type", `{"date":"2024-01-05","type":"Loan","amount":10,"category":"Misc","payment":"Cash"}`},
		{"bad date format", `{"date":"05/01/2024","type":"Income","amount":10,"category":"Misc","payment":"Cash"}`},
		{"zero amount", `{"date":"2024-01-05","type":"Income","amount":0,"category":"Misc","payment":"Cash"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestHandlerDelete(t *testing.T) {
	repo := &memRepo{txs: []Transaction{{ID: "keep"}, {ID: "drop"}}}
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/transactions/drop", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, repo.txs, 1)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/transactions/drop", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
