package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/insurly/autoquote/internal/core"
	"github.com/insurly/autoquote/pkg/problem"
)

type QuoteHandler struct {
	Svc core.QuotationService
	Log *slog.Logger
}

func NewQuoteHandler(svc core.QuotationService, log *slog.Logger) *QuoteHandler {
	return &QuoteHandler{Svc: svc, Log: log}
}

func (h *QuoteHandler) Mount(r chi.Router) {
	r.Route("/quotes", func(r chi.Router) {
		r.Post("/", h.Generate)
		r.Post("/calculate", h.Calculate)
		r.Get("/{quote_id}", h.Get)
	})
}

// Generate runs the full quotation pipeline and persists the quote.
// 201: JSON; 400: bad JSON/validation; 502: assessor failure; 500: storage failure.
func (h *QuoteHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req core.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}

	resp, err := h.Svc.GenerateQuote(r.Context(), &req)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Log.Error("failed to encode quote response", "err", err)
	}
}

// Calculate prices a request without persisting anything, for
// comparison shopping.
// 200: JSON; 400: bad JSON/validation; 502: assessor failure.
func (h *QuoteHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req core.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}

	premium, err := h.Svc.CalculatePremium(r.Context(), &req)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	out := struct {
		Premium decimal.Decimal `json:"premium"`
	}{Premium: premium}

	if err := json.NewEncoder(w).Encode(out); err != nil {
		h.Log.Error("failed to encode premium response", "err", err)
	}
}

// Get retrieves a stored quote by ID.
// 200: JSON; 400: blank ID; 404: not found; 500: storage failure.
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "quote_id")

	resp, err := h.Svc.GetQuoteByID(r.Context(), id)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Log.Error("failed to encode quote response", "quote_id", id, "err", err)
	}
}
