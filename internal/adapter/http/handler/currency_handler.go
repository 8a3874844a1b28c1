package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/chamroeun/posledger/internal/adapter/http/dto"
	"github.com/chamroeun/posledger/internal/domain"
)

// CurrencyHandler handles currency conversion requests.
type CurrencyHandler struct {
	converter *domain.Converter
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(converter *domain.Converter) *CurrencyHandler {
	return &CurrencyHandler{converter: converter}
}

// Convert converts an amount between USD and KHR.
func (h *CurrencyHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req dto.ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	from, to, err := req.ParseCurrencies()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid currency", err.Error())
		return
	}

	converted, err := h.converter.Convert(req.Amount, from, to)
	if err != nil {
		writeError(w, mapDomainError(err), "conversion failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConversionResponse{
		Amount:   converted,
		Currency: string(to),
		Display:  domain.FormatAmount(converted, to),
		Rate:     h.converter.Rate(),
	})
}

// Detect guesses the currency of an untagged amount.
func (h *CurrencyHandler) Detect(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("amount")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing amount", "")
		return
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DetectResponse{
		Amount:   amount,
		Currency: string(h.converter.DetectCurrency(amount)),
	})
}

// Change calculates the change due for a payment.
func (h *CurrencyHandler) Change(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	paidCurrency, err := domain.ParseCurrency(req.PaidCurrency)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid currency", err.Error())
		return
	}

	changeCurrency := paidCurrency
	if req.ChangeCurrency != "" {
		changeCurrency, err = domain.ParseCurrency(req.ChangeCurrency)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid currency", err.Error())
			return
		}
	}

	change, err := h.converter.CalculateChange(req.Total, req.Paid, paidCurrency, changeCurrency)
	if err != nil {
		writeError(w, mapDomainError(err), "change calculation failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ChangeResponse{
		Change:   change,
		Currency: string(changeCurrency),
		Display:  domain.FormatAmount(change, changeCurrency),
	})
}
