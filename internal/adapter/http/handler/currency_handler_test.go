package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/chamroeun/posledger/internal/adapter/http/dto"
	"github.com/chamroeun/posledger/internal/domain"
)

func newCurrencyHandler(t *testing.T) *CurrencyHandler {
	t.Helper()
	converter, err := domain.NewConverter(decimal.NewFromInt(4100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewCurrencyHandler(converter)
}

func TestCurrencyHandlerConvert(t *testing.T) {
	h := newCurrencyHandler(t)

	body := `{"amount":"2.50","from":"USD","to":"KHR"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/currency/convert", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Convert(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ConversionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !resp.Amount.Equal(decimal.NewFromInt(10250)) {
		t.Fatalf("expected 10250, got %s", resp.Amount)
	}
	if resp.Currency != "KHR" {
		t.Fatalf("expected KHR, got %s", resp.Currency)
	}
}

func TestCurrencyHandlerConvertRejectsUnknownCurrency(t *testing.T) {
	h := newCurrencyHandler(t)

	body := `{"amount":"2.50","from":"USD","to":"THB"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/currency/convert", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Convert(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCurrencyHandlerDetect(t *testing.T) {
	h := newCurrencyHandler(t)

	tests := []struct {
		amount string
		want   string
	}{
		{"1000", "USD"},
		{"1000.01", "KHR"},
		{"4.50", "USD"},
		{"20000", "KHR"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/detect?amount="+tt.amount, nil)
		rec := httptest.NewRecorder()

		h.Detect(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", tt.amount, rec.Code)
		}

		var resp dto.DetectResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if resp.Currency != tt.want {
			t.Fatalf("amount %s: expected %s, got %s", tt.amount, tt.want, resp.Currency)
		}
	}
}

func TestCurrencyHandlerChange(t *testing.T) {
	h := newCurrencyHandler(t)

	// 2.00 USD paid with 10000 KHR leaves 1800 KHR change.
	body := `{"total":"2.00","paid":"10000","paid_currency":"KHR"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/currency/change", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Change(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ChangeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !resp.Change.Equal(decimal.NewFromInt(1800)) {
		t.Fatalf("expected 1800, got %s", resp.Change)
	}
}

func TestCurrencyHandlerChangeInsufficient(t *testing.T) {
	h := newCurrencyHandler(t)

	body := `{"total":"5.00","paid":"4.00","paid_currency":"USD"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/currency/change", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Change(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}
