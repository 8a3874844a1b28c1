package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chamroeun/posledger/internal/adapter/http/dto"
	"github.com/chamroeun/posledger/internal/domain"
	"github.com/chamroeun/posledger/internal/usecase"
)

// PostingHandler handles ledger posting requests.
type PostingHandler struct {
	postingUC *usecase.PostingUseCase
}

// NewPostingHandler creates a new PostingHandler.
func NewPostingHandler(postingUC *usecase.PostingUseCase) *PostingHandler {
	return &PostingHandler{postingUC: postingUC}
}

// PostSale posts the ledger entries for a sale.
func (h *PostingHandler) PostSale(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "id")
	if saleID == "" {
		writeError(w, http.StatusBadRequest, "missing sale ID", "")
		return
	}

	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}

	if err := h.postingUC.PostSaleLedger(r.Context(), saleID, req.UserID); err != nil {
		writeError(w, mapDomainError(err), "failed to post sale", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PostingResponse{Status: "posted"})
}

// PostPurchase posts the ledger entries for a purchase.
func (h *PostingHandler) PostPurchase(w http.ResponseWriter, r *http.Request) {
	purchaseID := chi.URLParam(r, "id")
	if purchaseID == "" {
		writeError(w, http.StatusBadRequest, "missing purchase ID", "")
		return
	}

	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}

	if err := h.postingUC.PostPurchaseLedger(r.Context(), purchaseID, req.UserID); err != nil {
		writeError(w, mapDomainError(err), "failed to post purchase", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PostingResponse{Status: "posted"})
}

// PostPayment posts the ledger entries for a payment.
func (h *PostingHandler) PostPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")
	if paymentID == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}

	if err := h.postingUC.PostPaymentLedger(r.Context(), paymentID, req.UserID); err != nil {
		writeError(w, mapDomainError(err), "failed to post payment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PostingResponse{Status: "posted"})
}

// PostJournal posts a manual general journal entry.
func (h *PostingHandler) PostJournal(w http.ResponseWriter, r *http.Request) {
	var req dto.PostJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "missing user_id", "")
		return
	}

	err := h.postingUC.PostManualJournalEntry(r.Context(),
		req.AccountName, domain.AccountType(req.AccountType),
		req.Debit, req.Credit, req.Description, req.UserID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to post journal entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PostingResponse{Status: "posted"})
}

func decodePostRequest(w http.ResponseWriter, r *http.Request) (dto.PostDocumentRequest, bool) {
	var req dto.PostDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return req, false
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "missing user_id", "")
		return req, false
	}
	return req, true
}
