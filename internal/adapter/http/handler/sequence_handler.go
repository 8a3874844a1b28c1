package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/chamroeun/posledger/internal/adapter/http/dto"
	"github.com/chamroeun/posledger/internal/usecase"
)

var numberKinds = map[string]string{
	"invoice":  usecase.InvoicePrefix,
	"purchase": usecase.PurchasePrefix,
	"payment":  usecase.PaymentPrefix,
	"sale":     usecase.SalePrefix,
}

// SequenceHandler handles document number allocation requests.
type SequenceHandler struct {
	postingUC *usecase.PostingUseCase
}

// NewSequenceHandler creates a new SequenceHandler.
func NewSequenceHandler(postingUC *usecase.PostingUseCase) *SequenceHandler {
	return &SequenceHandler{postingUC: postingUC}
}

// Allocate allocates the next document number for a kind.
func (h *SequenceHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	var req dto.AllocateNumberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	kind, ok := numberKinds[req.Kind]
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown document kind", req.Kind)
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		var err error
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date", err.Error())
			return
		}
	}

	number, err := h.postingUC.AllocateDocumentNumber(r.Context(), usecase.DatePrefix(kind, date), usecase.EntryNumberWidth)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to allocate number", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.DocumentNumberResponse{Number: number})
}
