package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chamroeun/posledger/internal/adapter/http/dto"
	"github.com/chamroeun/posledger/internal/domain"
	"github.com/chamroeun/posledger/internal/usecase"
)

// EntryHandler handles ledger entry read requests.
type EntryHandler struct {
	entryUC *usecase.EntryUseCase
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC *usecase.EntryUseCase) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// ListByBook lists entries belonging to one book of entry.
func (h *EntryHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	book := r.URL.Query().Get("book")
	if book == "" {
		writeError(w, http.StatusBadRequest, "missing book", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.entryUC.ListByBook(r.Context(), usecase.ListByBookInput{
		Book:   domain.BookOfEntry(book),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// GetByEntryNumber returns all legs sharing one entry number.
func (h *EntryHandler) GetByEntryNumber(w http.ResponseWriter, r *http.Request) {
	entryNumber := chi.URLParam(r, "number")
	if entryNumber == "" {
		writeError(w, http.StatusBadRequest, "missing entry number", "")
		return
	}

	entries, err := h.entryUC.GetByEntryNumber(r.Context(), entryNumber)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get entries", err.Error())
		return
	}
	if len(entries) == 0 {
		writeError(w, http.StatusNotFound, "entry not found", entryNumber)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// GetByReference returns all entries generated for one document number.
func (h *EntryHandler) GetByReference(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing reference number", "")
		return
	}

	entries, err := h.entryUC.GetByReference(r.Context(), reference)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}
