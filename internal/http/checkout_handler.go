package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/checkout"
)

type CheckoutSubmitter interface {
	Submit(ctx context.Context, address checkout.Address) (*checkout.Receipt, error)
}

type CheckoutHandler struct {
	checkout CheckoutSubmitter
}

func NewCheckoutHandler(svc CheckoutSubmitter) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc}
}

// POST /api/v1/checkout/address
func (h *CheckoutHandler) SubmitAddress(w http.ResponseWriter, r *http.Request) {
	var address checkout.Address
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	receipt, err := h.checkout.Submit(r.Context(), address)
	if err != nil {
		var formErr *checkout.IncompleteFormError
		if errors.As(err, &formErr) {
			respondJSON(w, r, http.StatusBadRequest, ErrorResponse{
				Error:   formErr.Error(),
				Code:    "incomplete_form",
				Details: formErr.Field,
			})
			return
		}
		respondError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, r, http.StatusOK, receipt)
}
