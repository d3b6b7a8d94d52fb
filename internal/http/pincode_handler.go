package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sunnyraj65/Delishly/internal/serviceability"
)

type PincodeHandler struct {
	checker *serviceability.Checker
}

func NewPincodeHandler(checker *serviceability.Checker) *PincodeHandler {
	return &PincodeHandler{checker: checker}
}

type ServiceabilityResponseDTO struct {
	Serviceable bool `json:"serviceable"`
}

func (h *PincodeHandler) Check(w http.ResponseWriter, r *http.Request) {
	pincode := chi.URLParam(r, "pincode")
	respondJSON(w, http.StatusOK, ServiceabilityResponseDTO{
		Serviceable: h.checker.Serviceable(pincode),
	})
}
