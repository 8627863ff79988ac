package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xela07ax/insurance-backoffice/internal/domain"
	"github.com/xela07ax/insurance-backoffice/internal/policy/service"
)

type ClaimHandler struct {
	service *service.ClaimService
}

func NewClaimHandler(s *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{service: s}
}

// List возвращает все требования.
// GET /api/claims
func (h *ClaimHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch claims", http.StatusInternalServerError)
		return
	}
	if claims == nil {
		claims = []domain.Claim{}
	}
	respondJSON(w, http.StatusOK, claims)
}

// Get возвращает требование по ID.
// GET /api/claims/{id}
func (h *ClaimHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, "Claim ID is required", http.StatusBadRequest)
		return
	}

	claim, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to retrieve claim", http.StatusInternalServerError)
		return
	}
	if claim == nil {
		http.Error(w, "Claim not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, claim)
}

// ListByPolicy возвращает требования по полису.
// GET /api/claims/policy/{policyId}
func (h *ClaimHandler) ListByPolicy(w http.ResponseWriter, r *http.Request) {
	policyID, ok := parseID(r, "policyId")
	if !ok {
		http.Error(w, "Policy ID is required", http.StatusBadRequest)
		return
	}

	claims, err := h.service.GetByPolicyID(r.Context(), policyID)
	if err != nil {
		http.Error(w, "Failed to fetch claims", http.StatusInternalServerError)
		return
	}
	if claims == nil {
		claims = []domain.Claim{}
	}
	respondJSON(w, http.StatusOK, claims)
}

// Create регистрирует требование. Ошибка создания (в т.ч. ссылка на
// несуществующий полис) отдается единым 400 — контракт исходного API.
// POST /api/claims
func (h *ClaimHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c domain.Claim
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Create(r.Context(), &c); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create claim", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

// Update — полная перезапись требования.
// PUT /api/claims/{id}
func (h *ClaimHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, "Claim ID is required", http.StatusBadRequest)
		return
	}

	var c domain.Claim
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), id, &c)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "Claim not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Failed to update claim", http.StatusInternalServerError)
		}
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// UpdateStatus — частичная смена статуса c опциональной выплатой.
// PATCH /api/claims/{id}/status  {"status": "...", "settledAmount": 800.0}
func (h *ClaimHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, "Claim ID is required", http.StatusBadRequest)
		return
	}

	var upd domain.ClaimStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.ProcessStatus(r.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "Claim not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Failed to update claim status", http.StatusInternalServerError)
		}
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete удаляет требование по ID.
// DELETE /api/claims/{id}
func (h *ClaimHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, "Claim ID is required", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Claim not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete claim", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
