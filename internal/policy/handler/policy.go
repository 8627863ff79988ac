package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xela07ax/insurance-backoffice/internal/domain"
	"github.com/xela07ax/insurance-backoffice/internal/policy/service"
)

type PolicyHandler struct {
	service *service.PolicyService
}

func NewPolicyHandler(s *service.PolicyService) *PolicyHandler {
	return &PolicyHandler{service: s}
}

// List возвращает все полисы.
// GET /api/policies
func (h *PolicyHandler) List(w http.ResponseWriter, r *http.Request) {
	policies, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch policies", http.StatusInternalServerError)
		return
	}
	if policies == nil {
		policies = []domain.Policy{}
	}
	respondJSON(w, http.StatusOK, policies)
}

// Get возвращает полис по ID.
// GET /api/policies/{id}
func (h *PolicyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, "Policy ID is required", http.StatusBadRequest)
		return
	}

	policy, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to retrieve policy", http.StatusInternalServerError)
		return
	}
	if policy == nil {
		http.Error(w, "Policy not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, policy)
}

// ListByCustomer возвращает полисы одного клиента.
// GET /api/policies/customer/{customerId}
func (h *PolicyHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseID(r, "customerId")
	if !ok {
		http.Error(w, "Customer ID is required", http.StatusBadRequest)
		return
	}

	policies, err := h.service.GetByCustomerID(r.Context(), customerID)
	if err != nil {
		http.Error(w, "Failed to fetch policies", http.StatusInternalServerError)
		return
	}
	if policies == nil {
		policies = []domain.Policy{}
	}
	respondJSON(w, http.StatusOK, policies)
}

// Create регистрирует новый полис. Ссылка customerId не проверяется
// против customer-сервиса — см. композер.
func (h *PolicyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p domain.Policy
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Create(r.Context(), &p); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create policy", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

// Update перезаписывает полис по ID.
// PUT /api/policies/{id}
func (h *PolicyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, "Policy ID is required", http.StatusBadRequest)
		return
	}

	var p domain.Policy
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), id, &p)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "Policy not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Failed to update policy", http.StatusInternalServerError)
		}
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete удаляет полис по ID.
// DELETE /api/policies/{id}
func (h *PolicyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, "Policy ID is required", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Policy not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete policy", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetWithCustomer возвращает композитную проекцию "полис + клиент".
// Отсутствие полиса И отказ удаленного lookup-а оба отдаются как 404:
// дефолтный маппинг сохранен ради совместимости контракта.
// GET /api/policies/with-customer/{id}
func (h *PolicyHandler) GetWithCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, "Policy ID is required", http.StatusBadRequest)
		return
	}

	result, err := h.service.GetPolicyWithCustomer(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDownstream) {
			http.Error(w, "Policy not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to compose policy", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ListWithCustomers возвращает все полисы с их клиентами (all-or-nothing).
// GET /api/policies/all-with-customers
func (h *PolicyHandler) ListWithCustomers(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.GetAllPoliciesWithCustomers(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDownstream) {
			http.Error(w, "Customer lookup failed", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to compose policies", http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []domain.PolicyWithCustomer{}
	}
	respondJSON(w, http.StatusOK, results)
}
