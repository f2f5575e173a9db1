// internal/handler/customer_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/kamaubrian/customerhub-backend/internal/errors"
	"github.com/kamaubrian/customerhub-backend/internal/repository"
	"github.com/kamaubrian/customerhub-backend/internal/service"
)

// CustomerHandler holds the dependencies for customer-related HTTP handlers
type CustomerHandler struct {
	Repo    *repository.CustomerRepository
	Service *service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler with the given repository
func NewCustomerHandler(repo *repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{
		Repo: repo,
	}
}

// GetCustomerHandlerWithActivity returns a customer along with notification stats
func (h *CustomerHandler) GetCustomerHandlerWithActivity(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	log.Println("📥 Handler called for customer ID:", id)

	details, err := h.Service.GetCustomerDetailsWithStats(id)
	if err != nil {
		var notFound *appErrors.ErrCustomerNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Println("❌ Error fetching customer:", err)
		http.Error(w, "failed to fetch customer: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Returning customer details with stats: %+v\n", details)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}
