package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/kamaubrian/customerhub-backend/internal/errors"
	"github.com/kamaubrian/customerhub-backend/internal/handler"
	"github.com/kamaubrian/customerhub-backend/internal/model"
	"github.com/kamaubrian/customerhub-backend/internal/service"
)

// --- Mock Repositories ---

type MockCustomerRepo struct {
	customer *model.Customer
}

func (m *MockCustomerRepo) Create(c *model.Customer) error { return nil }

func (m *MockCustomerRepo) GetByID(id int) (*model.Customer, error) {
	if m.customer != nil && m.customer.ID == id {
		return m.customer, nil
	}
	return nil, appErrors.NewCustomerNotFound(id)
}

func (m *MockCustomerRepo) GetByEmail(email string) (*model.Customer, error) { return nil, nil }

func (m *MockCustomerRepo) ListCustomers(offset, limit int, location, search string) ([]*model.Customer, int, error) {
	return []*model.Customer{}, 0, nil
}

func (m *MockCustomerRepo) Update(c *model.Customer) error { return nil }
func (m *MockCustomerRepo) Delete(id int) error            { return nil }

type MockNotificationRepo struct {
	stats map[string]int
}

func (m *MockNotificationRepo) Create(n *model.Notification) error { return nil }

func (m *MockNotificationRepo) GetByID(id int) (*model.Notification, error) { return nil, nil }

func (m *MockNotificationRepo) GetCustomerNotification(customerID int, kind string) (*model.Notification, error) {
	return nil, nil
}

func (m *MockNotificationRepo) Update(n *model.Notification) error                  { return nil }
func (m *MockNotificationRepo) UpdateStatus(id int, status, lastError string) error { return nil }
func (m *MockNotificationRepo) MarkFailed(id int, lastError string) error           { return nil }
func (m *MockNotificationRepo) UpdateContent(id int, content string) error          { return nil }

func (m *MockNotificationRepo) GetCustomerStats(customerID int) (map[string]int, error) {
	return m.stats, nil
}

func newActivityRouter(custRepo *MockCustomerRepo, notifRepo *MockNotificationRepo) *chi.Mux {
	svc := &service.CustomerService{
		CustomerRepo:     custRepo,
		NotificationRepo: notifRepo,
	}
	h := &handler.CustomerHandler{Service: svc}

	r := chi.NewRouter()
	r.Get("/customers/{id}/activity", h.GetCustomerHandlerWithActivity)
	return r
}

// --- Test Functions ---

func TestGetCustomerActivityStats(t *testing.T) {
	custRepo := &MockCustomerRepo{
		customer: &model.Customer{
			ID:        1,
			FirstName: "Alice",
			LastName:  "Smith",
			Email:     "alice@example.com",
			CreatedAt: time.Now(),
		},
	}
	notifRepo := &MockNotificationRepo{
		stats: map[string]int{"pending": 1, "sent": 2, "failed": 1},
	}

	router := newActivityRouter(custRepo, notifRepo)

	req := httptest.NewRequest("GET", "/customers/1/activity", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var res struct {
		ID        int            `json:"id"`
		FirstName string         `json:"firstName"`
		Stats     map[string]int `json:"stats"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if res.ID != 1 || res.FirstName != "Alice" {
		t.Errorf("unexpected customer in response: %+v", res)
	}

	expected := map[string]int{"total": 4, "pending": 1, "sent": 2, "failed": 1}
	for status, count := range expected {
		if res.Stats[status] != count {
			t.Errorf("expected %s=%d, got %d", status, count, res.Stats[status])
		}
	}
}

func TestGetCustomerActivityNotFound(t *testing.T) {
	router := newActivityRouter(&MockCustomerRepo{}, &MockNotificationRepo{stats: map[string]int{}})

	req := httptest.NewRequest("GET", "/customers/42/activity", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Result().StatusCode)
	}
}

func TestGetCustomerActivityInvalidID(t *testing.T) {
	router := newActivityRouter(&MockCustomerRepo{}, &MockNotificationRepo{stats: map[string]int{}})

	req := httptest.NewRequest("GET", "/customers/abc/activity", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Result().StatusCode)
	}
}
