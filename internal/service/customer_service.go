// internal/service/customer_service.go
package service

import (
    "fmt"
    "log"
    "strings"
    "time"

    "github.com/google/uuid"

    "github.com/kamaubrian/customerhub-backend/internal/cache"
    "github.com/kamaubrian/customerhub-backend/internal/model"
    "github.com/kamaubrian/customerhub-backend/internal/queue"
    "github.com/kamaubrian/customerhub-backend/internal/repository"
)

const DefaultWelcomeTemplate = "Hi {first_name} {last_name}, welcome aboard! Use code {verification_code} to verify your account."

type CustomerService struct {
    CustomerRepo     repository.CustomerRepositoryInterface
    NotificationRepo repository.NotificationRepositoryInterface
    Queue            queue.Queue
    Cache            *cache.CustomerCache
}

type CustomerDetails struct {
    ID               int            `json:"id"`
    FirstName        string         `json:"firstName"`
    LastName         string         `json:"lastName"`
    Email            string         `json:"email"`
    Phone            string         `json:"phone,omitempty"`
    Location         string         `json:"location,omitempty"`
    VerificationCode string         `json:"verificationCode,omitempty"`
    CreatedAt        time.Time      `json:"createdAt"`
    UpdatedAt        *time.Time     `json:"updatedAt,omitempty"`
    Stats            map[string]int `json:"stats"`
}

// NewVerificationCode mints a short signup code, e.g. CUST-A1B2C3D4
func NewVerificationCode() string {
    randomPart := uuid.New().String()[:8]
    return "CUST-" + strings.ToUpper(randomPart)
}

func validateCustomerInput(firstName, lastName, email string) error {
    if strings.TrimSpace(firstName) == "" {
        return fmt.Errorf("first name cannot be empty")
    }
    if strings.TrimSpace(lastName) == "" {
        return fmt.Errorf("last name cannot be empty")
    }
    if !strings.Contains(email, "@") {
        return fmt.Errorf("invalid email: %s", email)
    }
    return nil
}

func (s *CustomerService) CreateCustomer(firstName, lastName, email, phone, location string) (*model.Customer, error) {
    if err := validateCustomerInput(firstName, lastName, email); err != nil {
        return nil, err
    }

    existing, err := s.CustomerRepo.GetByEmail(email)
    if err != nil {
        return nil, err
    }
    if existing != nil {
        return nil, fmt.Errorf("customer with email %s already exists", email)
    }

    c := &model.Customer{
        FirstName:        strings.TrimSpace(firstName),
        LastName:         strings.TrimSpace(lastName),
        Email:            strings.TrimSpace(email),
        Phone:            strings.TrimSpace(phone),
        Location:         strings.TrimSpace(location),
        VerificationCode: NewVerificationCode(),
    }

    if err := s.CustomerRepo.Create(c); err != nil {
        return nil, err
    }

    // Welcome notification must never fail the signup
    s.queueWelcomeNotification(c)

    if s.Cache != nil {
        if err := s.Cache.Set(c); err != nil {
            log.Println("⚠️ failed to cache customer:", err)
        }
    }

    return c, nil
}

// queueWelcomeNotification records a pending welcome notification and hands it to the queue.
// Idempotent: an existing welcome row for the customer is reused.
func (s *CustomerService) queueWelcomeNotification(c *model.Customer) {
    if s.NotificationRepo == nil || s.Queue == nil {
        return
    }

    n, err := s.NotificationRepo.GetCustomerNotification(c.ID, "welcome")
    if err != nil {
        log.Println("⚠️ failed to check existing welcome notification:", err)
        return
    }
    if n == nil {
        n = &model.Notification{
            CustomerID: c.ID,
            Kind:       "welcome",
            Status:     "pending",
        }
        if err := s.NotificationRepo.Create(n); err != nil {
            log.Println("⚠️ failed to create welcome notification:", err)
            return
        }
    }

    if n.RenderedContent == "" {
        rendered := RenderTemplate(DefaultWelcomeTemplate, CustomerData(c))
        if err := s.NotificationRepo.UpdateContent(n.ID, rendered); err != nil {
            log.Println("⚠️ failed to update rendered content:", err)
            return
        }
        n.RenderedContent = rendered
    }

    if err := s.Queue.Publish("welcome_sends", n.ID); err != nil {
        log.Println("⚠️ failed to enqueue notification ID", n.ID, ":", err)
    }
}

// GetCustomer fetches a customer by ID, going through the cache when configured
func (s *CustomerService) GetCustomer(id int) (*model.Customer, error) {
    if s.Cache != nil {
        if cached, err := s.Cache.Get(id); err == nil && cached != nil {
            return cached, nil
        }
    }

    c, err := s.CustomerRepo.GetByID(id)
    if err != nil {
        return nil, err
    }

    if s.Cache != nil {
        if err := s.Cache.Set(c); err != nil {
            log.Println("⚠️ failed to cache customer:", err)
        }
    }

    return c, nil
}

// ListCustomers fetches customers with pagination
func (s *CustomerService) ListCustomers(page, pageSize int, location, search string) ([]model.Customer, map[string]int, error) {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }
    if pageSize > 100 {
        pageSize = 100
    }
    offset := (page - 1) * pageSize

    ptrs, total, err := s.CustomerRepo.ListCustomers(offset, pageSize, location, search)
    if err != nil {
        return nil, nil, err
    }

    customers := make([]model.Customer, len(ptrs))
    for i, c := range ptrs {
        customers[i] = *c
    }

    totalPages := (total + pageSize - 1) / pageSize
    pagination := map[string]int{
        "page":        page,
        "page_size":   pageSize,
        "total_count": total,
        "total_pages": totalPages,
    }

    return customers, pagination, nil
}

func (s *CustomerService) UpdateCustomer(id int, firstName, lastName, email, phone, location string) (*model.Customer, error) {
    if err := validateCustomerInput(firstName, lastName, email); err != nil {
        return nil, err
    }

    c, err := s.CustomerRepo.GetByID(id)
    if err != nil {
        return nil, err
    }

    c.FirstName = strings.TrimSpace(firstName)
    c.LastName = strings.TrimSpace(lastName)
    c.Email = strings.TrimSpace(email)
    c.Phone = strings.TrimSpace(phone)
    c.Location = strings.TrimSpace(location)

    if err := s.CustomerRepo.Update(c); err != nil {
        return nil, err
    }

    if s.Cache != nil {
        if err := s.Cache.Invalidate(id); err != nil {
            log.Println("⚠️ failed to invalidate cached customer:", err)
        }
    }

    return c, nil
}

func (s *CustomerService) DeleteCustomer(id int) error {
    if err := s.CustomerRepo.Delete(id); err != nil {
        return err
    }

    if s.Cache != nil {
        if err := s.Cache.Invalidate(id); err != nil {
            log.Println("⚠️ failed to invalidate cached customer:", err)
        }
    }

    return nil
}

// RenderWelcomePreview renders the welcome message for a customer without sending it
func (s *CustomerService) RenderWelcomePreview(customerID int, overrideTemplate *string) (string, error) {
    customer, err := s.CustomerRepo.GetByID(customerID)
    if err != nil {
        return "", err
    }
    if customer == nil {
        return "", fmt.Errorf("customer not found")
    }

    template := DefaultWelcomeTemplate

    if overrideTemplate != nil && strings.TrimSpace(*overrideTemplate) != "" {
        template = *overrideTemplate
    }

    if strings.TrimSpace(template) == "" {
        return "", fmt.Errorf("template cannot be empty")
    }

    return RenderTemplate(template, CustomerData(customer)), nil
}

// GetCustomerDetailsWithStats returns a customer along with notification counts by status
func (s *CustomerService) GetCustomerDetailsWithStats(customerID int) (*CustomerDetails, error) {
    customer, err := s.GetCustomer(customerID)
    if err != nil {
        return nil, err
    }

    stats := map[string]int{
        "total":   0,
        "pending": 0,
        "sent":    0,
        "failed":  0,
    }

    if s.NotificationRepo != nil {
        counts, err := s.NotificationRepo.GetCustomerStats(customerID)
        if err != nil {
            log.Println("Failed to fetch notification stats:", err)
            return nil, err
        }
        for status, count := range counts {
            if _, ok := stats[status]; ok {
                stats[status] = count
            }
            stats["total"] += count
        }
    }

    return &CustomerDetails{
        ID:               customer.ID,
        FirstName:        customer.FirstName,
        LastName:         customer.LastName,
        Email:            customer.Email,
        Phone:            customer.Phone,
        Location:         customer.Location,
        VerificationCode: customer.VerificationCode,
        CreatedAt:        customer.CreatedAt,
        UpdatedAt:        customer.UpdatedAt,
        Stats:            stats,
    }, nil
}
