// internal/controller/customer_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"

    appErrors "github.com/kamaubrian/customerhub-backend/internal/errors"
    "github.com/kamaubrian/customerhub-backend/internal/service"
)

type CustomerController struct {
    CustomerService *service.CustomerService
    ImportService   *service.ImportService
}

func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
    var body struct {
        FirstName string `json:"firstName"`
        LastName  string `json:"lastName"`
        Email     string `json:"email"`
        Phone     string `json:"phone"`
        Location  string `json:"location"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    customer, err := c.CustomerService.CreateCustomer(body.FirstName, body.LastName, body.Email, body.Phone, body.Location)
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    // Plain success string, matching the classic tutorial response
    w.Header().Set("Content-Type", "text/plain")
    fmt.Fprintf(w, "customer created with id %d", customer.ID)
}

func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
    // Parse query parameters
    page, _ := strconv.Atoi(r.URL.Query().Get("page"))
    pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
    location := r.URL.Query().Get("location")
    search := r.URL.Query().Get("q")

    // Default values if missing
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }

    customers, pagination, err := c.CustomerService.ListCustomers(page, pageSize, location, search)
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    // Return JSON response
    json.NewEncoder(w).Encode(map[string]interface{}{
        "data":       customers,
        "pagination": pagination, // already contains total_count, total_pages, page, page_size
    })
}

func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, err := strconv.Atoi(idStr)
    if err != nil {
        http.Error(w, "invalid customer id", http.StatusBadRequest)
        return
    }

    customer, err := c.CustomerService.GetCustomer(id)
    if err != nil {
        var notFound *appErrors.ErrCustomerNotFound
        if errors.As(err, &notFound) {
            http.Error(w, err.Error(), http.StatusNotFound)
            return
        }
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(customer)
}

func (c *CustomerController) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, err := strconv.Atoi(idStr)
    if err != nil {
        http.Error(w, "invalid customer id", http.StatusBadRequest)
        return
    }

    var body struct {
        FirstName string `json:"firstName"`
        LastName  string `json:"lastName"`
        Email     string `json:"email"`
        Phone     string `json:"phone"`
        Location  string `json:"location"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    customer, err := c.CustomerService.UpdateCustomer(id, body.FirstName, body.LastName, body.Email, body.Phone, body.Location)
    if err != nil {
        var notFound *appErrors.ErrCustomerNotFound
        if errors.As(err, &notFound) {
            http.Error(w, err.Error(), http.StatusNotFound)
            return
        }
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(customer)
}

func (c *CustomerController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, err := strconv.Atoi(idStr)
    if err != nil {
        http.Error(w, "invalid customer id", http.StatusBadRequest)
        return
    }

    if err := c.CustomerService.DeleteCustomer(id); err != nil {
        var notFound *appErrors.ErrCustomerNotFound
        if errors.As(err, &notFound) {
            http.Error(w, err.Error(), http.StatusNotFound)
            return
        }
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "text/plain")
    fmt.Fprintf(w, "customer %d deleted", id)
}

func (c *CustomerController) WelcomePreview(w http.ResponseWriter, r *http.Request) {
    customerIDStr := chi.URLParam(r, "id")
    customerID, _ := strconv.Atoi(customerIDStr)

    var body struct {
        OverrideTemplate *string `json:"override_template"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    rendered, err := c.CustomerService.RenderWelcomePreview(customerID, body.OverrideTemplate)
    if err != nil {
        var notFound *appErrors.ErrCustomerNotFound
        if errors.As(err, &notFound) {
            http.Error(w, err.Error(), http.StatusNotFound)
            return
        }
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    json.NewEncoder(w).Encode(map[string]interface{}{
        "rendered_message": rendered,
        "used_template":    body.OverrideTemplate,
        "customer_id":      customerID,
    })
}

// ImportCustomers handles POST /customers/import (multipart xlsx upload)
func (c *CustomerController) ImportCustomers(w http.ResponseWriter, r *http.Request) {
    file, header, err := r.FormFile("file") // "file" is the name attribute in the form
    if err != nil {
        log.Printf("Error getting form file: %v", err)
        http.Error(w, "error retrieving uploaded file: "+err.Error(), http.StatusBadRequest)
        return
    }
    defer file.Close()

    log.Printf("Received file upload: %s", header.Filename)

    importedCount, err := c.ImportService.ImportCustomersFromExcel(file)
    if err != nil {
        log.Printf("Error importing customers from file %s: %v", header.Filename, err)
        http.Error(w, "failed to import customers: "+err.Error(), http.StatusInternalServerError)
        return
    }

    json.NewEncoder(w).Encode(map[string]interface{}{
        "message":        "Import successful",
        "imported_count": importedCount,
    })
}
