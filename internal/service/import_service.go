// internal/service/import_service.go
package service

import (
    "errors"
    "fmt"
    "io"
    "log"
    "strings"

    "github.com/xuri/excelize/v2"

    "github.com/kamaubrian/customerhub-backend/internal/model"
    "github.com/kamaubrian/customerhub-backend/internal/repository"
)

type ImportService struct {
    CustomerRepo repository.CustomerRepositoryInterface
}

// ImportCustomersFromExcel reads an Excel file stream and inserts the customers it contains.
// Expected columns: A first_name, B last_name, C email, D phone, E location. Row 1 is the header.
func (s *ImportService) ImportCustomersFromExcel(file io.Reader) (int, error) {
    f, err := excelize.OpenReader(file)
    if err != nil {
        log.Printf("Error opening Excel reader: %v", err)
        return 0, fmt.Errorf("failed to open excel file: %w", err)
    }
    defer func() {
        // Close the spreadsheet.
        if err := f.Close(); err != nil {
            log.Printf("Error closing excel file: %v", err)
        }
    }()

    // Assuming data is in the first sheet
    sheetName := f.GetSheetName(0)
    if sheetName == "" {
        return 0, errors.New("excel file does not contain any sheets")
    }

    rows, err := f.GetRows(sheetName)
    if err != nil {
        log.Printf("Error getting rows from sheet '%s': %v", sheetName, err)
        return 0, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
    }

    importedCount := 0

    // Start from row 1 (index 1) to skip header (assuming row 0 is header)
    for i, row := range rows {
        if i == 0 {
            continue // Skip header row
        }

        var firstName, lastName, email, phone, location string

        if len(row) > 0 {
            firstName = strings.TrimSpace(row[0])
        }
        if len(row) > 1 {
            lastName = strings.TrimSpace(row[1])
        }
        if len(row) > 2 {
            email = strings.TrimSpace(row[2])
        }
        if len(row) > 3 {
            phone = strings.TrimSpace(row[3])
        }
        if len(row) > 4 {
            location = strings.TrimSpace(row[4])
        }

        // Basic validation: skip bad rows, keep importing the rest
        if err := validateCustomerInput(firstName, lastName, email); err != nil {
            log.Printf("Skipping row %d: %v", i+1, err)
            continue
        }

        existing, err := s.CustomerRepo.GetByEmail(email)
        if err != nil {
            log.Printf("Skipping row %d: email lookup failed: %v", i+1, err)
            continue
        }
        if existing != nil {
            log.Printf("Skipping row %d: customer with email %s already exists", i+1, email)
            continue
        }

        c := &model.Customer{
            FirstName:        firstName,
            LastName:         lastName,
            Email:            email,
            Phone:            phone,
            Location:         location,
            VerificationCode: NewVerificationCode(),
        }
        if err := s.CustomerRepo.Create(c); err != nil {
            log.Printf("Skipping row %d: insert failed: %v", i+1, err)
            continue
        }

        importedCount++
    }

    return importedCount, nil
}
