package repository

import (
    "database/sql"
    "fmt"
    "time"

    appErrors "github.com/kamaubrian/customerhub-backend/internal/errors"
    "github.com/kamaubrian/customerhub-backend/internal/model"
)

type CustomerRepositoryInterface interface {
    // Customer CRUD
    Create(c *model.Customer) error
    // GetByID returns appErrors.ErrCustomerNotFound when no row exists, never (nil, nil)
    GetByID(id int) (*model.Customer, error)
    // GetByEmail returns (nil, nil) when no row exists
    GetByEmail(email string) (*model.Customer, error)
    ListCustomers(offset, limit int, location, search string) ([]*model.Customer, int, error)
    Update(c *model.Customer) error
    Delete(id int) error
}

type CustomerRepository struct {
    DB *sql.DB
}

// ====================== Customer CRUD ======================

func (r *CustomerRepository) Create(c *model.Customer) error {
    c.CreatedAt = time.Now()
    query := `
        INSERT INTO customers (first_name, last_name, email, phone, location, verification_code, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
    return r.DB.QueryRow(query, c.FirstName, c.LastName, c.Email, c.Phone, c.Location, c.VerificationCode, c.CreatedAt).Scan(&c.ID)
}

func (r *CustomerRepository) GetByID(id int) (*model.Customer, error) {
    query := `
        SELECT id, first_name, last_name, email, phone, location, verification_code, created_at, updated_at
        FROM customers WHERE id=$1
    `
    var c model.Customer
    err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Location, &c.VerificationCode, &c.CreatedAt, &c.UpdatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewCustomerNotFound(id)
        }
        return nil, err
    }
    return &c, nil
}

// GetByEmail fetches a customer by email (nil when none exists)
func (r *CustomerRepository) GetByEmail(email string) (*model.Customer, error) {
    query := `
        SELECT id, first_name, last_name, email, phone, location, verification_code, created_at, updated_at
        FROM customers WHERE email=$1
    `
    var c model.Customer
    err := r.DB.QueryRow(query, email).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Location, &c.VerificationCode, &c.CreatedAt, &c.UpdatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil // not found
        }
        return nil, err
    }
    return &c, nil
}

func (r *CustomerRepository) ListCustomers(offset, limit int, location, search string) ([]*model.Customer, int, error) {
    customers := []*model.Customer{}
    query := `SELECT id, first_name, last_name, email, phone, location, verification_code, created_at, updated_at FROM customers WHERE 1=1`
    args := []interface{}{}
    argPos := 1

    if location != "" {
        query += fmt.Sprintf(" AND location=$%d", argPos)
        args = append(args, location)
        argPos++
    }
    if search != "" {
        query += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)", argPos, argPos, argPos)
        args = append(args, "%"+search+"%")
        argPos++
    }

    query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
    args = append(args, limit, offset)

    rows, err := r.DB.Query(query, args...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    for rows.Next() {
        c := &model.Customer{}
        if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Location, &c.VerificationCode, &c.CreatedAt, &c.UpdatedAt); err != nil {
            return nil, 0, err
        }
        customers = append(customers, c)
    }

    // Count total
    countQuery := `SELECT COUNT(*) FROM customers WHERE 1=1`
    argsCount := []interface{}{}
    argPosCount := 1
    if location != "" {
        countQuery += fmt.Sprintf(" AND location=$%d", argPosCount)
        argsCount = append(argsCount, location)
        argPosCount++
    }
    if search != "" {
        countQuery += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)", argPosCount, argPosCount, argPosCount)
        argsCount = append(argsCount, "%"+search+"%")
    }

    var total int
    if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
        return nil, 0, err
    }

    return customers, total, nil
}

func (r *CustomerRepository) Update(c *model.Customer) error {
    query := `
        UPDATE customers
        SET first_name=$1, last_name=$2, email=$3, phone=$4, location=$5, updated_at=NOW()
        WHERE id=$6
    `
    res, err := r.DB.Exec(query, c.FirstName, c.LastName, c.Email, c.Phone, c.Location, c.ID)
    if err != nil {
        return err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return appErrors.NewCustomerNotFound(c.ID)
    }
    return nil
}

func (r *CustomerRepository) Delete(id int) error {
    res, err := r.DB.Exec(`DELETE FROM customers WHERE id=$1`, id)
    if err != nil {
        return err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return appErrors.NewCustomerNotFound(id)
    }
    return nil
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
