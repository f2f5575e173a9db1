package repository

import (
    "database/sql"
    "time"

    "github.com/kamaubrian/customerhub-backend/internal/model"
)

// NotificationRepositoryInterface defines methods used by the service and workers
type NotificationRepositoryInterface interface {
    Create(n *model.Notification) error
    GetByID(id int) (*model.Notification, error)
    GetCustomerNotification(customerID int, kind string) (*model.Notification, error)
    Update(n *model.Notification) error
    UpdateStatus(id int, status, lastError string) error
    MarkFailed(id int, lastError string) error
    UpdateContent(id int, content string) error
    GetCustomerStats(customerID int) (map[string]int, error)
}

type NotificationRepository struct {
    DB *sql.DB
}

// Create inserts a new notification into the database and returns the created ID
func (r *NotificationRepository) Create(n *model.Notification) error {
    now := time.Now()
    n.CreatedAt = now
    n.UpdatedAt = now
    if n.Status == "" {
        n.Status = "pending"
    }

    query := `
        INSERT INTO notifications
        (customer_id, kind, status, rendered_content, last_error, retry_count, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
    return r.DB.QueryRow(
        query,
        n.CustomerID,
        n.Kind,
        n.Status,
        n.RenderedContent,
        n.LastError,
        n.RetryCount,
        n.CreatedAt,
        n.UpdatedAt,
    ).Scan(&n.ID)
}

// GetByID fetches a notification by its ID (nil when none exists)
func (r *NotificationRepository) GetByID(id int) (*model.Notification, error) {
    query := `
        SELECT id, customer_id, kind, status, rendered_content, last_error, retry_count, created_at, updated_at
        FROM notifications
        WHERE id=$1
    `
    var n model.Notification
    err := r.DB.QueryRow(query, id).Scan(
        &n.ID,
        &n.CustomerID,
        &n.Kind,
        &n.Status,
        &n.RenderedContent,
        &n.LastError,
        &n.RetryCount,
        &n.CreatedAt,
        &n.UpdatedAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return &n, nil
}

// GetCustomerNotification fetches the notification of a given kind for a customer.
// Used to keep welcome sends idempotent.
func (r *NotificationRepository) GetCustomerNotification(customerID int, kind string) (*model.Notification, error) {
    query := `
        SELECT id, customer_id, kind, status, rendered_content, last_error, retry_count, created_at, updated_at
        FROM notifications
        WHERE customer_id=$1 AND kind=$2
    `
    var n model.Notification
    err := r.DB.QueryRow(query, customerID, kind).Scan(
        &n.ID, &n.CustomerID, &n.Kind, &n.Status,
        &n.RenderedContent, &n.LastError, &n.RetryCount,
        &n.CreatedAt, &n.UpdatedAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return &n, nil
}

// Update updates an existing notification (e.g., status, last_error, retry_count)
func (r *NotificationRepository) Update(n *model.Notification) error {
    n.UpdatedAt = time.Now()
    query := `
        UPDATE notifications
        SET status=$1, rendered_content=$2, last_error=$3, retry_count=$4, updated_at=$5
        WHERE id=$6
    `
    _, err := r.DB.Exec(query, n.Status, n.RenderedContent, n.LastError, n.RetryCount, n.UpdatedAt, n.ID)
    return err
}

func (r *NotificationRepository) UpdateStatus(id int, status, lastError string) error {
    query := `UPDATE notifications SET status=$1, last_error=$2, updated_at=NOW() WHERE id=$3`
    _, err := r.DB.Exec(query, status, lastError, id)
    return err
}

// MarkFailed records a failed send attempt. Only failures bump retry_count.
func (r *NotificationRepository) MarkFailed(id int, lastError string) error {
    query := `UPDATE notifications SET status='failed', last_error=$1, retry_count=retry_count+1, updated_at=NOW() WHERE id=$2`
    _, err := r.DB.Exec(query, lastError, id)
    return err
}

func (r *NotificationRepository) UpdateContent(id int, content string) error {
    query := `UPDATE notifications SET rendered_content=$1, updated_at=NOW() WHERE id=$2`
    _, err := r.DB.Exec(query, content, id)
    return err
}

// GetCustomerStats returns notification counts grouped by status for one customer
func (r *NotificationRepository) GetCustomerStats(customerID int) (map[string]int, error) {
    query := `SELECT status, COUNT(*) FROM notifications WHERE customer_id=$1 GROUP BY status`
    rows, err := r.DB.Query(query, customerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    stats := map[string]int{"pending": 0, "sent": 0, "failed": 0}
    for rows.Next() {
        var status string
        var count int
        if err := rows.Scan(&status, &count); err != nil {
            return nil, err
        }
        stats[status] = count
    }
    return stats, nil
}

var _ NotificationRepositoryInterface = (*NotificationRepository)(nil)
