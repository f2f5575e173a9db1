// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCustomerNotFound is a sentinel error
type ErrCustomerNotFound struct {
    CustomerID int
}

func (e *ErrCustomerNotFound) Error() string {
    return fmt.Sprintf("customer with ID %d not found", e.CustomerID)
}

// Helper constructor
func NewCustomerNotFound(id int) error {
    return &ErrCustomerNotFound{CustomerID: id}
}

// ErrNotificationNotFound is returned when a queued notification no longer exists
type ErrNotificationNotFound struct {
    NotificationID int
}

func (e *ErrNotificationNotFound) Error() string {
    return fmt.Sprintf("notification with ID %d not found", e.NotificationID)
}

func NewNotificationNotFound(id int) error {
    return &ErrNotificationNotFound{NotificationID: id}
}
