// internal/model/customer.go
package model

import "time"

type Customer struct {
    ID               int        `db:"id" json:"id"`
    FirstName        string     `db:"first_name" json:"firstName"`
    LastName         string     `db:"last_name" json:"lastName"`
    Email            string     `db:"email" json:"email"`
    Phone            string     `db:"phone" json:"phone,omitempty"`
    Location         string     `db:"location" json:"location,omitempty"`
    VerificationCode string     `db:"verification_code" json:"verificationCode,omitempty"`
    CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
    UpdatedAt        *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}
