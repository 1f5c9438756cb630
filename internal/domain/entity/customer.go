package entity

import "time"

// Customer representa al receptor de las facturas.
type Customer struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	Address     string
	Country     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
