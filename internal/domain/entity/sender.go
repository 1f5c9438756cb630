package entity

import "time"

// Sender representa al emisor de las facturas. El email es único entre emisores.
type Sender struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
