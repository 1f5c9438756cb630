package invoicing

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// NumberPrefix prefijo de todos los números de factura.
const NumberPrefix = "INV"

// NumberGenerator produce el número legible de una factura al crearla.
type NumberGenerator interface {
	Next(ctx context.Context) (string, error)
}

// FormatNumber arma INV-<YYYYMMDD>-<secuencia de al menos 4 dígitos>.
func FormatNumber(date time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", NumberPrefix, date.Format("20060102"), seq)
}

// SequenceCounter contador en memoria del proceso: arranca en 1 y se reinicia con el proceso.
// Único solo dentro de una instancia; en despliegues con varias instancias usar la secuencia de base de datos.
type SequenceCounter struct {
	next atomic.Int64
	now  func() time.Time
}

// NewSequenceCounter construye el contador. now puede ser nil (usa time.Now).
func NewSequenceCounter(now func() time.Time) *SequenceCounter {
	if now == nil {
		now = time.Now
	}
	c := &SequenceCounter{now: now}
	c.next.Store(1)
	return c
}

// Next toma el valor actual e incrementa de forma atómica.
func (c *SequenceCounter) Next(_ context.Context) (string, error) {
	seq := c.next.Add(1) - 1
	return FormatNumber(c.now(), seq), nil
}
