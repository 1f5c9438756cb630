package dto

import (
	"encoding/json"
	"time"
)

// DateLayout formato de fechas en el API (sin hora).
const DateLayout = "2006-01-02"

// Date fecha de calendario serializada como "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate trunca t a la fecha (UTC).
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
