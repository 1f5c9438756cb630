package entity

// Currency moneda registrada en la tabla currencies.
type Currency struct {
	Code string
	Name string
}
