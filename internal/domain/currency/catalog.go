// Package currency mantiene la tabla de códigos ISO-4217 válidos. Se construye una vez al arrancar
// y se inyecta por referencia a quien la necesite (validación y redondeo).
package currency

import (
	"sort"
	"strings"

	xcurrency "golang.org/x/text/currency"
)

// DefaultScale decimales usados cuando la moneda no está en la tabla.
const DefaultScale int32 = 2

// Catalog tabla inmutable código -> decimales de la unidad menor.
type Catalog struct {
	scales map[string]int32
}

// NewCatalog construye la tabla a partir de un mapa explícito (códigos en mayúsculas).
func NewCatalog(scales map[string]int32) *Catalog {
	m := make(map[string]int32, len(scales))
	for code, scale := range scales {
		m[strings.ToUpper(code)] = scale
	}
	return &Catalog{scales: m}
}

// NewISOCatalog carga las monedas de curso legal vigentes desde golang.org/x/text/currency.
func NewISOCatalog() *Catalog {
	m := make(map[string]int32)
	it := xcurrency.Query()
	for it.Next() {
		u := it.Unit()
		scale, _ := xcurrency.Standard.Rounding(u)
		m[u.String()] = int32(scale)
	}
	return &Catalog{scales: m}
}

// IsValid indica si el código pertenece a la tabla (no distingue mayúsculas).
func (c *Catalog) IsValid(code string) bool {
	_, ok := c.scales[strings.ToUpper(code)]
	return ok
}

// Scale decimales de la unidad menor de la moneda; DefaultScale si no se conoce.
func (c *Catalog) Scale(code string) int32 {
	if s, ok := c.scales[strings.ToUpper(code)]; ok {
		return s
	}
	return DefaultScale
}

// Codes lista ordenada de códigos.
func (c *Catalog) Codes() []string {
	out := make([]string, 0, len(c.scales))
	for code := range c.scales {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Len cantidad de monedas en la tabla.
func (c *Catalog) Len() int { return len(c.scales) }
