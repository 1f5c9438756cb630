package dto

// Límites de paginación.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest paginación para listados (?page=&size=). page empieza en 0.
type PageRequest struct {
	Page int `query:"page"`
	Size int `query:"size"`
}

// Normalize aplica los valores por defecto: size 0 -> 10, page negativa -> 0, size tope 100.
func (p *PageRequest) Normalize() {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
}

// Limit filas a leer.
func (p PageRequest) Limit() int { return p.Size }

// Offset filas a saltar.
func (p PageRequest) Offset() int { return p.Page * p.Size }

// PageResponse página de resultados.
type PageResponse[T any] struct {
	Content       []T `json:"content"`
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalElements int `json:"total_elements"`
	TotalPages    int `json:"total_pages"`
}

// NewPage arma la respuesta paginada a partir del total de registros.
func NewPage[T any](content []T, req PageRequest, total int) *PageResponse[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = (total + req.Size - 1) / req.Size
	}
	return &PageResponse[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Errors   []string `json:"errors,omitempty"`
	Resource string   `json:"resource,omitempty"`
	Field    string   `json:"field,omitempty"`
	Value    string   `json:"value,omitempty"`
}
