package models

type Machine struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Brand          string   `json:"brand"`
	Model          string   `json:"model"`
	Year           int      `json:"year"`
	Power          string   `json:"power"`
	Image          string   `json:"image"`
	Description    string   `json:"description"`
	Specifications []string `json:"specifications"`
	Tags           []string `json:"tags"`
}

// MachineFilter narrows a catalog listing. Zero values disable a criterion.
type MachineFilter struct {
	Search     string   `json:"search,omitempty"`
	Categories []string `json:"categories,omitempty"`
	YearFrom   int      `json:"year_from,omitempty"`
	YearTo     int      `json:"year_to,omitempty"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Normalized fills in the paging defaults.
func (f MachineFilter) Normalized() MachineFilter {
	if f.Page < 1 {
		f.Page = 1
	}

	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}

	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}

	return f
}

func (f MachineFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// MachineCategories are the main catalog sections, in display order.
var MachineCategories = []string{
	"Recepção",
	"Limpeza",
	"Moagem",
	"Mistura",
	"Ensacamento",
	"Transportadores",
	"Armazenagem",
	"Aspiração e Pneumático",
	"Aparelho Magnético",
	"Farelo e Impurezas",
	"Arroz e Milho",
}

// PartCategories are the kinds of parts a visitor can ask for.
var PartCategories = []string{
	"Revestimentos e Blindagens",
	"Rolamentos e Mancais",
	"Motores e Redutores",
	"Sistemas Hidráulicos",
	"Componentes Elétricos",
	"Peças de Desgaste",
	"Filtros e Vedações",
	"Sensores e Instrumentação",
}
