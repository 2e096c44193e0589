package models

import (
	"time"
)

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}

	return false
}

// Label is the pt-BR name shown to the sales team.
func (u Urgency) Label() string {
	switch u {
	case UrgencyLow:
		return "Baixa"
	case UrgencyMedium:
		return "Média"
	case UrgencyHigh:
		return "Alta"
	case UrgencyCritical:
		return "Crítica"
	}

	return string(u)
}

// ResponseTime is the estimate displayed next to a single request.
func (u Urgency) ResponseTime() string {
	switch u {
	case UrgencyCritical:
		return "2-4 horas"
	case UrgencyHigh:
		return "4-8 horas"
	case UrgencyMedium:
		return "12-24 horas"
	case UrgencyLow:
		return "24-48 horas"
	}

	return "24 horas"
}

// CartItem is one parts request attached to one machine. Machine fields are
// a snapshot taken when the request was added.
type CartItem struct {
	ID                 string    `json:"id"`
	MachineID          int       `json:"machine_id"`
	MachineName        string    `json:"machine_name"`
	MachineBrand       string    `json:"machine_brand"`
	MachineModel       string    `json:"machine_model"`
	MachineImage       string    `json:"machine_image"`
	PartCategories     []string  `json:"part_categories"`
	ProblemDescription string    `json:"problem_description"`
	Urgency            Urgency   `json:"urgency"`
	SerialNumber       string    `json:"serial_number,omitempty"`
	ManufacturingYear  string    `json:"manufacturing_year,omitempty"`
	OperatingHours     string    `json:"operating_hours,omitempty"`
	AddedAt            time.Time `json:"added_at"`
}

// NewCartItem carries everything the store needs to build a CartItem
// except the id and timestamp it assigns itself.
type NewCartItem struct {
	MachineID          int
	MachineName        string
	MachineBrand       string
	MachineModel       string
	MachineImage       string
	PartCategories     []string
	ProblemDescription string
	Urgency            Urgency
	SerialNumber       string
	ManufacturingYear  string
	OperatingHours     string
}

type ContactData struct {
	FullName        string `json:"full_name" validate:"notblank,max=120"`
	Company         string `json:"company" validate:"notblank,max=120"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"notblank,max=40"`
	WhatsApp        string `json:"whatsapp,omitempty" validate:"omitempty,max=40"`
	City            string `json:"city" validate:"notblank,max=80"`
	State           string `json:"state" validate:"notblank,max=40"`
	ZipCode         string `json:"zip_code" validate:"notblank,max=20"`
	MaxBudget       string `json:"max_budget,omitempty" validate:"omitempty,max=60"`
	DesiredDeadline string `json:"desired_deadline,omitempty" validate:"omitempty,max=60"`
	PreferCertified bool   `json:"prefer_certified"`
}

// CartState is the record persisted under the session's storage key.
type CartState struct {
	Items       []CartItem   `json:"items"`
	ContactData *ContactData `json:"contact_data"`
	IsOpen      bool         `json:"is_open"`
}

type CartView struct {
	Items                []CartItem   `json:"items"`
	ContactData          *ContactData `json:"contact_data"`
	IsOpen               bool         `json:"is_open"`
	ItemCount            int          `json:"item_count"`
	TotalMachines        int          `json:"total_machines"`
	CriticalCount        int          `json:"critical_count"`
	ExpectedResponseTime string       `json:"expected_response_time"`
}

type AddItemRequest struct {
	MachineID          int      `json:"machine_id"          validate:"required,gt=0"`
	PartCategories     []string `json:"part_categories"     validate:"required,min=1,dive,notblank,max=80"`
	ProblemDescription string   `json:"problem_description" validate:"notblank,max=2000"`
	Urgency            Urgency  `json:"urgency"             validate:"omitempty,oneof=low medium high critical"`
	SerialNumber       string   `json:"serial_number"       validate:"omitempty,max=64"`
	ManufacturingYear  string   `json:"manufacturing_year"  validate:"omitempty,max=8"`
	OperatingHours     string   `json:"operating_hours"     validate:"omitempty,max=16"`
}

// UpdateItemRequest only names the fields a visitor may change after a
// request is in the cart. Nil fields are left alone.
type UpdateItemRequest struct {
	Urgency            *Urgency `json:"urgency,omitempty"             validate:"omitempty,oneof=low medium high critical"`
	ProblemDescription *string  `json:"problem_description,omitempty" validate:"omitempty,notblank,max=2000"`
	PartCategories     []string `json:"part_categories,omitempty"     validate:"omitempty,min=1,dive,notblank,max=80"`
	SerialNumber       *string  `json:"serial_number,omitempty"       validate:"omitempty,max=64"`
	ManufacturingYear  *string  `json:"manufacturing_year,omitempty"  validate:"omitempty,max=8"`
	OperatingHours     *string  `json:"operating_hours,omitempty"     validate:"omitempty,max=16"`
}

type CartVisibilityAction string

const (
	CartToggle CartVisibilityAction = "toggle"
	CartOpen   CartVisibilityAction = "open"
	CartClose  CartVisibilityAction = "close"
)
