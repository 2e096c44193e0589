package models

import (
	"time"

	"github.com/google/uuid"
)

type CheckoutStep int

const (
	StepReview CheckoutStep = iota + 1
	StepContact
	StepConfirmation
)

func (s CheckoutStep) String() string {
	switch s {
	case StepReview:
		return "review"
	case StepContact:
		return "contact"
	case StepConfirmation:
		return "confirmation"
	}

	return "unknown"
}

func (s CheckoutStep) Valid() bool {
	return s >= StepReview && s <= StepConfirmation
}

// CheckoutProgress is what survives between requests for one session.
type CheckoutProgress struct {
	Step CheckoutStep `json:"step"`
}

type CheckoutView struct {
	Step       CheckoutStep `json:"step"`
	StepName   string       `json:"step_name"`
	Submitting bool         `json:"submitting"`
	Cart       *CartView    `json:"cart"`
}

type SubmissionResult struct {
	RequestID            uuid.UUID          `json:"request_id"`
	Status               PartsRequestStatus `json:"status"`
	ItemCount            int                `json:"item_count"`
	TotalMachines        int                `json:"total_machines"`
	CriticalCount        int                `json:"critical_count"`
	ExpectedResponseTime string             `json:"expected_response_time"`
	SubmittedAt          time.Time          `json:"submitted_at"`
	// CartCleared is false when the request was sent but the saved cart
	// could not be emptied; submitting again would send it twice.
	CartCleared bool `json:"cart_cleared"`
}
