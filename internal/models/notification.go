package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PartsRequest is the durable record of one checkout submission and the
// e-mail sent for it.
type PartsRequest struct {
	ID            uuid.UUID          `json:"id"`
	SessionID     string             `json:"-"`
	Recipient     string             `json:"recipient"`
	Subject       string             `json:"subject"`
	ContactName   string             `json:"contact_name"`
	Company       string             `json:"company"`
	ContactEmail  string             `json:"contact_email"`
	ItemCount     int                `json:"item_count"`
	MachineCount  int                `json:"machine_count"`
	CriticalCount int                `json:"critical_count"`
	Status        PartsRequestStatus `json:"status"`
	ErrorMessage  string             `json:"error_message,omitempty"`
	Payload       json.RawMessage    `json:"-"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	SentAt        *time.Time         `json:"sent_at,omitempty"`
}

// PartsRequestPayload is the snapshot stored alongside a PartsRequest.
type PartsRequestPayload struct {
	Items   []CartItem  `json:"items"`
	Contact ContactData `json:"contact"`
}

type EmailNotificationRequest struct {
	To          string   `json:"to" validate:"required,email"`
	ToName      string   `json:"to_name,omitempty"`
	ReplyTo     string   `json:"reply_to,omitempty" validate:"omitempty,email"`
	ReplyToName string   `json:"reply_to_name,omitempty"`
	CC          []string `json:"cc,omitempty" validate:"omitempty,dive,email"`
	BCC         []string `json:"bcc,omitempty" validate:"omitempty,dive,email"`
	Subject     string   `json:"subject" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	HTMLContent string   `json:"html_content,omitempty"`
}
