package delivery

import (
	"context"

	"stayledger/models"
)

// Renderer turns a generated bill into a document.
type Renderer interface {
	Render(bill models.GeneratedBill) ([]byte, error)
}

// Mailer sends one message with a single PDF attachment.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string, attachment []byte) error
}

// DeliveryReport summarizes one delivery run.
type DeliveryReport struct {
	Run        string   `json:"run"`
	Candidates int      `json:"candidates"`
	Sent       int      `json:"sent"`
	Failed     int      `json:"failed"`
	FailedIDs  []string `json:"failedIds,omitempty"`
}
