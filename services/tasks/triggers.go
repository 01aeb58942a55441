package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeRecurringBill    = "billing:recurring"
	TypeCheckoutBill     = "billing:checkout"
	TypeRoomRelease      = "rooms:release"
	TypeMonthlyDelivery  = "delivery:monthly"
	TypeCheckoutDelivery = "delivery:checkout"

	// QueueTriggers is the asynq queue all scheduled triggers run on.
	QueueTriggers = "triggers"

	dateLayout = "2006-01-02"
)

// TriggerTypes lists every scheduled trigger in the order they run on a given day.
var TriggerTypes = []string{
	TypeRecurringBill,
	TypeMonthlyDelivery,
	TypeCheckoutBill,
	TypeRoomRelease,
	TypeCheckoutDelivery,
}

// TriggerPayload optionally pins a trigger run to a date instead of "today".
type TriggerPayload struct {
	Date string `json:"date,omitempty"` // YYYY-MM-DD
}

// IsTriggerType reports whether name is a known trigger task type.
func IsTriggerType(name string) bool {
	for _, t := range TriggerTypes {
		if t == name {
			return true
		}
	}
	return false
}

// NewTriggerTask builds a trigger task. A nil date lets the worker use its clock.
// Runs never retry; the next scheduled run picks up whatever was left.
func NewTriggerTask(taskType string, date *time.Time) (*asynq.Task, []asynq.Option, error) {
	if !IsTriggerType(taskType) {
		return nil, nil, fmt.Errorf("unknown trigger task type %q", taskType)
	}
	var p TriggerPayload
	if date != nil {
		p.Date = date.Format(dateLayout)
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(taskType, b)
	opts := []asynq.Option{
		asynq.Queue(QueueTriggers),
		asynq.MaxRetry(0),
		asynq.Unique(time.Hour),
	}
	return task, opts, nil
}

// ParseTriggerDate returns the date pinned in the payload, or ok=false when
// the run should use the current date.
func ParseTriggerDate(payload []byte) (date time.Time, ok bool, err error) {
	if len(payload) == 0 {
		return time.Time{}, false, nil
	}
	var p TriggerPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return time.Time{}, false, fmt.Errorf("invalid trigger payload: %w", err)
	}
	if p.Date == "" {
		return time.Time{}, false, nil
	}
	date, err = time.ParseInLocation(dateLayout, p.Date, time.UTC)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid trigger date %q: %w", p.Date, err)
	}
	return date, true, nil
}
