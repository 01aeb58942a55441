package cron

import (
	"context"
	"fmt"
	"time"

	"stayledger/services/billing"
	"stayledger/services/delivery"
	"stayledger/services/tasks"
	"stayledger/utils"

	"go.uber.org/zap"
)

// BillingTriggers are the billing runs driven by the scheduler.
type BillingTriggers interface {
	RunRecurringTrigger(ctx context.Context, date time.Time) (billing.RunReport, error)
	RunCheckoutTrigger(ctx context.Context, date time.Time) (billing.RunReport, error)
	RunRoomReleaseTrigger(ctx context.Context, date time.Time) (billing.RunReport, error)
}

// DeliveryRuns are the delivery runs driven by the scheduler.
type DeliveryRuns interface {
	DeliverMonthEnd(ctx context.Context, today time.Time) (delivery.DeliveryReport, error)
	DeliverCheckouts(ctx context.Context, today time.Time) (delivery.DeliveryReport, error)
}

// Jobs maps trigger task types onto the services that execute them. Both
// scheduler backends and manual dispatch go through Run.
type Jobs struct {
	Billing  BillingTriggers
	Delivery DeliveryRuns
	Clock    utils.Clock
	Logger   *zap.Logger
}

// Run executes one trigger for date, or for today on the clock when date is nil.
func (j *Jobs) Run(ctx context.Context, taskType string, date *time.Time) (interface{}, error) {
	day := utils.Today(j.Clock)
	if date != nil {
		day = utils.DateOf(*date)
	}

	logger := utils.OrNop(j.Logger).With(zap.String("task", taskType), zap.String("date", day.Format(utils.DateLayout)))
	started := time.Now()
	logger.Info("trigger started")

	var (
		report interface{}
		err    error
	)
	switch taskType {
	case tasks.TypeRecurringBill:
		report, err = j.Billing.RunRecurringTrigger(ctx, day)
	case tasks.TypeCheckoutBill:
		report, err = j.Billing.RunCheckoutTrigger(ctx, day)
	case tasks.TypeRoomRelease:
		report, err = j.Billing.RunRoomReleaseTrigger(ctx, day)
	case tasks.TypeMonthlyDelivery:
		report, err = j.Delivery.DeliverMonthEnd(ctx, day)
	case tasks.TypeCheckoutDelivery:
		report, err = j.Delivery.DeliverCheckouts(ctx, day)
	default:
		return nil, fmt.Errorf("unknown trigger task type %q", taskType)
	}

	if err != nil {
		logger.Error("trigger failed", zap.Duration("took", time.Since(started)), zap.Error(err))
		return report, err
	}
	logger.Info("trigger finished", zap.Duration("took", time.Since(started)), zap.Any("report", report))
	return report, nil
}

// Schedule maps each trigger task type to its cron expression.
func Schedule(specs map[string]string) map[string]string {
	return map[string]string{
		tasks.TypeRecurringBill:    specs["RECURRING_BILL_CRON"],
		tasks.TypeCheckoutBill:     specs["CHECKOUT_BILL_CRON"],
		tasks.TypeRoomRelease:      specs["ROOM_RELEASE_CRON"],
		tasks.TypeMonthlyDelivery:  specs["MONTHLY_DELIVERY_CRON"],
		tasks.TypeCheckoutDelivery: specs["CHECKOUT_DELIVERY_CRON"],
	}
}
