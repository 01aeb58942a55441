package cron

import (
	"context"
	"testing"

	"stayledger/config"
	"stayledger/services/tasks"
	"stayledger/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func localConfig() config.Config {
	return config.Config{
		Timezone:             "UTC",
		SchedulerBackend:     config.SchedulerLocal,
		RecurringBillCron:    "0 3 * * *",
		CheckoutBillCron:     "0 18 * * *",
		RoomReleaseCron:      "30 18 * * *",
		MonthlyDeliveryCron:  "0 4 1 * *",
		CheckoutDeliveryCron: "0 19 * * *",
	}
}

func TestLocalRunner_StartRegistersEveryTrigger(t *testing.T) {
	jobs, _, _ := newJobs()
	r := NewLocalRunner(localConfig(), jobs, zap.NewNop())

	require.NoError(t, r.Start())
	defer r.Shutdown()
	assert.Len(t, r.cron.Entries(), len(tasks.TriggerTypes))
}

func TestLocalRunner_StartRejectsBadSpec(t *testing.T) {
	jobs, _, _ := newJobs()
	cfg := localConfig()
	cfg.RoomReleaseCron = "after checkout"
	r := NewLocalRunner(cfg, jobs, zap.NewNop())

	err := r.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), tasks.TypeRoomRelease)
}

func TestLocalRunner_DispatchRunsSynchronously(t *testing.T) {
	jobs, b, _ := newJobs()
	r := NewLocalRunner(localConfig(), jobs, zap.NewNop())
	pinned := utils.Date(2025, 7, 25)
	b.On("RunCheckoutTrigger", pinned).Return(nil).Once()

	id, err := r.Dispatch(context.Background(), tasks.TypeCheckoutBill, &pinned)
	require.NoError(t, err)
	assert.Equal(t, "local:"+tasks.TypeCheckoutBill, id)
	b.AssertExpectations(t)

	_, err = r.Dispatch(context.Background(), "reminder:send", nil)
	assert.Error(t, err)
}
