package cron

import (
	"context"
	"fmt"
	"time"

	"stayledger/config"
	"stayledger/services/tasks"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// LocalRunner runs the triggers in-process for single-node deployments.
type LocalRunner struct {
	cron   *robfig.Cron
	jobs   *Jobs
	specs  map[string]string
	logger *zap.Logger
}

// cronLogger adapts zap to robfig/cron's logger.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}

func NewLocalRunner(cfg config.Config, jobs *Jobs, logger *zap.Logger) *LocalRunner {
	cl := cronLogger{sugar: logger.Sugar()}
	c := robfig.New(
		robfig.WithLocation(cfg.Location()),
		robfig.WithLogger(cl),
		robfig.WithChain(robfig.Recover(cl), robfig.SkipIfStillRunning(cl)),
	)
	return &LocalRunner{cron: c, jobs: jobs, specs: Schedule(cfg.CronSpecs()), logger: logger}
}

// Start registers every trigger and starts the cron loop.
func (r *LocalRunner) Start() error {
	for _, t := range tasks.TriggerTypes {
		taskType := t
		_, err := r.cron.AddFunc(r.specs[taskType], func() {
			// Errors are logged by Jobs.Run; the next tick retries.
			_, _ = r.jobs.Run(context.Background(), taskType, nil)
		})
		if err != nil {
			return fmt.Errorf("register %s (%q): %w", taskType, r.specs[taskType], err)
		}
		r.logger.Info("[LocalRunner] scheduled", zap.String("task", taskType), zap.String("spec", r.specs[taskType]))
	}
	r.cron.Start()
	return nil
}

// Dispatch runs a trigger synchronously.
func (r *LocalRunner) Dispatch(ctx context.Context, taskType string, date *time.Time) (string, error) {
	if !tasks.IsTriggerType(taskType) {
		return "", fmt.Errorf("unknown trigger task type %q", taskType)
	}
	if _, err := r.jobs.Run(ctx, taskType, date); err != nil {
		return "", err
	}
	return "local:" + taskType, nil
}

// Shutdown stops the cron loop and waits for a running trigger.
func (r *LocalRunner) Shutdown() {
	<-r.cron.Stop().Done()
}
