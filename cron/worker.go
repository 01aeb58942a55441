package cron

import (
	"context"
	"fmt"
	"time"

	"stayledger/config"
	"stayledger/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker runs the triggers on asynq: a Scheduler enqueues them on their cron
// spec and a single-concurrency Server executes them one at a time.
type Worker struct {
	jobs      *Jobs
	server    *asynq.Server
	scheduler *asynq.Scheduler
	client    *asynq.Client
	specs     map[string]string
	logger    *zap.Logger
}

func redisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// NewWorker builds the asynq server, scheduler and client for cfg.
func NewWorker(cfg config.Config, jobs *Jobs, logger *zap.Logger) *Worker {
	opt := redisOpt(cfg)
	sugar := logger.Sugar()

	return &Worker{
		jobs: jobs,
		server: asynq.NewServer(opt, asynq.Config{
			// Triggers must never overlap.
			Concurrency: 1,
			Queues:      map[string]int{tasks.QueueTriggers: 1},
			Logger:      sugar,
		}),
		scheduler: asynq.NewScheduler(opt, &asynq.SchedulerOpts{
			Location: cfg.Location(),
			Logger:   sugar,
		}),
		client: asynq.NewClient(opt),
		specs:  Schedule(cfg.CronSpecs()),
		logger: logger,
	}
}

// NewServeMux routes every trigger task type to jobs.
func NewServeMux(jobs *Jobs) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	for _, t := range tasks.TriggerTypes {
		mux.HandleFunc(t, handleTriggerTask(jobs))
	}
	return mux
}

func handleTriggerTask(jobs *Jobs) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		date, ok, err := tasks.ParseTriggerDate(task.Payload())
		if err != nil {
			// A malformed payload will never succeed.
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		var pinned *time.Time
		if ok {
			pinned = &date
		}
		_, err = jobs.Run(ctx, task.Type(), pinned)
		return err
	}
}

// Start registers the cron entries and launches scheduler and server in the background.
func (w *Worker) Start() error {
	for _, t := range tasks.TriggerTypes {
		task, opts, err := tasks.NewTriggerTask(t, nil)
		if err != nil {
			return err
		}
		entryID, err := w.scheduler.Register(w.specs[t], task, opts...)
		if err != nil {
			return fmt.Errorf("register %s (%q): %w", t, w.specs[t], err)
		}
		w.logger.Info("[TriggerWorker] scheduled", zap.String("task", t), zap.String("spec", w.specs[t]), zap.String("entryId", entryID))
	}

	if err := w.scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	mux := NewServeMux(w.jobs)
	go func() {
		w.logger.Info("[TriggerWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.server.Run(mux)
			if err == nil {
				return
			}
			w.logger.Error("[TriggerWorker] failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Fatal("[TriggerWorker] max retry attempts reached, exiting")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return nil
}

// Dispatch enqueues a trigger run immediately and returns the task ID.
func (w *Worker) Dispatch(ctx context.Context, taskType string, date *time.Time) (string, error) {
	task, opts, err := tasks.NewTriggerTask(taskType, date)
	if err != nil {
		return "", err
	}
	info, err := w.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return info.ID, nil
}

// Shutdown stops scheduling and waits for a running trigger to finish.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
	if err := w.client.Close(); err != nil {
		w.logger.Warn("[TriggerWorker] closing client", zap.Error(err))
	}
}
