package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"roomcal/internal/metrics"
	"roomcal/internal/models"

	"github.com/rs/zerolog"
)

// MonthWriter produces the workbook for the month containing ref.
type MonthWriter interface {
	WriteMonth(ctx context.Context, ref models.Day) (string, error)
}

type exportTask struct {
	ref models.Day
}

// ExportWorker regenerates month workbooks in the background after
// reservation mutations. Tasks are deduplicated per month: a month already
// queued is not queued again until its export ran.
type ExportWorker struct {
	writer MonthWriter
	logger *zerolog.Logger
	retry  RetryPolicy

	queue  chan exportTask
	mu     sync.Mutex
	queued map[string]bool // "2006-01" -> pending

	wg sync.WaitGroup
}

func NewExportWorker(writer MonthWriter, logger *zerolog.Logger) *ExportWorker {
	return &ExportWorker{
		writer: writer,
		logger: logger,
		retry: RetryPolicy{
			MaxRetries:   3,
			InitialDelay: time.Second,
			MaxDelay:     30 * time.Second,
		},
		queue:  make(chan exportTask, models.ExportQueueSize),
		queued: make(map[string]bool),
	}
}

func monthKey(ref models.Day) string {
	return fmt.Sprintf("%04d-%02d", ref.Year(), int(ref.Month()))
}

// EnqueueExport schedules a workbook refresh for the month containing ref.
// Returns an error when the queue is full rather than blocking the caller.
func (w *ExportWorker) EnqueueExport(ctx context.Context, ref models.Day) error {
	key := monthKey(ref)

	w.mu.Lock()
	if w.queued[key] {
		w.mu.Unlock()
		return nil
	}
	w.queued[key] = true
	w.mu.Unlock()

	select {
	case w.queue <- exportTask{ref: ref}:
		return nil
	default:
		w.mu.Lock()
		delete(w.queued, key)
		w.mu.Unlock()
		return fmt.Errorf("export queue is full")
	}
}

// Start launches the worker loop. It drains until ctx is cancelled.
func (w *ExportWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case task := <-w.queue:
				w.process(ctx, task)
			}
		}
	}()
}

// Wait blocks until the worker loop has exited.
func (w *ExportWorker) Wait() {
	w.wg.Wait()
}

func (w *ExportWorker) process(ctx context.Context, task exportTask) {
	key := monthKey(task.ref)
	defer func() {
		w.mu.Lock()
		delete(w.queued, key)
		w.mu.Unlock()
	}()

	for attempt := 1; ; attempt++ {
		path, err := w.writer.WriteMonth(ctx, task.ref)
		if err == nil {
			w.logger.Debug().Str("month", key).Str("path", path).Msg("export refreshed")
			metrics.IncExport("ok")
			return
		}

		if attempt > w.retry.MaxRetries {
			w.logger.Error().Err(err).Str("month", key).Msg("export failed, giving up")
			metrics.IncExport("error")
			return
		}

		w.logger.Warn().Err(err).Str("month", key).Int("attempt", attempt).Msg("export failed, retrying")
		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retry.NextDelay(attempt)):
		}
	}
}
