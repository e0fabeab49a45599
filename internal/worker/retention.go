package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mindwell/clinic-scheduler/internal/repository"
)

// RetentionWorker enforces the record-keeping window: audit entries past
// retention and processed outbox rows are deleted on a daily cadence.
type RetentionWorker struct {
	auditRepo     repository.AuditRepository
	outboxRepo    repository.OutboxRepository
	retentionDays int
	interval      time.Duration
}

func NewRetentionWorker(auditRepo repository.AuditRepository, outboxRepo repository.OutboxRepository, retentionDays int, interval time.Duration) *RetentionWorker {
	return &RetentionWorker{
		auditRepo:     auditRepo,
		outboxRepo:    outboxRepo,
		retentionDays: retentionDays,
		interval:      interval,
	}
}

func (w *RetentionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

func (w *RetentionWorker) run(ctx context.Context) {
	auditCutoff := time.Now().AddDate(0, 0, -w.retentionDays)
	if deleted, err := w.auditRepo.DeleteBefore(ctx, auditCutoff); err != nil {
		log.Error().Err(err).Msg("audit retention cleanup failed")
	} else if deleted > 0 {
		log.Info().Int64("deleted", deleted).Time("cutoff", auditCutoff).Msg("audit logs cleaned up")
	}

	// Processed outbox rows only need to survive long enough for debugging.
	outboxCutoff := time.Now().AddDate(0, 0, -7)
	if deleted, err := w.outboxRepo.DeleteProcessedBefore(ctx, outboxCutoff); err != nil {
		log.Error().Err(err).Msg("outbox cleanup failed")
	} else if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("processed outbox events cleaned up")
	}
}
