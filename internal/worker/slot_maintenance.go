package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mindwell/clinic-scheduler/internal/model"
	"github.com/mindwell/clinic-scheduler/internal/repository"
	"github.com/mindwell/clinic-scheduler/internal/service/schedule"
	"github.com/mindwell/clinic-scheduler/pkg/metrics"
)

// SlotMaintenanceWorker keeps the rolling slot window fresh: it
// regenerates slots for every active psychologist and prunes past
// unbooked inventory.
type SlotMaintenanceWorker struct {
	scheduleSvc      *schedule.Service
	psychologistRepo repository.PsychologistRepository
	metrics          *metrics.Metrics
	interval         time.Duration
}

func NewSlotMaintenanceWorker(
	scheduleSvc *schedule.Service,
	psychologistRepo repository.PsychologistRepository,
	m *metrics.Metrics,
	interval time.Duration,
) *SlotMaintenanceWorker {
	return &SlotMaintenanceWorker{
		scheduleSvc:      scheduleSvc,
		psychologistRepo: psychologistRepo,
		metrics:          m,
		interval:         interval,
	}
}

func (w *SlotMaintenanceWorker) Start(ctx context.Context) {
	w.run(ctx)

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

func (w *SlotMaintenanceWorker) run(ctx context.Context) {
	psychologists, err := w.psychologistRepo.List(ctx, model.PsychologistStatusActive)
	if err != nil {
		log.Error().Err(err).Msg("slot maintenance: failed to list psychologists")
		return
	}

	for _, psy := range psychologists {
		created, err := w.scheduleSvc.RegenerateSlots(ctx, psy.ID)
		if err != nil {
			log.Error().Err(err).Str("psychologist_id", psy.ID.String()).Msg("slot maintenance: regeneration failed")
			continue
		}
		if created > 0 {
			w.metrics.SlotsGenerated.Add(float64(created))
			log.Info().Str("psychologist_id", psy.ID.String()).Int("created", created).Msg("slots regenerated")
		}
	}

	pruned, err := w.scheduleSvc.PruneStaleSlots(ctx)
	if err != nil {
		log.Error().Err(err).Msg("slot maintenance: prune failed")
		return
	}
	if pruned > 0 {
		w.metrics.SlotsPruned.Add(float64(pruned))
		log.Info().Int64("pruned", pruned).Msg("stale slots pruned")
	}
}
