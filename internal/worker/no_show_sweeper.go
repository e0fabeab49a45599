package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mindwell/clinic-scheduler/internal/service/booking"
	"github.com/mindwell/clinic-scheduler/pkg/metrics"
)

// NoShowSweeper marks appointments whose window passed without completion
// or cancellation.
type NoShowSweeper struct {
	bookingSvc *booking.Service
	metrics    *metrics.Metrics
	interval   time.Duration
	batchSize  int
}

func NewNoShowSweeper(bookingSvc *booking.Service, m *metrics.Metrics, interval time.Duration, batchSize int) *NoShowSweeper {
	return &NoShowSweeper{
		bookingSvc: bookingSvc,
		metrics:    m,
		interval:   interval,
		batchSize:  batchSize,
	}
}

func (w *NoShowSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			swept, err := w.bookingSvc.SweepNoShows(ctx, w.batchSize)
			if err != nil {
				log.Error().Err(err).Int("swept", swept).Msg("no-show sweep failed")
			}
			if swept > 0 {
				w.metrics.NoShowsSwept.Add(float64(swept))
				log.Info().Int("swept", swept).Msg("no-show sweep complete")
			}
		}
	}
}
