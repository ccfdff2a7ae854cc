package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/severnmarket/go-backend/internal/cfg"
	"github.com/severnmarket/go-backend/internal/usecase"
	"github.com/severnmarket/go-backend/pkg/jitter"
	"github.com/severnmarket/go-backend/pkg/logger"
)

// Sweeper запускает ежедневную уборку в заданный час UTC. К интервалу
// добавляется джиттер, чтобы несколько инстансов не стартовали одновременно.
// Сам проход идемпотентен, поэтому дубль запуска безвреден.
type Sweeper struct {
	uc     usecase.SweepUC
	cfg    *cfg.SweepCfg
	logger logger.Logger
	stop   chan struct{}
	wg     sync.WaitGroup
}

func NewSweeper(uc usecase.SweepUC, cfg *cfg.SweepCfg, logger logger.Logger) *Sweeper {
	return &Sweeper{
		uc:     uc,
		cfg:    cfg,
		logger: logger,
		stop:   make(chan struct{}),
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

func (s *Sweeper) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Sweeper) run(ctx context.Context) {
	for {
		wait := jitter.Duration(jitter.UntilNextHour(time.Now(), s.cfg.Hour), 0.05)
		s.logger.Infof("next sweep in %s", wait)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-s.stop:
			timer.Stop()
			return
		case <-timer.C:
		}

		s.runOnce(ctx)
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	report, err := s.uc.RunOnce(runCtx)
	if err != nil {
		s.logger.Warnf("sweep run failed: %v", err)
		return
	}

	s.logger.Infof("sweep done: %d promotions deactivated, %d tokens purged",
		len(report.PromotionsDeactivated), report.TokensPurged)
}
