// Package scheduler ejecuta tareas periódicas con expresiones cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/pkg/logger"
)

// CollectionsJob corrida de cartera de todas las empresas.
type CollectionsJob interface {
	RunAll(ctx context.Context) []dto.OverdueRunResult
}

// Scheduler agenda la corrida diaria de cartera.
type Scheduler struct {
	cron    *cron.Cron
	job     CollectionsJob
	timeout time.Duration
	log     *logger.Logger
}

// New construye el scheduler (parser estándar de cinco campos).
func New(job CollectionsJob, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:    cron.New(),
		job:     job,
		timeout: 2 * time.Minute,
		log:     log.Named("scheduler"),
	}
}

// Start agenda la corrida con spec y arranca el cron.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runCollections); err != nil {
		return fmt.Errorf("scheduler: expresión %q: %w", spec, err)
	}
	s.log.Info().Str("spec", spec).Msg("corrida de cartera agendada")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine la corrida en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) runCollections() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	results := s.job.RunAll(ctx)
	marked, reminders := 0, 0
	for _, r := range results {
		marked += r.MarkedOverdue
		reminders += r.RemindersCreated
	}
	s.log.Info().
		Int("companies", len(results)).
		Int("marked_overdue", marked).
		Int("reminders", reminders).
		Msg("corrida de cartera completada")
}
