// Package scheduler ejecuta jobs diferidos de un solo disparo en goroutines
// propias, desacoplados de la latencia del handler que los programa.
package scheduler

import (
	"context"
	"time"

	"github.com/chatokay/chatokay-api/internal/application/identity"
	"github.com/chatokay/chatokay-api/pkg/logger"
)

var _ identity.Scheduler = (*OneShot)(nil)

// OneShot scheduler en proceso. Los jobs pendientes se cancelan con el
// contexto raíz en el shutdown; un job perdido por reinicio lo repone el
// retry del webhook (el job es idempotente).
type OneShot struct {
	ctx context.Context
	log *logger.Logger
}

// New construye el scheduler atado al contexto de vida de la aplicación.
func New(ctx context.Context, log *logger.Logger) *OneShot {
	return &OneShot{ctx: ctx, log: log}
}

// Schedule programa fn para dentro de delay. Retorna de inmediato.
func (s *OneShot) Schedule(name string, delay time.Duration, fn func(ctx context.Context) error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error().Interface("panic", r).Str("job", name).Msg("job diferido entró en pánico")
			}
		}()

		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-s.ctx.Done():
			s.log.Info().Str("job", name).Msg("job diferido cancelado por shutdown")
			return
		case <-timer.C:
		}

		if err := fn(s.ctx); err != nil {
			s.log.Error().Err(err).Str("job", name).Msg("job diferido falló")
			return
		}
		s.log.Info().Str("job", name).Msg("job diferido completado")
	}()
}
