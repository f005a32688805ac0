package audit

import (
	"context"

	"go.uber.org/multierr"

	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

var _ repository.AuditSink = FanOut(nil)

// FanOut replica cada entrada en todos los sinks y combina sus errores.
// Un sink que falla no impide que los demás reciban la entrada.
type FanOut []repository.AuditSink

// Record implementa repository.AuditSink.
func (f FanOut) Record(ctx context.Context, entry entity.AuditEntry) error {
	var err error
	for _, s := range f {
		if s == nil {
			continue
		}
		err = multierr.Append(err, s.Record(ctx, entry))
	}
	return err
}

// NewSink devuelve nil si no hay sinks, el único sink si hay uno, o un FanOut.
func NewSink(sinks ...repository.AuditSink) repository.AuditSink {
	var live FanOut
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return live
}
