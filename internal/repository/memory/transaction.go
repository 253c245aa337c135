package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
)

type undoKey struct{}

// undoLog collects compensating steps for writes made inside a transaction.
type undoLog struct {
	mu    sync.Mutex
	steps []func()
}

// recordUndo registers step when ctx carries a transaction; outside one it is a no-op.
func recordUndo(ctx context.Context, step func()) {
	if log, ok := ctx.Value(undoKey{}).(*undoLog); ok {
		log.mu.Lock()
		log.steps = append(log.steps, step)
		log.mu.Unlock()
	}
}

type transactor struct{}

func NewTransactor() employee.Transactor {
	return transactor{}
}

// WithinTransaction replays the undo steps in reverse when fn fails. Nested
// calls join the outer transaction.
func (transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(undoKey{}).(*undoLog); ok {
		return fn(ctx)
	}

	log := &undoLog{}
	if err := fn(context.WithValue(ctx, undoKey{}, log)); err != nil {
		log.mu.Lock()
		steps := log.steps
		log.mu.Unlock()
		for i := len(steps) - 1; i >= 0; i-- {
			steps[i]()
		}
		return err
	}
	return nil
}
