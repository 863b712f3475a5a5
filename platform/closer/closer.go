package closer

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type namedFn struct {
	name string
	fn   func(context.Context) error
}

type closer struct {
	mu     sync.Mutex
	once   sync.Once
	fns    []namedFn
	logger Logger
}

var global = &closer{}

func SetLogger(l Logger) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.logger = l
}

func Add(fn func(context.Context) error) {
	AddNamed("unnamed", fn)
}

// AddNamed registers fn to run on CloseAll. Functions run in reverse
// registration order, so dependents close before what they depend on.
func AddNamed(name string, fn func(context.Context) error) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.fns = append(global.fns, namedFn{name: name, fn: fn})
}

func CloseAll(ctx context.Context) error {
	var err error
	global.once.Do(func() {
		err = global.closeAll(ctx)
	})
	return err
}

func (c *closer) closeAll(ctx context.Context) error {
	c.mu.Lock()
	fns := c.fns
	c.fns = nil
	log := c.logger
	c.mu.Unlock()

	var errs []error
	for i := len(fns) - 1; i >= 0; i-- {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		f := fns[i]
		if err := f.fn(ctx); err != nil {
			if log != nil {
				log.Error(ctx, "close failed", zap.String("name", f.name), zap.Error(err))
			}
			errs = append(errs, err)
			continue
		}
		if log != nil {
			log.Info(ctx, "closed", zap.String("name", f.name))
		}
	}

	return errors.Join(errs...)
}
