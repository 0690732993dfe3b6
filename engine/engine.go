package engine

import (
	"go.uber.org/zap"

	"github.com/cwbudde/algo-trackgeo/cache"
	"github.com/cwbudde/algo-trackgeo/plan"
	"github.com/cwbudde/algo-trackgeo/track"
)

// Option configures an Engine.
type Option func(*Engine)

// WithCache memoizes results in c. Passing nil disables caching.
func WithCache(c *cache.Cache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithLogger sets the logger. nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine runs the track-geometry operations. It holds no per-request
// state and is safe for concurrent use when its cache is.
type Engine struct {
	cache  *cache.Cache
	logger *zap.Logger
}

// New creates an Engine. Without WithCache nothing is memoized.
func New(opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Cache returns the engine's cache, or nil.
func (e *Engine) Cache() *cache.Cache { return e.cache }

// Logger returns the engine's logger.
func (e *Engine) Logger() *zap.Logger { return e.logger }

// NewEditor opens an interactive editing session on line that logs
// through the engine's logger.
func (e *Engine) NewEditor(line track.PlanLine, cfg EditorConfig) *plan.Editor {
	return plan.NewEditor(line,
		plan.WithMaxGradient(cfg.MaxGradient),
		plan.WithMinCurveRadius(cfg.MinCurveRadius),
		plan.WithSnapTolerance(cfg.SnapTolerance),
		plan.WithHistoryCap(cfg.HistoryCap),
		plan.WithLogger(e.logger.Named("editor")),
	)
}

func (e *Engine) lookup(op, key string) (any, bool) {
	if e.cache == nil {
		return nil, false
	}
	v, ok := e.cache.Get(key)
	if ok {
		e.logger.Debug("cache hit", zap.String("op", op), zap.String("key", shortKey(key)))
	} else {
		e.logger.Debug("cache miss", zap.String("op", op), zap.String("key", shortKey(key)))
	}
	return v, ok
}

func (e *Engine) store(op, key string, v any) {
	if e.cache == nil {
		return
	}
	if !e.cache.Set(key, v) {
		e.logger.Debug("cache rejected result", zap.String("op", op), zap.String("key", shortKey(key)))
	}
}

func shortKey(key string) string {
	const n = 24
	if len(key) <= n {
		return key
	}
	return key[:n]
}
