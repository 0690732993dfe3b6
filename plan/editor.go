package plan

import (
	"go.uber.org/zap"

	"github.com/cwbudde/algo-trackgeo/track"
)

// EditorOption configures an Editor.
type EditorOption func(*editorConfig)

type editorConfig struct {
	limits     Limits
	historyCap int
	logger     *zap.Logger
}

// WithMaxGradient sets the gradient warning threshold in mm/m.
func WithMaxGradient(g float64) EditorOption {
	return func(cfg *editorConfig) {
		if g > 0 {
			cfg.limits.MaxGradient = g
		}
	}
}

// WithMinCurveRadius sets the smallest accepted curve radius in metres.
func WithMinCurveRadius(r float64) EditorOption {
	return func(cfg *editorConfig) {
		if r > 0 {
			cfg.limits.MinCurveRadius = r
		}
	}
}

// WithSnapTolerance sets the distance tolerance for locating points.
func WithSnapTolerance(tol float64) EditorOption {
	return func(cfg *editorConfig) {
		if tol > 0 {
			cfg.limits.SnapTolerance = tol
		}
	}
}

// WithHistoryCap sets the number of snapshots kept for undo.
func WithHistoryCap(n int) EditorOption {
	return func(cfg *editorConfig) {
		if n > 0 {
			cfg.historyCap = n
		}
	}
}

// WithLogger logs edit warnings to l.
func WithLogger(l *zap.Logger) EditorOption {
	return func(cfg *editorConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// Editor is one interactive editing session over a plan line. It is not
// safe for concurrent use.
type Editor struct {
	limits  Limits
	history *History
	logger  *zap.Logger
}

// NewEditor starts a session whose first history entry is initial.
func NewEditor(initial track.PlanLine, opts ...EditorOption) *Editor {
	cfg := editorConfig{
		limits:     DefaultLimits(),
		historyCap: DefaultHistoryCap,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	h := NewHistory(cfg.historyCap)
	h.Push(initial)
	return &Editor{limits: cfg.limits, history: h, logger: cfg.logger}
}

// Limits returns the limits applied by the editor.
func (e *Editor) Limits() Limits { return e.limits }

// History exposes the snapshot history.
func (e *Editor) History() *History { return e.history }

// Current returns a copy of the current plan line.
func (e *Editor) Current() track.PlanLine {
	line, _ := e.history.Current()
	return line
}

func (e *Editor) commit(line track.PlanLine) track.PlanLine {
	e.history.Push(line)
	return line.Clone()
}

// SetStraightLine applies [StraightLine] to the current line.
func (e *Editor) SetStraightLine(start, end float64) (track.PlanLine, []Warning, error) {
	out, warnings, err := StraightLine(e.Current(), start, end, e.limits)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range warnings {
		e.logger.Warn("plan line edit exceeds limit",
			zap.String("code", w.Code),
			zap.Float64("start", start),
			zap.Float64("end", end),
			zap.Float64("value", w.Value),
			zap.Float64("limit", w.Limit),
		)
	}
	return e.commit(out), warnings, nil
}

// SetCircularCurve applies [CircularCurve] to the current line.
func (e *Editor) SetCircularCurve(start, end, radius float64, dir Direction) (track.PlanLine, error) {
	out, err := CircularCurve(e.Current(), start, end, radius, dir, e.limits)
	if err != nil {
		return nil, err
	}
	return e.commit(out), nil
}

// SmoothSection applies [SmoothSection] to the current line.
func (e *Editor) SmoothSection(start, end float64, window int) (track.PlanLine, error) {
	out, err := SmoothSection(e.Current(), start, end, window)
	if err != nil {
		return nil, err
	}
	return e.commit(out), nil
}

// EditPoint applies [EditPoint] to the current line.
func (e *Editor) EditPoint(distance, value float64) (track.PlanLine, error) {
	out, err := EditPoint(e.Current(), distance, value, e.limits)
	if err != nil {
		return nil, err
	}
	return e.commit(out), nil
}

// Replace records an externally computed line, e.g. an optimizer result.
func (e *Editor) Replace(line track.PlanLine) track.PlanLine {
	return e.commit(line)
}

// Undo steps back one edit.
func (e *Editor) Undo() (track.PlanLine, bool) { return e.history.Undo() }

// Redo re-applies the edit undone last.
func (e *Editor) Redo() (track.PlanLine, bool) { return e.history.Redo() }
