package track

// Priority classifies how urgently a position needs correction.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// String returns the lowercase priority name.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	default:
		return "low"
	}
}

// MovementResult is the correction computed for one position.
// Movement is TargetValue - CurrentValue after clamping; positive lifts.
type MovementResult struct {
	Distance        float64
	CurrentValue    float64
	TargetValue     float64
	Movement        float64
	Priority        Priority
	Clamped         bool
	InFixedPoint    bool
	ExceedsStandard bool
}
