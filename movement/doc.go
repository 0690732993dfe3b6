// Package movement computes the per-position lift/lower amounts that take
// the track from its restored waveform to the plan line.
//
// For every waveform position the plan line is interpolated at that
// distance and movement = plan − current is clamped: inside a fixed-point
// range to ±MaxMovement, elsewhere to ±MaximumLimit. With UpwardPriority,
// lowering outside fixed points is held to StandardLimit instead.
//
// Each result is classified by a [PriorityPolicy]. A movement that had to
// be clamped is always high priority, because the requested correction
// could not be delivered in full.
package movement
