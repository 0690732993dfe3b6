// Package track defines the data model shared by the restoration and
// plan-line engine: measured irregularity series, plan lines, movement
// constraints and per-position movement results.
//
// Distances are in metres and values in millimetres throughout. Series and
// plan lines are ordered by strictly increasing distance.
//
// Errors returned by the engine packages wrap one of the sentinels in this
// package so callers can classify failures with [errors.Is]:
//
//	if errors.Is(err, track.ErrInvalidRange) {
//	    // reject the request parameters
//	}
package track
