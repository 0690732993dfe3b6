// Package plan derives and edits the plan line: the smooth target profile
// the track is corrected to.
//
// [GenerateInitial] builds a baseline from a restored waveform with a
// centred moving average (default 800 samples, about 200 m at 0.25 m
// spacing). [GenerateZeroCrossing] anchors the line at the zero crossings of
// the waveform instead.
//
// An [Editor] applies interactive edits (straight lines, circular curves,
// local smoothing, single-point edits) and records every result in a
// bounded [History] so edits can be undone and redone:
//
//	ed := plan.NewEditor(initial, plan.WithMinCurveRadius(600))
//	if _, _, err := ed.SetCircularCurve(100, 300, 2000, plan.DirectionUp); err != nil {
//	    return err
//	}
//	line, _ := ed.Undo()
package plan
