// Package optimize biases a plan line towards upward-only correction.
//
// Lifting the track (positive movement) disturbs the ballast less than
// lowering it, so the optimizer repeatedly raises the plan line where it
// lies below the restored waveform until a target fraction of positions
// needs lifting. Each iteration:
//
//  1. computes movement = plan − restored at every plan point,
//  2. raises the plan by StepFactor times the moving average of the
//     downward deficit (plus a small Margin), keeping the line smooth,
//  3. clamps every movement to [−MaxDownward, +MaxUpward], then clamps
//     positions inside fixed-point ranges to ±MaxMovement.
//
// Because the plan is only ever raised and clamping never turns a lift into
// a lowering, the upward ratio is non-decreasing across iterations. The
// optimizer stops when the ratio reaches TargetUpwardRatio, when it stays
// within Tolerance for StablePatience iterations, or at IterationLimit. It
// never fails for lack of convergence.
package optimize
