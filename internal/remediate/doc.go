// Package remediate decides what happens to each segment on each media track
// and lays the decisions out as an executable action timeline.
//
// The resolver applies a strict precedence order per track: allow flag,
// segment-level override, category modes with most-restrictive-wins, then the
// track's global default. The planner turns resolved segments into an
// ordered, gapless, non-overlapping partition of the video's full duration,
// merging near-adjacent same-kind ranges so the executor treats each action
// as one transform unit.
//
// Everything in this package is a pure in-memory transformation; the only
// side effect anywhere is the warning logged when a segment carries an
// override literal the resolver does not recognize.
package remediate
