// Package segment defines the detection-event and segment model and the
// gap-threshold merge that turns raw detector output into canonical time
// ranges. It also owns the JSON segment-file format shared with external
// detection and review tooling, including eager validation of incoming
// records.
package segment
