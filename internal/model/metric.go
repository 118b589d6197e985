package model

import "time"

// MetricUnit is the unit attached to an emitted data point.
type MetricUnit string

const (
	UnitCount   MetricUnit = "Count"
	UnitSeconds MetricUnit = "Seconds"
)

// MetricDataPoint is a single value appended to the external time-series
// sink. Aggregation over reporting windows happens at the sink, not here.
type MetricDataPoint struct {
	Namespace  string
	Name       string
	Value      float64
	Unit       MetricUnit
	Timestamp  time.Time
	Dimensions map[string]string
}
