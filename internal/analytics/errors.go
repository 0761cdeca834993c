package analytics

import (
	"errors"
	"fmt"
)

// ErrInsufficientData indicates a series too short for the requested statistic
var ErrInsufficientData = errors.New("insufficient data")

// ErrAlignmentEmpty indicates that no overlapping dates exist across series
var ErrAlignmentEmpty = errors.New("no overlapping dates across series")

// UndefinedMetricError indicates a metric whose denominator is zero or
// otherwise degenerate. The metric is omitted from the result set instead
// of carrying NaN or infinity downstream.
type UndefinedMetricError struct {
	Metric string
	Reason string
}

func (e *UndefinedMetricError) Error() string {
	return fmt.Sprintf("metric %s undefined: %s", e.Metric, e.Reason)
}

// UndefinedMetrics extracts the names of all undefined metrics from an
// error returned by a metric function. Returns nil if err carries none.
func UndefinedMetrics(err error) []string {
	if err == nil {
		return nil
	}
	var names []string
	type unwrapper interface {
		Unwrap() []error
	}
	if joined, ok := err.(unwrapper); ok {
		for _, e := range joined.Unwrap() {
			names = append(names, UndefinedMetrics(e)...)
		}
		return names
	}
	var um *UndefinedMetricError
	if errors.As(err, &um) {
		names = append(names, um.Metric)
	}
	return names
}
