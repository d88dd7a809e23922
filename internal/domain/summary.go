package domain

import (
	"time"

	"github.com/montanaflynn/stats"
)

// DurationSummary describes a set of durations.
type DurationSummary struct {
	Count  int           `json:"count"`
	Mean   time.Duration `json:"mean"`
	Median time.Duration `json:"median"`
	P90    time.Duration `json:"p90"`
}

// SummarizeMergeTimes summarizes millisecond merge latencies.
// An empty input yields the zero summary.
func SummarizeMergeTimes(ms []int64) DurationSummary {
	if len(ms) == 0 {
		return DurationSummary{}
	}
	data := make(stats.Float64Data, 0, len(ms))
	for _, v := range ms {
		data = append(data, float64(v))
	}

	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	p90, _ := stats.Percentile(data, 90)

	return DurationSummary{
		Count:  len(ms),
		Mean:   millis(mean),
		Median: millis(median),
		P90:    millis(p90),
	}
}

func millis(v float64) time.Duration {
	return time.Duration(v * float64(time.Millisecond))
}
