package services

import (
	"ClassFeed/models"
	"sort"
	"strconv"
)

// maxChartBars bounds the dense chart; beyond it only populated bars are sent.
const maxChartBars = 1000

// Chart is the chart-ready shape of message volume over a class session.
// Labels[i] is the first segment covered by Series[i].
type Chart struct {
	Duration int     `json:"duration"`
	Labels   []int   `json:"labels"`
	Series   []int64 `json:"series"`
}

type Formatter interface {
	Format(counts []models.SegmentCount, duration string) (Chart, error)
}

// VisualisationFormatter groups per-segment counts into bars of `duration`
// segments each.
type VisualisationFormatter struct{}

func NewVisualisationFormatter() *VisualisationFormatter {
	return &VisualisationFormatter{}
}

func (f *VisualisationFormatter) Format(counts []models.SegmentCount, duration string) (Chart, error) {
	width, err := strconv.Atoi(duration)
	if err != nil || width <= 0 {
		return Chart{}, &ValidationError{Field: "duration", Reason: "must be a positive number of segments"}
	}

	chart := Chart{Duration: width, Labels: []int{}, Series: []int64{}}
	if len(counts) == 0 {
		return chart, nil
	}

	bars := make(map[int]int64)
	for _, c := range counts {
		bars[barStart(c.Segment, width)] += c.Count
	}

	starts := make([]int, 0, len(bars))
	for start := range bars {
		starts = append(starts, start)
	}
	sort.Ints(starts)

	first, last := starts[0], starts[len(starts)-1]
	// last >= first, so the unsigned difference is exact even when last-first
	// does not fit in an int.
	span := (uint64(last)-uint64(first))/uint64(width) + 1
	if span > maxChartBars {
		for _, start := range starts {
			chart.Labels = append(chart.Labels, start)
			chart.Series = append(chart.Series, bars[start])
		}
		return chart, nil
	}

	for i := 0; i < int(span); i++ {
		start := first + i*width
		chart.Labels = append(chart.Labels, start)
		chart.Series = append(chart.Series, bars[start])
	}
	return chart, nil
}

// barStart floors segment to a multiple of width, also for negative segments.
func barStart(segment, width int) int {
	q := segment / width
	if segment%width != 0 && segment < 0 {
		q--
	}
	return q * width
}
