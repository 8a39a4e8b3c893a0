package analytics

import (
	"sort"

	"jobpulse/internal/dataset"
	"jobpulse/internal/model"
)

// capPercentile caps the heatmap color domain so a handful of huge hirers
// does not wash out everything else.
const capPercentile = 95

// Heatmap is the industry×period pivot consumed by the presentation layer.
// Values[i][j] is the vacancy sum for Industries[i] during Periods[j]; Cap is
// the percentile-capped upper bound for the color scale.
type Heatmap struct {
	Industries []string  `json:"industries"`
	Periods    []string  `json:"periods"`
	Values     [][]int64 `json:"values"`
	Cap        float64   `json:"cap"`
}

// IndustryPivot builds the heatmap for the topN industries by total
// vacancies. An empty store yields an empty (not nil-error) pivot.
func IndustryPivot(topN int) (*Heatmap, error) {
	industries, err := model.TopIndustriesByVacancies(topN)
	if err != nil {
		return nil, err
	}
	h := &Heatmap{Industries: []string{}, Periods: []string{}, Values: [][]int64{}}
	if len(industries) == 0 {
		return h, nil
	}

	rows, err := model.LoadIndustryPivot()
	if err != nil {
		return nil, err
	}

	keep := make(map[string]int, len(industries))
	for i, name := range industries {
		keep[name] = i
	}

	periodSet := make(map[string]bool)
	for _, r := range rows {
		if _, ok := keep[r.Industry]; ok {
			periodSet[r.Period] = true
		}
	}
	periods := make([]string, 0, len(periodSet))
	for p := range periodSet {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool {
		ti, erri := dataset.ParsePeriodStart(periods[i])
		tj, errj := dataset.ParsePeriodStart(periods[j])
		if erri != nil || errj != nil {
			return periods[i] < periods[j]
		}
		return ti.Before(tj)
	})
	periodIdx := make(map[string]int, len(periods))
	for i, p := range periods {
		periodIdx[p] = i
	}

	values := make([][]int64, len(industries))
	for i := range values {
		values[i] = make([]int64, len(periods))
	}
	var flat []float64
	for _, r := range rows {
		i, ok := keep[r.Industry]
		if !ok {
			continue
		}
		values[i][periodIdx[r.Period]] += r.Vacancies
	}
	for i := range values {
		for j := range values[i] {
			flat = append(flat, float64(values[i][j]))
		}
	}

	h.Industries = industries
	h.Periods = periods
	h.Values = values
	h.Cap = percentile(flat, capPercentile)
	return h, nil
}

// percentile is nearest-rank on a copy of vals; zero when empty.
func percentile(vals []float64, p float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	idx := int(p/100*float64(len(sorted))+0.5) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
