package analytics

import (
	"math"
	"sort"
	"strconv"

	"jobpulse/internal/dataset"
	"jobpulse/internal/model"
)

// CompanyGrowth is one ranked entry of a growth query. PctChange is +Inf for
// companies that had no vacancies in the earlier bucket ("new").
type CompanyGrowth struct {
	Company   string  `json:"company"`
	Last      int64   `json:"last"`
	Prev      int64   `json:"prev"`
	PctChange float64 `json:"-"`
}

// PeriodGrowth ranks companies by percent change between the two most recent
// periods in the store. A store with fewer than two periods yields an empty
// result, distinguishing "no history yet" from an error.
func PeriodGrowth(topN int) ([]CompanyGrowth, error) {
	rows, err := model.LoadCompanyPivot()
	if err != nil {
		return nil, err
	}

	periods := sortedPeriods(rows)
	if len(periods) < 2 {
		return nil, nil
	}
	last, prev := periods[len(periods)-1], periods[len(periods)-2]

	type pair struct{ last, prev int64 }
	byCompany := make(map[string]*pair)
	for _, r := range rows {
		p, ok := byCompany[r.Company]
		if !ok {
			p = &pair{}
			byCompany[r.Company] = p
		}
		switch r.Period {
		case last:
			p.last += r.Vacancies
		case prev:
			p.prev += r.Vacancies
		}
	}

	items := make([]CompanyGrowth, 0, len(byCompany))
	for name, p := range byCompany {
		items = append(items, CompanyGrowth{
			Company:   name,
			Last:      p.last,
			Prev:      p.prev,
			PctChange: pctChange(p.prev, p.last),
		})
	}
	return rank(items, topN), nil
}

// YearOverYearGrowth applies the same ranking to totals of the two most
// recent calendar years, derived from each period's start date.
func YearOverYearGrowth(topN int) ([]CompanyGrowth, error) {
	rows, err := model.LoadCompanyPivot()
	if err != nil {
		return nil, err
	}

	yearSet := make(map[int]bool)
	for _, r := range rows {
		if y, ok := periodYear(r.Period); ok {
			yearSet[y] = true
		}
	}
	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)
	if len(years) < 2 {
		return nil, nil
	}
	lastYear, prevYear := years[len(years)-1], years[len(years)-2]

	type pair struct{ last, prev int64 }
	byCompany := make(map[string]*pair)
	for _, r := range rows {
		y, ok := periodYear(r.Period)
		if !ok {
			continue
		}
		p, okc := byCompany[r.Company]
		if !okc {
			p = &pair{}
			byCompany[r.Company] = p
		}
		switch y {
		case lastYear:
			p.last += r.Vacancies
		case prevYear:
			p.prev += r.Vacancies
		}
	}

	items := make([]CompanyGrowth, 0, len(byCompany))
	for name, p := range byCompany {
		items = append(items, CompanyGrowth{
			Company:   name,
			Last:      p.last,
			Prev:      p.prev,
			PctChange: pctChange(p.prev, p.last),
		})
	}
	return rank(items, topN), nil
}

// pctChange implements the growth policy: a company going from zero to
// anything is "new" (+Inf), zero to zero is flat.
func pctChange(prev, last int64) float64 {
	if prev == 0 {
		if last > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return float64(last-prev) / float64(prev) * 100
}

func rank(items []CompanyGrowth, topN int) []CompanyGrowth {
	sort.Slice(items, func(i, j int) bool {
		if items[i].PctChange != items[j].PctChange {
			return items[i].PctChange > items[j].PctChange
		}
		if items[i].Last != items[j].Last {
			return items[i].Last > items[j].Last
		}
		return items[i].Company < items[j].Company
	})
	if topN > 0 && len(items) > topN {
		items = items[:topN]
	}
	return items
}

func sortedPeriods(rows []model.CompanyPeriodRow) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, r := range rows {
		if !seen[r.Period] {
			seen[r.Period] = true
			labels = append(labels, r.Period)
		}
	}
	sort.Slice(labels, func(i, j int) bool {
		ti, erri := dataset.ParsePeriodStart(labels[i])
		tj, errj := dataset.ParsePeriodStart(labels[j])
		if erri != nil || errj != nil {
			return labels[i] < labels[j]
		}
		return ti.Before(tj)
	})
	return labels
}

func periodYear(label string) (int, bool) {
	t, err := dataset.ParsePeriodStart(label)
	if err != nil {
		return 0, false
	}
	return t.Year(), true
}

// FormatPct renders a pct change the way the dashboards did: "∞ (new)" for
// new entrants, otherwise one decimal place.
func FormatPct(v float64) string {
	if math.IsInf(v, 1) {
		return "∞ (new)"
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}
