package builder

import (
	"io"
	"strconv"
	"strings"
	"time"

	"jobpulse/internal/dataset"
	"jobpulse/internal/model"
	"jobpulse/pkg/log"
)

// Stats reports what one build pass inserted.
type Stats struct {
	Rows            int64 `json:"rows"`
	Companies       int   `json:"companies"`
	CompanyPeriods  int   `json:"companyPeriods"`
	IndustryPeriods int   `json:"industryPeriods"`
}

type aggKey struct {
	name   string
	period string
}

type aggSums struct {
	vacancies int64
	postings  int64
}

// Build streams the raw source once and (re)populates the aggregate store:
// companies, company×period and industry×period vacancy sums. Grouping is
// done with in-memory maps keyed by (entity, period); that key space is much
// smaller than the row count, so memory stays bounded. Inserts are additive:
// running Build twice without clearing duplicates aggregates, so callers
// wanting a clean rebuild must clear first.
func Build(path string, freq dataset.Freq) (*Stats, error) {
	logger := log.NewLogger()

	r, err := dataset.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	compAgg := make(map[aggKey]*aggSums)
	indAgg := make(map[aggKey]*aggSums)
	periodStart := make(map[string]time.Time)

	var total int64
	logger.Info("streaming source and aggregating")
	for {
		b, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		total += int64(b.Len())

		for i := 0; i < b.Len(); i++ {
			rawDate, ok := b.Field(i, dataset.ColPostingDate)
			if !ok {
				continue
			}
			t, ok := dataset.ParseDate(rawDate)
			if !ok {
				continue
			}
			p := dataset.PeriodOf(t, freq)
			label := p.Label()
			if _, seen := periodStart[label]; !seen {
				periodStart[label] = p.Start
			}

			company, _ := b.Field(i, dataset.ColCompany)
			if strings.TrimSpace(company) == "" {
				company = "UNKNOWN"
			}

			// Absent count means one vacancy; a value that fails to parse
			// contributes none.
			var vacancies int64
			rawVac, _ := b.Field(i, dataset.ColVacancies)
			if s := strings.TrimSpace(rawVac); s == "" {
				vacancies = 1
			} else if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
				vacancies = parsed
			}

			rawCats, _ := b.Field(i, dataset.ColCategories)
			industry := dataset.PrimaryCategory(rawCats)
			if industry == "" {
				industry = "Unknown"
			}

			bump(compAgg, aggKey{company, label}, vacancies)
			bump(indAgg, aggKey{industry, label}, vacancies)
		}
	}
	logger.Infof("aggregated %d rows into %d company-periods, %d industry-periods",
		total, len(compAgg), len(indAgg))

	companyIds := make(map[string]int)
	for k := range compAgg {
		if _, ok := companyIds[k.name]; ok {
			continue
		}
		id, err := model.EnsureCompany(k.name)
		if err != nil {
			return nil, err
		}
		companyIds[k.name] = id
	}

	compRows := make([]model.CompanyPeriodVacancy, 0, len(compAgg))
	for k, sums := range compAgg {
		p := dataset.Period{Freq: freq, Start: periodStart[k.period]}
		year, month, week := p.YearMonthWeek()
		compRows = append(compRows, model.CompanyPeriodVacancy{
			CompanyId: companyIds[k.name],
			Period:    k.period,
			Year:      year,
			Month:     month,
			Week:      week,
			Vacancies: sums.vacancies,
			Postings:  sums.postings,
		})
	}
	if err := model.InsertCompanyPeriodVacancies(compRows); err != nil {
		return nil, err
	}

	indRows := make([]model.IndustryPeriodVacancy, 0, len(indAgg))
	for k, sums := range indAgg {
		indRows = append(indRows, model.IndustryPeriodVacancy{
			Industry:  k.name,
			Period:    k.period,
			Vacancies: sums.vacancies,
			Postings:  sums.postings,
		})
	}
	if err := model.InsertIndustryPeriodVacancies(indRows); err != nil {
		return nil, err
	}

	return &Stats{
		Rows:            total,
		Companies:       len(companyIds),
		CompanyPeriods:  len(compRows),
		IndustryPeriods: len(indRows),
	}, nil
}

func bump(m map[aggKey]*aggSums, k aggKey, vacancies int64) {
	s, ok := m[k]
	if !ok {
		s = &aggSums{}
		m[k] = s
	}
	s.vacancies += vacancies
	s.postings++
}
