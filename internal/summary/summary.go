package summary

import "time"

// NameCount is one entry of a ranked counter.
type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// TimeCount is one point of the postings trend, keyed by period start.
type TimeCount struct {
	PeriodStart time.Time `json:"periodStart"`
	Count       int64     `json:"count"`
}

// PeriodVacancies is one point of the vacancies trend, keyed by the
// zero-padded period start date.
type PeriodVacancies struct {
	Period    string `json:"period"`
	Vacancies int64  `json:"vacancies"`
}

// Summary is the aggregate result of one full streaming pass. Every field is
// populated (empty rather than absent) even when its source column is
// missing, so partial results always keep the same shape.
type Summary struct {
	TotalRows         int64               `json:"totalRows"`
	StatusCounts      map[string]int64    `json:"statusCounts"`
	TopCompanies      []NameCount         `json:"topCompanies"`
	TopCategories     []NameCount         `json:"topCategories"`
	ExperienceCounts  map[string]int64    `json:"experienceCounts"`
	AverageSalary     float64             `json:"averageSalary"`
	SampleRows        []map[string]string `json:"sampleRows"`
	SampleSalaries    []float64           `json:"sampleSalaries"`
	PostingsOverTime  []TimeCount         `json:"postingsOverTime"`
	VacanciesOverTime []PeriodVacancies   `json:"vacanciesOverTime"`
	UniqueCompanies   int                 `json:"uniqueCompanies"`
}
