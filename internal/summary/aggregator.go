package summary

import (
	"io"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"jobpulse/internal/dataset"
)

// topLimit caps the ranked company/category lists in the output.
const topLimit = 50

// Options configure one streaming pass.
type Options struct {
	// SampleSize bounds the row sample. Defaults to 20000.
	SampleSize int
	// Freq selects week or month buckets for the trend series.
	Freq dataset.Freq
	// Seed seeds the sampling RNG; 0 means time-based. Fix it in tests.
	Seed int64
}

// Summarize visits the source at path exactly once, in fixed-size batches,
// and folds it into a Summary. Peak memory is bounded by the distinct-key
// counters and the sample, never by the row count. Per-cell parse failures
// degrade into "unspecified"/empty buckets; only a wholly unreadable source
// fails the pass.
func Summarize(path string, opts Options) (*Summary, error) {
	if opts.SampleSize <= 0 {
		opts.SampleSize = 20000
	}
	if opts.Freq == "" {
		opts.Freq = dataset.FreqWeek
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r, err := dataset.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	acc := newAccumulator(opts, rand.New(rand.NewSource(seed)))
	for {
		b, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		acc.addBatch(b)
	}
	return acc.finalize(), nil
}

// counter tracks counts plus first-seen order so ranked output has a stable
// tie-break.
type counter struct {
	counts map[string]int64
	order  map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int64), order: make(map[string]int)}
}

func (c *counter) inc(key string, by int64) {
	if _, seen := c.counts[key]; !seen {
		c.order[key] = len(c.order)
	}
	c.counts[key] += by
}

func (c *counter) top(n int) []NameCount {
	entries := make([]NameCount, 0, len(c.counts))
	for k, v := range c.counts {
		entries = append(entries, NameCount{Name: k, Count: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return c.order[entries[i].Name] < c.order[entries[j].Name]
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

type accumulator struct {
	freq dataset.Freq

	totalRows  int64
	statuses   map[string]int64
	companies  *counter
	categories *counter
	experience map[string]int64

	sumSalary      float64
	countSalary    int64
	sampleSalaries []float64

	postings  map[time.Time]int64
	vacancies map[string]int64

	sample *sampler
}

func newAccumulator(opts Options, rng *rand.Rand) *accumulator {
	return &accumulator{
		freq:           opts.Freq,
		statuses:       make(map[string]int64),
		companies:      newCounter(),
		categories:     newCounter(),
		experience:     make(map[string]int64),
		sampleSalaries: make([]float64, 0, 1024),
		postings:       make(map[time.Time]int64),
		vacancies:      make(map[string]int64),
		sample:         newSampler(opts.SampleSize, rng),
	}
}

func (a *accumulator) addBatch(b *dataset.Batch) {
	n := b.Len()
	a.totalRows += int64(n)

	hasStatus := b.HasColumn(dataset.ColStatus)
	hasCompany := b.HasColumn(dataset.ColCompany)
	hasCategories := b.HasColumn(dataset.ColCategories)
	hasExperience := b.HasColumn(dataset.ColExperience)
	hasSalary := b.HasColumn(dataset.ColSalary)
	hasDate := b.HasColumn(dataset.ColPostingDate)
	hasVacancies := b.HasColumn(dataset.ColVacancies)

	for i := 0; i < n; i++ {
		if hasStatus {
			v, _ := b.Field(i, dataset.ColStatus)
			a.statuses[v]++
		}
		if hasCompany {
			v, _ := b.Field(i, dataset.ColCompany)
			a.companies.inc(v, 1)
		}
		if hasCategories {
			v, _ := b.Field(i, dataset.ColCategories)
			if cats := dataset.ParseCategories(v); len(cats) > 0 {
				a.categories.inc(cats[0], 1)
			}
		}
		if hasExperience {
			v, _ := b.Field(i, dataset.ColExperience)
			if years, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				a.experience[strconv.Itoa(years)]++
			} else {
				a.experience["unspecified"]++
			}
		}
		if hasSalary {
			v, _ := b.Field(i, dataset.ColSalary)
			if fv, ok := dataset.NormalizeSalary(v); ok {
				// Zero and negative values count toward the mean but are
				// excluded from the sampled distribution.
				a.countSalary++
				a.sumSalary += fv
				if fv > 0 {
					a.sampleSalaries = append(a.sampleSalaries, fv)
				}
			}
		}
		if hasDate {
			v, _ := b.Field(i, dataset.ColPostingDate)
			if t, ok := dataset.ParseDate(v); ok {
				p := dataset.PeriodOf(t, a.freq)
				a.postings[p.Start]++
				if hasVacancies {
					raw, _ := b.Field(i, dataset.ColVacancies)
					count := int64(1)
					if s := strings.TrimSpace(raw); s != "" {
						if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
							count = parsed
						}
					}
					a.vacancies[p.StartKey()] += count
				}
			}
		}
	}

	a.sample.Add(b)
}

func (a *accumulator) finalize() *Summary {
	avg := 0.0
	if a.countSalary > 0 {
		avg = a.sumSalary / float64(a.countSalary)
	}

	postings := make([]TimeCount, 0, len(a.postings))
	for start, count := range a.postings {
		postings = append(postings, TimeCount{PeriodStart: start, Count: count})
	}
	sort.Slice(postings, func(i, j int) bool {
		return postings[i].PeriodStart.Before(postings[j].PeriodStart)
	})

	vacancies := make([]PeriodVacancies, 0, len(a.vacancies))
	for period, sum := range a.vacancies {
		vacancies = append(vacancies, PeriodVacancies{Period: period, Vacancies: sum})
	}
	sort.Slice(vacancies, func(i, j int) bool {
		return vacancies[i].Period < vacancies[j].Period
	})

	rows := a.sample.Rows()
	if rows == nil {
		rows = []map[string]string{}
	}

	return &Summary{
		TotalRows:         a.totalRows,
		StatusCounts:      a.statuses,
		TopCompanies:      a.companies.top(topLimit),
		TopCategories:     a.categories.top(topLimit),
		ExperienceCounts:  a.experience,
		AverageSalary:     avg,
		SampleRows:        rows,
		SampleSalaries:    a.sampleSalaries,
		PostingsOverTime:  postings,
		VacanciesOverTime: vacancies,
		UniqueCompanies:   len(a.companies.counts),
	}
}
