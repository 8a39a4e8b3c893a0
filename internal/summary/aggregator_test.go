package summary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"jobpulse/internal/dataset"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const fullHeader = "status_jobStatus,postedCompany_name,categories,minimumYearsExperience,average_salary,metadata_newPostingDate,numberOfVacancies\n"

func TestSummarizeSingleRow(t *testing.T) {
	path := writeCSV(t, fullHeader+
		`Open,Acme,"[{""category"":""IT""}]",3,5000,2024-01-03,2`+"\n")

	sum, err := Summarize(path, Options{SampleSize: 10, Freq: dataset.FreqWeek, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}

	if sum.TotalRows != 1 {
		t.Fatalf("total rows = %d", sum.TotalRows)
	}
	if sum.StatusCounts["Open"] != 1 {
		t.Fatalf("status counts = %v", sum.StatusCounts)
	}
	if sum.AverageSalary != 5000 {
		t.Fatalf("average salary = %v", sum.AverageSalary)
	}
	if len(sum.SampleSalaries) != 1 || sum.SampleSalaries[0] != 5000 {
		t.Fatalf("sample salaries = %v", sum.SampleSalaries)
	}
	if len(sum.PostingsOverTime) != 1 {
		t.Fatalf("postings = %v", sum.PostingsOverTime)
	}
	wantStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !sum.PostingsOverTime[0].PeriodStart.Equal(wantStart) {
		t.Fatalf("period start = %v", sum.PostingsOverTime[0].PeriodStart)
	}
	if len(sum.VacanciesOverTime) != 1 || sum.VacanciesOverTime[0].Vacancies != 2 {
		t.Fatalf("vacancies = %v", sum.VacanciesOverTime)
	}
	if sum.VacanciesOverTime[0].Period != "2024-01-01" {
		t.Fatalf("vacancies period = %q", sum.VacanciesOverTime[0].Period)
	}
	if sum.UniqueCompanies != 1 {
		t.Fatalf("unique companies = %d", sum.UniqueCompanies)
	}
	if sum.ExperienceCounts["3"] != 1 {
		t.Fatalf("experience counts = %v", sum.ExperienceCounts)
	}
	if len(sum.TopCategories) != 1 || sum.TopCategories[0].Name != "IT" {
		t.Fatalf("top categories = %v", sum.TopCategories)
	}
	if len(sum.SampleRows) != 1 {
		t.Fatalf("sample rows = %d", len(sum.SampleRows))
	}
}

func TestSummarizeTotalsAcrossBatches(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("postedCompany_name\n")
	total := dataset.BatchSize + 17
	for i := 0; i < total; i++ {
		fmt.Fprintf(&sb, "company-%d\n", i%97)
	}
	path := writeCSV(t, sb.String())

	sum, err := Summarize(path, Options{SampleSize: 10, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if sum.TotalRows != int64(total) {
		t.Fatalf("total rows = %d, want %d", sum.TotalRows, total)
	}
	if sum.UniqueCompanies != 97 {
		t.Fatalf("unique companies = %d", sum.UniqueCompanies)
	}
	// Over capacity: sample pins at exactly SampleSize.
	if len(sum.SampleRows) != 10 {
		t.Fatalf("sample size = %d", len(sum.SampleRows))
	}
}

func TestSummarizeSampleEqualsRowsWhenSmall(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("postedCompany_name\n")
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&sb, "c%d\n", i)
	}
	path := writeCSV(t, sb.String())

	sum, err := Summarize(path, Options{SampleSize: 100, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(sum.SampleRows) != 7 {
		t.Fatalf("sample size = %d, want 7", len(sum.SampleRows))
	}
}

func TestSummarizeZeroSalaryAsymmetry(t *testing.T) {
	// Zero counts toward the mean but never enters the sampled list.
	path := writeCSV(t, "average_salary\n0\n6000\n")
	sum, err := Summarize(path, Options{SampleSize: 10, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if sum.AverageSalary != 3000 {
		t.Fatalf("average = %v, want 3000", sum.AverageSalary)
	}
	if len(sum.SampleSalaries) != 1 || sum.SampleSalaries[0] != 6000 {
		t.Fatalf("sample salaries = %v", sum.SampleSalaries)
	}
}

func TestSummarizeUnparsableCells(t *testing.T) {
	path := writeCSV(t, fullHeader+
		"Open,Acme,garbage,lots,n/a,not-a-date,3\n"+
		`Closed,Acme,"[{""category"":""IT""}]",2,1000,2024-01-03,x`+"\n")
	sum, err := Summarize(path, Options{SampleSize: 10, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if sum.TotalRows != 2 {
		t.Fatalf("total rows = %d", sum.TotalRows)
	}
	if sum.ExperienceCounts["unspecified"] != 1 || sum.ExperienceCounts["2"] != 1 {
		t.Fatalf("experience = %v", sum.ExperienceCounts)
	}
	// Unparsable date drops the row from both trend series.
	if len(sum.PostingsOverTime) != 1 {
		t.Fatalf("postings = %v", sum.PostingsOverTime)
	}
	// Unparsable vacancy count defaults to 1.
	if sum.VacanciesOverTime[0].Vacancies != 1 {
		t.Fatalf("vacancies = %v", sum.VacanciesOverTime)
	}
	if sum.AverageSalary != 1000 {
		t.Fatalf("average = %v", sum.AverageSalary)
	}
}

func TestSummarizeMissingColumnsDegrade(t *testing.T) {
	path := writeCSV(t, "postedCompany_name\nAcme\nGlobex\n")
	sum, err := Summarize(path, Options{SampleSize: 10, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if sum.TotalRows != 2 || sum.UniqueCompanies != 2 {
		t.Fatalf("rows=%d unique=%d", sum.TotalRows, sum.UniqueCompanies)
	}
	// Every field keeps its shape even with the source columns missing.
	if sum.StatusCounts == nil || sum.SampleSalaries == nil ||
		sum.PostingsOverTime == nil || sum.VacanciesOverTime == nil {
		t.Fatal("summary fields must default to empty, not nil")
	}
	if sum.AverageSalary != 0 {
		t.Fatalf("average = %v", sum.AverageSalary)
	}
}

func TestSummarizeUnreadableSource(t *testing.T) {
	_, err := Summarize(filepath.Join(t.TempDir(), "missing.csv"), Options{Seed: 1})
	if !errors.Is(err, dataset.ErrSourceUnreadable) {
		t.Fatalf("err = %v", err)
	}
}

func TestTopCountsStableTieBreak(t *testing.T) {
	c := newCounter()
	c.inc("b", 1)
	c.inc("a", 1)
	c.inc("z", 2)
	top := c.top(3)
	if top[0].Name != "z" || top[1].Name != "b" || top[2].Name != "a" {
		t.Fatalf("top = %v", top)
	}
}
