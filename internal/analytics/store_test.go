package analytics

import (
	"path/filepath"
	"testing"

	"jobpulse/internal/model"
)

func setupStore(t *testing.T) {
	t.Helper()
	db, err := model.InitDB(model.DBConfig{Path: filepath.Join(t.TempDir(), "visual.db")})
	if err != nil {
		t.Fatal(err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatal(err)
	}
}

// seedCompany inserts one (company, period) aggregate row, resolving the
// company id on the way.
func seedCompany(t *testing.T, name, period string, year int, vacancies int64) {
	t.Helper()
	id, err := model.EnsureCompany(name)
	if err != nil {
		t.Fatal(err)
	}
	err = model.InsertCompanyPeriodVacancies([]model.CompanyPeriodVacancy{{
		CompanyId: id,
		Period:    period,
		Year:      year,
		Vacancies: vacancies,
		Postings:  1,
	}})
	if err != nil {
		t.Fatal(err)
	}
}

func seedIndustry(t *testing.T, industry, period string, vacancies int64) {
	t.Helper()
	err := model.InsertIndustryPeriodVacancies([]model.IndustryPeriodVacancy{{
		Industry:  industry,
		Period:    period,
		Vacancies: vacancies,
		Postings:  1,
	}})
	if err != nil {
		t.Fatal(err)
	}
}
