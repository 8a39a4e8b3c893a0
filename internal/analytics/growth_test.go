package analytics

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"jobpulse/internal/model"
)

const (
	weekPrev = "2024-01-01/2024-01-07"
	weekLast = "2024-01-08/2024-01-14"
)

func TestPeriodGrowthRanking(t *testing.T) {
	setupStore(t)
	seedCompany(t, "Steady", weekPrev, 2024, 100)
	seedCompany(t, "Steady", weekLast, 2024, 150)
	seedCompany(t, "Newcomer", weekLast, 2024, 5)
	seedCompany(t, "Fading", weekPrev, 2024, 10)

	items, err := PeriodGrowth(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("items = %+v", items)
	}
	if items[0].Company != "Newcomer" || !math.IsInf(items[0].PctChange, 1) {
		t.Fatalf("first = %+v", items[0])
	}
	if items[1].Company != "Steady" || items[1].PctChange != 50 {
		t.Fatalf("second = %+v", items[1])
	}
	if items[2].Company != "Fading" || items[2].PctChange != -100 {
		t.Fatalf("third = %+v", items[2])
	}
	if items[1].Last != 150 || items[1].Prev != 100 {
		t.Fatalf("second totals = %+v", items[1])
	}
}

func TestPeriodGrowthOnlyLastTwoPeriods(t *testing.T) {
	setupStore(t)
	// An older period must not leak into the comparison.
	seedCompany(t, "Steady", "2023-12-25/2023-12-31", 2023, 999)
	seedCompany(t, "Steady", weekPrev, 2024, 10)
	seedCompany(t, "Steady", weekLast, 2024, 20)

	items, err := PeriodGrowth(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Prev != 10 || items[0].Last != 20 {
		t.Fatalf("items = %+v", items)
	}
	if items[0].PctChange != 100 {
		t.Fatalf("pct = %v", items[0].PctChange)
	}
}

func TestPeriodGrowthTopNCap(t *testing.T) {
	setupStore(t)
	seedCompany(t, "A", weekPrev, 2024, 1)
	seedCompany(t, "A", weekLast, 2024, 2)
	seedCompany(t, "B", weekPrev, 2024, 1)
	seedCompany(t, "B", weekLast, 2024, 3)
	seedCompany(t, "C", weekPrev, 2024, 1)
	seedCompany(t, "C", weekLast, 2024, 4)

	items, err := PeriodGrowth(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %+v", items)
	}
	if items[0].Company != "C" || items[1].Company != "B" {
		t.Fatalf("order = %+v", items)
	}
}

func TestPeriodGrowthNeedsTwoPeriods(t *testing.T) {
	setupStore(t)
	seedCompany(t, "Only", weekLast, 2024, 5)

	items, err := PeriodGrowth(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("items = %+v", items)
	}
}

func TestYearOverYearGrowth(t *testing.T) {
	setupStore(t)
	seedCompany(t, "Steady", "2023-06-05/2023-06-11", 2023, 40)
	seedCompany(t, "Steady", "2023-07-03/2023-07-09", 2023, 60)
	seedCompany(t, "Steady", weekLast, 2024, 150)

	items, err := YearOverYearGrowth(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %+v", items)
	}
	if items[0].Prev != 100 || items[0].Last != 150 || items[0].PctChange != 50 {
		t.Fatalf("item = %+v", items[0])
	}
}

func TestGrowthOnUnbuiltStore(t *testing.T) {
	if _, err := model.InitDB(model.DBConfig{Path: filepath.Join(t.TempDir(), "empty.db")}); err != nil {
		t.Fatal(err)
	}
	// No migration ran, so the tables do not exist.
	_, err := PeriodGrowth(10)
	if !errors.Is(err, model.ErrStoreUnavailable) {
		t.Fatalf("err = %v", err)
	}
}

func TestPctChange(t *testing.T) {
	if got := pctChange(0, 5); !math.IsInf(got, 1) {
		t.Fatalf("0→5 = %v", got)
	}
	if got := pctChange(0, 0); got != 0 {
		t.Fatalf("0→0 = %v", got)
	}
	if got := pctChange(100, 150); got != 50 {
		t.Fatalf("100→150 = %v", got)
	}
	if got := pctChange(10, 0); got != -100 {
		t.Fatalf("10→0 = %v", got)
	}
}

func TestFormatPct(t *testing.T) {
	if got := FormatPct(math.Inf(1)); got != "∞ (new)" {
		t.Fatalf("got %q", got)
	}
	if got := FormatPct(50); got != "50.0%" {
		t.Fatalf("got %q", got)
	}
	if got := FormatPct(-12.34); got != "-12.3%" {
		t.Fatalf("got %q", got)
	}
}
