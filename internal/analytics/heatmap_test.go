package analytics

import (
	"reflect"
	"testing"
)

func TestIndustryPivot(t *testing.T) {
	setupStore(t)
	seedIndustry(t, "IT", "2024-01-01/2024-01-07", 10)
	seedIndustry(t, "IT", "2024-01-08/2024-01-14", 20)
	seedIndustry(t, "Finance", "2024-01-08/2024-01-14", 5)

	h, err := IndustryPivot(10)
	if err != nil {
		t.Fatal(err)
	}
	// Ranked by total vacancies, periods in chronological order.
	if !reflect.DeepEqual(h.Industries, []string{"IT", "Finance"}) {
		t.Fatalf("industries = %v", h.Industries)
	}
	wantPeriods := []string{"2024-01-01/2024-01-07", "2024-01-08/2024-01-14"}
	if !reflect.DeepEqual(h.Periods, wantPeriods) {
		t.Fatalf("periods = %v", h.Periods)
	}
	want := [][]int64{{10, 20}, {0, 5}}
	if !reflect.DeepEqual(h.Values, want) {
		t.Fatalf("values = %v", h.Values)
	}
	if h.Cap <= 0 {
		t.Fatalf("cap = %v", h.Cap)
	}
}

func TestIndustryPivotSumsDuplicateRows(t *testing.T) {
	setupStore(t)
	seedIndustry(t, "IT", "2024-01-01/2024-01-07", 3)
	seedIndustry(t, "IT", "2024-01-01/2024-01-07", 4)

	h, err := IndustryPivot(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Values) != 1 || h.Values[0][0] != 7 {
		t.Fatalf("values = %v", h.Values)
	}
}

func TestIndustryPivotTopN(t *testing.T) {
	setupStore(t)
	seedIndustry(t, "IT", "2024-01-01/2024-01-07", 100)
	seedIndustry(t, "Finance", "2024-01-01/2024-01-07", 50)
	seedIndustry(t, "Retail", "2024-01-01/2024-01-07", 1)

	h, err := IndustryPivot(2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(h.Industries, []string{"IT", "Finance"}) {
		t.Fatalf("industries = %v", h.Industries)
	}
}

func TestIndustryPivotEmptyStore(t *testing.T) {
	setupStore(t)
	h, err := IndustryPivot(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Industries) != 0 || len(h.Periods) != 0 || len(h.Values) != 0 {
		t.Fatalf("heatmap = %+v", h)
	}
	if h.Cap != 0 {
		t.Fatalf("cap = %v", h.Cap)
	}
}

func TestPercentile(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if got := percentile(vals, 95); got != 10 {
		t.Fatalf("p95 = %v", got)
	}
	if got := percentile(vals, 50); got != 5 {
		t.Fatalf("p50 = %v", got)
	}
	if got := percentile(nil, 95); got != 0 {
		t.Fatalf("empty = %v", got)
	}
	// Input must stay untouched.
	unsorted := []float64{3, 1, 2}
	percentile(unsorted, 50)
	if unsorted[0] != 3 {
		t.Fatalf("input mutated: %v", unsorted)
	}
}
