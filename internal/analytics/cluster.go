package analytics

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"jobpulse/internal/dataset"
	"jobpulse/internal/model"
)

// clusterSeed fixes the k-means RNG so identical store contents and
// parameters reproduce identical assignments.
const clusterSeed = 42

// maxComponents bounds the principal-component projection.
const maxComponents = 10

// Cluster groups the topN companies (by total vacancies) by the shape of
// their vacancy time series: each company's series is standardized to zero
// mean and unit variance, projected onto at most min(10, periods) principal
// components, and partitioned into min(nClusters, companies) groups with
// seeded k-means. Returns company→cluster-id; an empty store yields an empty
// map, not an error.
func Cluster(nClusters, topN int) (map[string]int, error) {
	names, err := model.TopCompaniesByVacancies(topN)
	if err != nil {
		return nil, err
	}
	assignment := make(map[string]int)
	if len(names) == 0 {
		return assignment, nil
	}

	rows, err := model.LoadCompanyPivot()
	if err != nil {
		return nil, err
	}

	nameIdx := make(map[string]int, len(names))
	for i, n := range names {
		nameIdx[n] = i
	}

	periodSet := make(map[string]bool)
	for _, r := range rows {
		if _, ok := nameIdx[r.Company]; ok {
			periodSet[r.Period] = true
		}
	}
	if len(periodSet) == 0 {
		return assignment, nil
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

	// Company×period matrix, missing combinations zero.
	matrix := make([][]float64, len(names))
	for i := range matrix {
		matrix[i] = make([]float64, len(periods))
	}
	for _, r := range rows {
		i, ok := nameIdx[r.Company]
		if !ok {
			continue
		}
		matrix[i][periodIdx[r.Period]] += float64(r.Vacancies)
	}

	for i := range matrix {
		standardizeRow(matrix[i])
	}

	dims := maxComponents
	if len(periods) < dims {
		dims = len(periods)
	}
	if len(names) < dims {
		dims = len(names)
	}
	projected := pcaProject(matrix, dims)

	k := nClusters
	if k > len(names) {
		k = len(names)
	}
	if k < 1 {
		k = 1
	}
	labels := kmeans(projected, k, rand.New(rand.NewSource(clusterSeed)))

	for i, name := range names {
		assignment[name] = labels[i]
	}
	return assignment, nil
}

// standardizeRow scales a series to zero mean and unit variance in place.
// A constant series becomes all zeros.
func standardizeRow(row []float64) {
	n := float64(len(row))
	if n == 0 {
		return
	}
	var sum float64
	for _, v := range row {
		sum += v
	}
	mean := sum / n
	var ss float64
	for _, v := range row {
		d := v - mean
		ss += d * d
	}
	std := math.Sqrt(ss / n)
	for i := range row {
		if std == 0 {
			row[i] = 0
		} else {
			row[i] = (row[i] - mean) / std
		}
	}
}

// pcaProject centers the columns of X and projects onto the first dims right
// singular vectors. Falls back to the input when the factorization fails.
func pcaProject(X [][]float64, dims int) [][]float64 {
	n := len(X)
	if n == 0 {
		return X
	}
	d := len(X[0])
	if dims <= 0 || dims > d {
		dims = d
	}

	means := make([]float64, d)
	for _, row := range X {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= float64(n)
	}

	centered := mat.NewDense(n, d, nil)
	for i, row := range X {
		for j, v := range row {
			centered.Set(i, j, v-means[j])
		}
	}

	var svd mat.SVD
	if !svd.Factorize(centered, mat.SVDThin) {
		return X
	}
	var v mat.Dense
	svd.VTo(&v)

	var projected mat.Dense
	projected.Mul(centered, v.Slice(0, d, 0, dims))

	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, dims)
		for j := 0; j < dims; j++ {
			out[i][j] = projected.At(i, j)
		}
	}
	return out
}

const kmeansMaxIter = 100

// kmeans is plain Lloyd's algorithm with random initial centroids drawn from
// the points. Deterministic for a given rng.
func kmeans(points [][]float64, k int, rng *rand.Rand) []int {
	n := len(points)
	labels := make([]int, n)
	if n == 0 || k <= 1 {
		return labels
	}
	dims := len(points[0])

	centroids := make([][]float64, k)
	for i, pi := range rng.Perm(n)[:k] {
		centroids[i] = append([]float64(nil), points[pi]...)
	}

	for iter := 0; iter < kmeansMaxIter; iter++ {
		changed := false
		for i, p := range points {
			best, bestDist := 0, math.Inf(1)
			for c, centroid := range centroids {
				d := sqDist(p, centroid)
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, p := range points {
			c := labels[i]
			counts[c]++
			for j, v := range p {
				sums[c][j] += v
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				// Empty cluster keeps its previous centroid.
				continue
			}
			for j := range centroids[c] {
				centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}
	}
	return labels
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}
