package summary

import (
	"math/rand"

	"jobpulse/internal/dataset"
)

const replaceProb = 0.001

// sampler maintains a bounded row sample over the stream. While below
// capacity it takes a uniform without-replacement subsample of each batch.
// Once full it switches to accepting each later row with fixed probability
// replaceProb, overwriting a uniformly random slot.
//
// Known approximation: a correct reservoir sample would accept with
// probability capacity/rowsSeen, so this variant under-represents rows late
// in very long streams. The policy is kept as-is for parity with the
// historical behavior; do not "fix" it without changing downstream
// expectations.
type sampler struct {
	capacity int
	rng      *rand.Rand
	rows     []map[string]string
}

func newSampler(capacity int, rng *rand.Rand) *sampler {
	return &sampler{
		capacity: capacity,
		rng:      rng,
		rows:     make([]map[string]string, 0, capacity),
	}
}

func (s *sampler) Add(b *dataset.Batch) {
	if s.capacity <= 0 {
		return
	}
	n := b.Len()

	if len(s.rows) < s.capacity {
		need := s.capacity - len(s.rows)
		if need >= n {
			for i := 0; i < n; i++ {
				s.rows = append(s.rows, b.Record(i))
			}
			return
		}
		for _, i := range s.rng.Perm(n)[:need] {
			s.rows = append(s.rows, b.Record(i))
		}
		return
	}

	for i := 0; i < n; i++ {
		if s.rng.Float64() < replaceProb {
			s.rows[s.rng.Intn(len(s.rows))] = b.Record(i)
		}
	}
}

func (s *sampler) Rows() []map[string]string {
	return s.rows
}
