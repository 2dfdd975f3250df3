// Package dedupe filters duplicate survey rows during ingestion.
// Survey exports routinely contain repeated responses; inserting them
// twice would skew every downstream frequency table and percentile.
package dedupe

import (
	"context"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/okian/careeriq/internal/domain/model"
)

// Deduper records seen row fingerprints to keep ingestion idempotent
// per input file.
type Deduper interface {
	// SeenAndRecord atomically checks if the fingerprint was seen and
	// records it if not. Returns true if it was already seen.
	SeenAndRecord(ctx context.Context, fingerprint uint64) bool

	Size() int64
}

// Fingerprint derives a stable hash over the identifying fields of a
// survey record. Skill lists keep their export order, so reordered
// duplicates hash differently; that matches how exports repeat rows.
func Fingerprint(r model.SurveyRecord) uint64 {
	h := fnv.New64a()
	write := func(s string) {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{0})
	}
	write(r.Country)
	write(r.Role)
	write(strconv.FormatFloat(r.YearsExperience, 'g', -1, 64))
	write(strconv.FormatFloat(r.Salary, 'g', -1, 64))
	write(strings.Join(r.Languages, ";"))
	write(strings.Join(r.Databases, ";"))
	write(strings.Join(r.Platforms, ";"))
	write(strings.Join(r.Frameworks, ";"))
	return h.Sum64()
}

// inMemoryDeduper implements Deduper with a mutex-guarded set. The set
// lives for one ingestion run and is bounded by the input file size.
type inMemoryDeduper struct {
	mu   sync.Mutex
	seen map[uint64]struct{}
	size atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper.
func NewInMemoryDeduper() Deduper {
	return &inMemoryDeduper{
		seen: make(map[uint64]struct{}),
	}
}

func (d *inMemoryDeduper) SeenAndRecord(ctx context.Context, fingerprint uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[fingerprint]; exists {
		return true
	}
	d.seen[fingerprint] = struct{}{}
	d.size.Add(1)
	return false
}

// Size returns the current number of recorded fingerprints.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
