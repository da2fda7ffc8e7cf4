// Package sampler picks the words of a quiz session. Words are drawn without
// replacement with probability proportional to their multiplicity.
package sampler

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/sampleuv"

	"go_vocab_quiz/internal/model"
)

// Options controls one draw. Recent words are only drawn when both Recent and
// RecentDays are positive.
type Options struct {
	Full       int
	Recent     int
	RecentDays int
}

// Sampler is not safe for concurrent use.
type Sampler struct {
	src rand.Source
	rnd *rand.Rand
	now func() time.Time
}

// New returns a Sampler drawing from src. A nil src is seeded from the clock.
func New(src rand.Source) *Sampler {
	if src == nil {
		src = rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())
	}
	return &Sampler{src: src, rnd: rand.New(src), now: time.Now}
}

// WithClock replaces the clock used by the recency filter.
func (s *Sampler) WithClock(now func() time.Time) *Sampler {
	s.now = now
	return s
}

// Sample draws min(opts.Full, len) entries from the whole table and, when
// asked, min(opts.Recent, len(recent)) more from entries created within the
// last opts.RecentDays days. A combined draw is de-duplicated by page id and
// shuffled so recent words are not clustered.
func (s *Sampler) Sample(table *model.WordTable, opts Options) *model.WordTable {
	out := model.NewWordTable(model.SampleColumns)
	if table.Len() == 0 {
		return out
	}

	picked := s.draw(table.Entries, opts.Full)

	if opts.RecentDays > 0 && opts.Recent > 0 {
		recent := FilterRecent(table.Entries, opts.RecentDays, s.now())
		if len(recent) > 0 {
			picked = dedupe(append(picked, s.draw(recent, opts.Recent)...))
			s.rnd.Shuffle(len(picked), func(i, j int) {
				picked[i], picked[j] = picked[j], picked[i]
			})
		}
	}

	for _, e := range picked {
		out.Entries = append(out.Entries, project(e))
	}
	return out
}

// draw returns min(n, len(pool)) entries in draw order.
func (s *Sampler) draw(pool []model.WordEntry, n int) []model.WordEntry {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return nil
	}

	weights := make([]float64, len(pool))
	for i, e := range pool {
		w := e.Multiplicity
		if w < 1 {
			w = 1
		}
		weights[i] = float64(w)
	}

	ws := sampleuv.NewWeighted(weights, s.src)
	picked := make([]model.WordEntry, 0, n)
	for len(picked) < n {
		idx, ok := ws.Take()
		if !ok {
			break
		}
		picked = append(picked, pool[idx])
	}
	return picked
}

// FilterRecent returns the entries created at or after now minus days.
func FilterRecent(entries []model.WordEntry, days int, now time.Time) []model.WordEntry {
	cutoff := now.AddDate(0, 0, -days)
	var recent []model.WordEntry
	for _, e := range entries {
		if !e.CreatedTime.Before(cutoff) {
			recent = append(recent, e)
		}
	}
	return recent
}

func dedupe(entries []model.WordEntry) []model.WordEntry {
	seen := make(map[string]struct{}, len(entries))
	out := entries[:0]
	for _, e := range entries {
		if _, ok := seen[e.PageID]; ok {
			continue
		}
		seen[e.PageID] = struct{}{}
		out = append(out, e)
	}
	return out
}

func project(e model.WordEntry) model.WordEntry {
	return model.WordEntry{
		PageID:       e.PageID,
		Word:         e.Word,
		Meaning:      e.Meaning,
		Multiplicity: e.Multiplicity,
	}
}
