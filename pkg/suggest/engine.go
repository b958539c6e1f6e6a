// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package suggest

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	cnserrors "github.com/rsiewert/flavor-buddy/pkg/errors"
	"github.com/rsiewert/flavor-buddy/pkg/record"
	"github.com/rsiewert/flavor-buddy/pkg/store"
)

var (
	rankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flavorbuddy_ranking_duration_seconds",
			Help:    "Time to load, score and rank candidates for one user",
			Buckets: prometheus.DefBuckets,
		},
	)

	candidatesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flavorbuddy_candidates_scored_total",
			Help: "Total number of candidates scored",
		},
	)
)

// TieBreak selects the order of equally scored candidates.
type TieBreak string

const (
	// TieBreakStorage keeps the order in which the store returned candidates.
	TieBreakStorage TieBreak = "storage"
	// TieBreakID orders equally scored candidates by ascending id.
	TieBreakID TieBreak = "id"
)

// ParseTieBreak resolves a tie-break name. Empty resolves to TieBreakStorage.
func ParseTieBreak(s string) (TieBreak, error) {
	switch t := TieBreak(strings.ToLower(strings.TrimSpace(s))); t {
	case "", TieBreakStorage:
		return TieBreakStorage, nil
	case TieBreakID:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported tie-break %q, supported: %s, %s", s, TieBreakStorage, TieBreakID)
	}
}

// Scored is one ranked candidate.
type Scored struct {
	ID    string `json:"id" yaml:"id"`
	Score int    `json:"score" yaml:"score"`
	Rank  int    `json:"rank" yaml:"rank"`
}

// Ranking maps candidate id to its dense rank, 1 being the best match.
type Ranking map[string]int

// Engine scores candidates from a store.
type Engine struct {
	store     store.Store
	crosswalk *Crosswalk
	tieBreak  TieBreak
}

// Option configures an Engine.
type Option func(*Engine)

// WithCrosswalk replaces the default crosswalk.
func WithCrosswalk(cw *Crosswalk) Option {
	return func(e *Engine) {
		if cw != nil {
			e.crosswalk = cw
		}
	}
}

// WithTieBreak sets the tie-break policy.
func WithTieBreak(t TieBreak) Option {
	return func(e *Engine) {
		e.tieBreak = t
	}
}

// NewEngine returns an engine reading from s.
func NewEngine(s store.Store, opts ...Option) (*Engine, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}

	e := &Engine{
		store:     s,
		crosswalk: DefaultCrosswalk(),
		tieBreak:  TieBreakStorage,
	}
	for _, opt := range opts {
		opt(e)
	}

	if _, err := ParseTieBreak(string(e.tieBreak)); err != nil {
		return nil, err
	}
	return e, nil
}

// Crosswalk returns the engine's crosswalk.
func (e *Engine) Crosswalk() *Crosswalk {
	return e.crosswalk
}

// Rank returns the ranking of every candidate for userID.
func (e *Engine) Rank(ctx context.Context, userID string) (Ranking, error) {
	ranked, err := e.Ranked(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make(Ranking, len(ranked))
	for _, s := range ranked {
		out[s.ID] = s.Rank
	}
	return out, nil
}

// Ranked returns every candidate with its score and rank, best first.
func (e *Engine) Ranked(ctx context.Context, userID string) ([]Scored, error) {
	start := time.Now()
	defer func() {
		rankingDuration.Observe(time.Since(start).Seconds())
	}()

	userRec, err := e.store.Get(ctx, store.Users, userID)
	if err != nil {
		if cnserrors.IsCode(err, cnserrors.ErrCodeNotFound) {
			return nil, cnserrors.NewWithContext(cnserrors.ErrCodeNotFound, "user not found",
				map[string]any{"userId": userID})
		}
		return nil, err
	}
	pref := record.NewPreference(userRec)

	recs, err := e.store.Scan(ctx, store.Foods)
	if err != nil {
		return nil, err
	}

	candidates := make([]record.Candidate, 0, len(recs))
	for _, r := range recs {
		c := record.NewCandidate(r)
		if c.ID == "" {
			slog.Warn("skipping candidate without id", "record", r.String())
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil, cnserrors.New(cnserrors.ErrCodeNotFound, "no candidates found")
	}

	scored := make([]Scored, len(candidates))
	for i, c := range candidates {
		scored[i] = Scored{ID: c.ID, Score: Score(pref, c, e.crosswalk)}
	}
	candidatesScored.Add(float64(len(scored)))

	Sort(scored, e.tieBreak)

	slog.Debug("ranked candidates",
		"userId", userID,
		"candidates", len(scored),
		"top", scored[0].ID,
		"duration", time.Since(start))

	return scored, nil
}

// Score sums the preference weights whose crosswalked candidate attribute is
// truthy on c. Zero weights and attributes without a crosswalk entry
// contribute nothing.
func Score(pref record.Preference, c record.Candidate, cw *Crosswalk) int {
	total := 0
	for attr, weight := range pref.Weights {
		if weight == 0 {
			continue
		}
		candAttr, ok := cw.CandidateAttr(attr)
		if !ok {
			continue
		}
		if c.Has(candAttr) {
			total += weight
		}
	}
	return total
}

// Sort orders scored by descending score and assigns dense ranks in place.
// Equal scores keep their relative order unless t is TieBreakID.
func Sort(scored []Scored, t TieBreak) {
	slices.SortStableFunc(scored, func(a, b Scored) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 || t != TieBreakID {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	for i := range scored {
		scored[i].Rank = i + 1
	}
}

// Random returns up to n distinct candidate ids keyed random_item1..n. When
// rng is nil the global source is used.
func (e *Engine) Random(ctx context.Context, n int, rng *rand.Rand) (map[string]string, error) {
	if n < 1 {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("count must be positive, got %d", n))
	}

	recs, err := e.store.Scan(ctx, store.Foods)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		if id := r.ID(); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, cnserrors.New(cnserrors.ErrCodeNotFound, "no candidates found")
	}

	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	out := make(map[string]string, min(n, len(ids)))
	for i, id := range ids[:min(n, len(ids))] {
		out[fmt.Sprintf("random_item%d", i+1)] = id
	}
	return out, nil
}
