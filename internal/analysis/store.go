// Package analysis implements the race alerting engine: preprocessing of
// raw odds snapshots, the heuristic detector battery and the alert store
// the detectors accumulate into.
package analysis

import (
	"github.com/yourusername/race-lens/internal/models"
)

// Store collects the alerts of a single analysis run together with the
// four per-market highlight sets. A Store is constructed fresh for every
// run and threaded through the detectors explicitly, so concurrent
// analyses never share state.
type Store struct {
	alerts        []models.AlertMessage
	win           *stringSet
	place         *stringSet
	quinella      *stringSet
	placeQuinella *stringSet
}

// NewStore returns an empty store.
func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset clears all alerts and highlight sets.
func (s *Store) Reset() {
	s.alerts = nil
	s.win = newStringSet()
	s.place = newStringSet()
	s.quinella = newStringSet()
	s.placeQuinella = newStringSet()
}

// Add validates and appends an alert. Invalid alerts are rejected with an
// error, never silently dropped. autoSort re-sorts the collection by
// priority descending after the append.
func (s *Store) Add(alert models.AlertMessage, autoSort bool) error {
	if err := alert.Validate(); err != nil {
		return err
	}
	s.alerts = append(s.alerts, alert)
	if autoSort {
		models.SortAlertsByPriority(s.alerts)
	}
	return nil
}

// AddMany appends a batch of alerts, sorting once at the end when autoSort
// is set. The first invalid alert aborts the batch.
func (s *Store) AddMany(alerts []models.AlertMessage, autoSort bool) error {
	for _, a := range alerts {
		if err := s.Add(a, false); err != nil {
			return err
		}
	}
	if autoSort {
		models.SortAlertsByPriority(s.alerts)
	}
	return nil
}

// Len returns the number of stored alerts.
func (s *Store) Len() int {
	return len(s.alerts)
}

// All returns a snapshot of the stored alerts. The sorted variant orders
// by priority descending with ties keeping insertion order.
func (s *Store) All(sorted bool) []models.AlertMessage {
	out := make([]models.AlertMessage, len(s.alerts))
	copy(out, s.alerts)
	if sorted {
		models.SortAlertsByPriority(out)
	}
	return out
}

// Dedupe removes exact duplicates (priority, horse number, purpose,
// target, message and all metrics pairwise equal), keeping the first
// occurrence of each.
func (s *Store) Dedupe(alerts []models.AlertMessage) []models.AlertMessage {
	out := make([]models.AlertMessage, 0, len(alerts))
	for _, a := range alerts {
		dup := false
		for _, kept := range out {
			if kept.Equal(a) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, a)
		}
	}
	return out
}

// ApplyHighlight maps a Win/Place/Q/PQ-targeted alert into the matching
// highlight set. Combination keys are canonicalized to the column-first
// (larger-smaller) form the odds matrices address their cells with.
// Alerts with other targets are no-ops here.
func (s *Store) ApplyHighlight(alert models.AlertMessage) {
	switch alert.Target {
	case models.TargetWin:
		s.win.add(alert.HorseNumber)
	case models.TargetPlace:
		s.place.add(alert.HorseNumber)
	case models.TargetQuinella:
		s.quinella.add(models.ColumnFirstComboKey(alert.HorseNumber))
	case models.TargetPlaceQuinella:
		s.placeQuinella.add(models.ColumnFirstComboKey(alert.HorseNumber))
	}
}

// Highlights returns a snapshot of the four highlight sets in insertion
// order.
func (s *Store) Highlights() models.Highlights {
	return models.Highlights{
		Win:           s.win.values(),
		Place:         s.place.values(),
		Quinella:      s.quinella.values(),
		PlaceQuinella: s.placeQuinella.values(),
	}
}

// stringSet is an insertion-ordered set of strings.
type stringSet struct {
	seen  map[string]struct{}
	order []string
}

func newStringSet() *stringSet {
	return &stringSet{seen: make(map[string]struct{})}
}

func (ss *stringSet) add(v string) {
	if _, ok := ss.seen[v]; ok {
		return
	}
	ss.seen[v] = struct{}{}
	ss.order = append(ss.order, v)
}

func (ss *stringSet) values() []string {
	out := make([]string, len(ss.order))
	copy(out, ss.order)
	return out
}
