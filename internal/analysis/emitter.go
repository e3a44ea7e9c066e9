package analysis

import "github.com/yourusername/race-lens/internal/models"

// emitter funnels detector alerts into a store with a sticky error, so
// detector code can stay close to its decision logic. The first
// construction or store failure is kept and every later emit becomes a
// no-op; the orchestrator checks Err once at the end.
type emitter struct {
	store *Store
	err   error
}

func newEmitter(store *Store) *emitter {
	return &emitter{store: store}
}

func (e *emitter) emit(priority int, horseNumber string, purpose models.AlertPurpose, target models.AlertTarget, message string, winScore, placeScore float64) {
	if e.err != nil {
		return
	}
	alert, err := models.NewAlert(priority, horseNumber, purpose, target, message, winScore, placeScore)
	if err != nil {
		e.err = err
		return
	}
	e.err = e.store.Add(alert, false)
}

func (e *emitter) emitAll(alerts []models.AlertMessage) {
	if e.err != nil {
		return
	}
	e.err = e.store.AddMany(alerts, false)
}

// Err returns the first failure seen by this emitter, if any.
func (e *emitter) Err() error {
	return e.err
}
