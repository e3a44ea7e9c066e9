package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// AlertPurpose says what a consumer should do with an alert.
type AlertPurpose string

// Recognized alert purposes.
const (
	PurposeDisplay   AlertPurpose = "Display"
	PurposeHighlight AlertPurpose = "Highlight"
	PurposeAnalyze   AlertPurpose = "Analyze"
)

// AlertTarget says which market (or none) an alert refers to.
type AlertTarget string

// Recognized alert targets.
const (
	TargetWin           AlertTarget = "Win"
	TargetPlace         AlertTarget = "Place"
	TargetQuinella      AlertTarget = "Q"
	TargetPlaceQuinella AlertTarget = "PQ"
	TargetGeneric       AlertTarget = "Generic"
)

// AllHorses is the horse-number sentinel used by whole-run diagnostic
// alerts that address no particular horse.
const AllHorses = "ALL"

// AlertMetrics carries the scoring attached to an alert. WinScore and
// PlaceScore are always set; the remaining fields are optional diagnostics.
type AlertMetrics struct {
	WinScore   float64  `json:"winScore"`
	PlaceScore float64  `json:"placeScore"`
	Strength   *float64 `json:"strength,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	FairOdds   *float64 `json:"fairOdds,omitempty"`
}

// Equal reports exact metric equality, optional fields included.
func (m AlertMetrics) Equal(other AlertMetrics) bool {
	if m.WinScore != other.WinScore || m.PlaceScore != other.PlaceScore {
		return false
	}
	return equalOptional(m.Strength, other.Strength) &&
		equalOptional(m.Confidence, other.Confidence) &&
		equalOptional(m.FairOdds, other.FairOdds)
}

func equalOptional(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// AlertMessage is one finding produced by the analysis engine. HorseNumber
// is a single number ("1"-"14"), a combination ("3-7") for Q/PQ targets, or
// AllHorses for whole-run diagnostics.
type AlertMessage struct {
	Priority    int          `json:"priority" validate:"gte=0"`
	HorseNumber string       `json:"horseNumber" validate:"required"`
	Purpose     AlertPurpose `json:"purpose" validate:"required"`
	Target      AlertTarget  `json:"target" validate:"required"`
	Message     string       `json:"message"`
	Metrics     AlertMetrics `json:"metrics"`
}

// NewAlert validates and constructs an alert. Priorities below zero are
// clamped to zero. Construction fails when the purpose or target is not
// recognized or the horse number does not match the target's format.
func NewAlert(priority int, horseNumber string, purpose AlertPurpose, target AlertTarget, message string, winScore, placeScore float64) (AlertMessage, error) {
	if !validPurpose(purpose) {
		return AlertMessage{}, fmt.Errorf("%w: unrecognized purpose %q", ErrInvalidAlert, purpose)
	}
	if !validTarget(target) {
		return AlertMessage{}, fmt.Errorf("%w: unrecognized target %q", ErrInvalidAlert, target)
	}
	if !horseNumberFitsTarget(horseNumber, target) {
		return AlertMessage{}, fmt.Errorf("%w: horse number %q does not fit target %q", ErrInvalidAlert, horseNumber, target)
	}
	if priority < 0 {
		priority = 0
	}
	return AlertMessage{
		Priority:    priority,
		HorseNumber: horseNumber,
		Purpose:     purpose,
		Target:      target,
		Message:     message,
		Metrics:     AlertMetrics{WinScore: winScore, PlaceScore: placeScore},
	}, nil
}

// Validate re-checks an already constructed alert, for stores that accept
// caller-built values.
func (a AlertMessage) Validate() error {
	if a.Priority < 0 {
		return ErrInvalidPriority
	}
	if !validPurpose(a.Purpose) {
		return fmt.Errorf("%w: unrecognized purpose %q", ErrInvalidAlert, a.Purpose)
	}
	if !validTarget(a.Target) {
		return fmt.Errorf("%w: unrecognized target %q", ErrInvalidAlert, a.Target)
	}
	if !horseNumberFitsTarget(a.HorseNumber, a.Target) {
		return fmt.Errorf("%w: horse number %q does not fit target %q", ErrInvalidAlert, a.HorseNumber, a.Target)
	}
	return nil
}

// horseNumberFitsTarget applies the format rule for a target: Win/Place
// take single numbers, Q/PQ take combinations, and Generic accepts either
// (generic diagnostics may reference a combination, e.g. pair residuals).
func horseNumberFitsTarget(num string, target AlertTarget) bool {
	switch target {
	case TargetQuinella, TargetPlaceQuinella:
		return ValidHorseNumber(num, true)
	case TargetGeneric:
		return ValidHorseNumber(num, false) || ValidHorseNumber(num, true)
	default:
		return ValidHorseNumber(num, false)
	}
}

// Equal reports exact alert equality, the relation used for deduplication.
func (a AlertMessage) Equal(other AlertMessage) bool {
	return a.Priority == other.Priority &&
		a.HorseNumber == other.HorseNumber &&
		a.Purpose == other.Purpose &&
		a.Target == other.Target &&
		a.Message == other.Message &&
		a.Metrics.Equal(other.Metrics)
}

func validPurpose(p AlertPurpose) bool {
	switch p {
	case PurposeDisplay, PurposeHighlight, PurposeAnalyze:
		return true
	}
	return false
}

func validTarget(t AlertTarget) bool {
	switch t {
	case TargetWin, TargetPlace, TargetQuinella, TargetPlaceQuinella, TargetGeneric:
		return true
	}
	return false
}

// ValidHorseNumber reports whether input is a valid single horse number
// (1-14) or, when combo is set, a valid "N-M" combination of two distinct
// numbers. The AllHorses sentinel is accepted for non-combo diagnostics.
func ValidHorseNumber(input string, combo bool) bool {
	if combo {
		parts := strings.Split(input, "-")
		if len(parts) != 2 {
			return false
		}
		n1, err1 := strconv.Atoi(parts[0])
		n2, err2 := strconv.Atoi(parts[1])
		return err1 == nil && err2 == nil &&
			n1 >= 1 && n1 <= 14 &&
			n2 >= 1 && n2 <= 14 &&
			n1 != n2
	}
	if input == AllHorses {
		return true
	}
	n, err := strconv.Atoi(input)
	return err == nil && n >= 1 && n <= 14
}

// ComboKey builds the numerically ordered (smaller-larger) lookup key for
// an unordered pair.
func ComboKey(horse1, horse2 string) string {
	n1, _ := strconv.Atoi(horse1)
	n2, _ := strconv.Atoi(horse2)
	if n1 > n2 {
		n1, n2 = n2, n1
	}
	return fmt.Sprintf("%d-%d", n1, n2)
}

// ColumnFirstComboKey builds the larger-smaller key the odds matrix UI
// addresses its upper-triangle cells with. This deliberately differs from
// ComboKey's ordering.
func ColumnFirstComboKey(combo string) string {
	parts := strings.Split(combo, "-")
	if len(parts) != 2 {
		return combo
	}
	n1, err1 := strconv.Atoi(parts[0])
	n2, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return combo
	}
	if n1 < n2 {
		n1, n2 = n2, n1
	}
	return fmt.Sprintf("%d-%d", n1, n2)
}

// Highlights holds the four per-market highlight sets derived from one
// analysis run, as the UI consumes them.
type Highlights struct {
	Win           []string `json:"win"`
	Place         []string `json:"place"`
	Quinella      []string `json:"quinella"`
	PlaceQuinella []string `json:"placeQuinella"`
}

// SortAlertsByPriority stably orders alerts by priority descending; ties
// keep insertion order.
func SortAlertsByPriority(alerts []AlertMessage) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Priority > alerts[j].Priority
	})
}
