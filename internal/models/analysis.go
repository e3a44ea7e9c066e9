package models

import "time"

// RaceAnalysis is the result of one analysis run: the deduplicated,
// priority-sorted alert list plus the four per-market highlight sets.
type RaceAnalysis struct {
	RunID      string         `json:"runId"`
	RaceDate   string         `json:"raceDate"`
	RaceNumber string         `json:"raceNumber"`
	Alerts     []AlertMessage `json:"alerts"`
	Highlights Highlights     `json:"highlights"`
	AnalyzedAt time.Time      `json:"analyzedAt"`
}
