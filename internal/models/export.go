package models

import (
	"fmt"
	"time"
)

// ExportMetadata identifies one exported analysis.
type ExportMetadata struct {
	Date              string    `json:"date"`
	RaceNumber        string    `json:"raceNumber"`
	AnalyzedAt        time.Time `json:"analyzedAt"`
	PriorityThreshold int       `json:"priorityThreshold"`
}

// AnalysisExport is the downstream persistence envelope: findings at or
// above the priority threshold plus the race card they refer to.
type AnalysisExport struct {
	Metadata  ExportMetadata `json:"metadata"`
	Findings  []AlertMessage `json:"findings"`
	HorseInfo HorseInfo      `json:"horseInfo"`
}

// Filename returns the conventional download name for this export.
func (e AnalysisExport) Filename() string {
	return fmt.Sprintf("analysis-p%d-%s-%s.json", e.Metadata.PriorityThreshold, e.Metadata.Date, e.Metadata.RaceNumber)
}

// NewAnalysisExport filters alerts by the priority threshold and wraps them
// in the export envelope.
func NewAnalysisExport(info RaceInfo, horseInfo HorseInfo, alerts []AlertMessage, threshold int, analyzedAt time.Time) AnalysisExport {
	findings := make([]AlertMessage, 0, len(alerts))
	for _, a := range alerts {
		if a.Priority >= threshold {
			findings = append(findings, a)
		}
	}
	return AnalysisExport{
		Metadata: ExportMetadata{
			Date:              info.Date,
			RaceNumber:        info.RaceNumber,
			AnalyzedAt:        analyzedAt,
			PriorityThreshold: threshold,
		},
		Findings:  findings,
		HorseInfo: horseInfo,
	}
}
