// Package models defines the race data and alert structures shared by the
// analysis engine, the service layer and the HTTP API.
package models

// RaceHorse is one row of the win/place odds board. Zero odds mean the
// horse is withdrawn and must be excluded from favorite computations.
type RaceHorse struct {
	HorseNumber string  `json:"horseNumber" validate:"required"`
	Win         float64 `json:"win" validate:"gte=0"`
	Place       float64 `json:"place" validate:"gte=0"`
}

// QuinellaPair is an unordered two-horse combination with its pool odds.
// Consumers must look the pair up in both orderings.
type QuinellaPair struct {
	HorseNumber1 string  `json:"horse_number_1" validate:"required"`
	HorseNumber2 string  `json:"horse_number_2" validate:"required"`
	Odds         float64 `json:"odds" validate:"gte=0"`
}

// HorseDetail carries the static and pre-race contextual metadata for a
// single horse. LastWin of zero signals a debutant with no racing history.
type HorseDetail struct {
	HorseID         string  `json:"horseID"`
	HorseNumber     string  `json:"Horse Number"`
	HorseName       string  `json:"Horse Name"`
	Weight          string  `json:"Weight"`
	Trainer         string  `json:"Trainer"`
	Jockey          string  `json:"Jockey"`
	Post            string  `json:"Post"`
	FirstDayIndex   float64 `json:"First Day Index"`
	RaceDayWinIndex float64 `json:"Race Day Win Index"`
	LastWin         float64 `json:"lastWin"`
	LastPosition    int     `json:"lastPosition"`
	Win             float64 `json:"Win"`
	Place           float64 `json:"Place"`
}

// HorseInfo is the metadata document for one race card.
type HorseInfo struct {
	RaceDate   string        `json:"Race Date"`
	RaceNumber string        `json:"Race Number"`
	Horses     []HorseDetail `json:"Horses"`
}

// HorseByNumber returns the detail record for a horse number, or false if
// the card has no entry for it. Missing metadata is never fatal.
func (hi *HorseInfo) HorseByNumber(horseNumber string) (HorseDetail, bool) {
	for _, h := range hi.Horses {
		if h.HorseNumber == horseNumber {
			return h, true
		}
	}
	return HorseDetail{}, false
}

// RaceInfo identifies the snapshot a race data document was taken from.
type RaceInfo struct {
	Date       string `json:"date"`
	RaceNumber string `json:"raceNumber"`
	Timestamp  string `json:"timestamp"`
	URL        string `json:"url"`
}

// PaceHorsePosition is one horse's projected position on the pace map.
type PaceHorsePosition struct {
	HorseNumber  string `json:"horse_number"`
	LeadPosition int    `json:"lead_position"`
	WidePosition int    `json:"wide_position"`
}

// PaceData is the optional pace-map payload. It is carried through for
// consumers but not analyzed by the engine.
type PaceData struct {
	Course     string              `json:"course"`
	Date       string              `json:"date"`
	RaceNumber int                 `json:"race_number"`
	Class      string              `json:"class"`
	Track      string              `json:"track"`
	Distance   int                 `json:"distance"`
	Pace       string              `json:"pace"`
	Positions  []PaceHorsePosition `json:"positions"`
}

// PredictionData holds external tipster predictions, already stringified by
// the loading layer. Empty fields mean the prediction is absent.
type PredictionData struct {
	RaceDate   string `json:"Race Date"`
	RaceNumber string `json:"Race Number"`
	DBL1       string `json:"DBL1"`
	DBL2       string `json:"DBL2"`
	DBL3       string `json:"DBL3"`
	Q1         string `json:"Q1"`
	Q2         string `json:"Q2"`
	Q3         string `json:"Q3"`
	Q4         string `json:"Q4"`
	QP1        string `json:"QP1"`
	QP2        string `json:"QP2"`
	QP3        string `json:"QP3"`
	QP4        string `json:"QP4"`
	RTG1       string `json:"RTG1"`
	RTG2       string `json:"RTG2"`
	RTG3       string `json:"RTG3"`
	Score1     string `json:"score1"`
	Score2     string `json:"score2"`
	Score3     string `json:"score3"`
}

// RaceData is the complete input snapshot for one analysis run. All numeric
// fields are pre-coerced and all horse numbers pre-stringified by the
// loading layer.
type RaceData struct {
	Odds              []RaceHorse     `json:"odds" validate:"required,min=1"`
	QuinellaOdds      []QuinellaPair  `json:"quinella_odds"`
	QuinellaPlaceOdds []QuinellaPair  `json:"quinella_place_odds"`
	HorseInfo         HorseInfo       `json:"horseInfo"`
	RaceInfo          RaceInfo        `json:"raceInfo"`
	PaceData          *PaceData       `json:"paceData,omitempty"`
	Predictions       *PredictionData `json:"predictions,omitempty"`
}
