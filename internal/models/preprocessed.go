package models

// PreprocessedHorse is the denormalized per-horse record the detectors
// operate on: current odds joined with card metadata plus derived flags.
type PreprocessedHorse struct {
	HorseNumber     string  `json:"horseNumber"`
	HorseName       string  `json:"horseName"`
	Trainer         string  `json:"trainer"`
	Jockey          string  `json:"jockey"`
	Weight          string  `json:"weight"`
	FirstDayIndex   float64 `json:"firstDayIndex"`
	RaceDayIndex    float64 `json:"raceDayIndex"`
	LastWin         float64 `json:"lastWin"`
	LastPosition    int     `json:"lastPosition"`
	Win             float64 `json:"win"`
	Place           float64 `json:"place"`
	ExpectedP       float64 `json:"expectedP"`
	Category        string  `json:"category"`
	IsNewHorse      bool    `json:"isNewHorse"`
	IsBeatIndex     bool    `json:"isBeatIndex"`
	LastGoodResult  bool    `json:"lastGoodResult"`
	SameWinRange    bool    `json:"sameWinRange"`
	IsWinFavorite   bool    `json:"isWinFavorite"`
	IsPlaceFavorite bool    `json:"isPlaceFavorite"`
	IsQFavourite    bool    `json:"isQFavourite"`
	IsPQFavourite   bool    `json:"isPQFavourite"`
}

// PreprocessedQuinellaPair is a quinella combination annotated with the
// regression-expected odds and its residual (expected - actual; positive
// means the pool prices the pair shorter than the model expects).
type PreprocessedQuinellaPair struct {
	HorseNumber1         string  `json:"horse_number_1"`
	HorseNumber2         string  `json:"horse_number_2"`
	ActualOdds           float64 `json:"actualOdds"`
	ExpectedOdds         float64 `json:"expectedOdds"`
	Residual             float64 `json:"residual"`
	StandardizedResidual float64 `json:"standardizedResidual"`
}

// PreprocessedPlaceQPair mirrors PreprocessedQuinellaPair for the place
// quinella pool, with expected odds from the fair-odds closed form.
type PreprocessedPlaceQPair struct {
	HorseNumber1 string  `json:"horse_number_1"`
	HorseNumber2 string  `json:"horse_number_2"`
	ActualOdds   float64 `json:"actualOdds"`
	ExpectedOdds float64 `json:"expectedOdds"`
	Residual     float64 `json:"residual"`
}

// PreprocessedRaceData is the normalized model one analysis run works on.
// It is built once per run and treated as immutable by all detectors.
type PreprocessedRaceData struct {
	Horses          []PreprocessedHorse        `json:"horses"`
	QuinellaPairs   []PreprocessedQuinellaPair `json:"quinellaPairs"`
	PlaceQPairs     []PreprocessedPlaceQPair   `json:"placeQPairs"`
	WinFavourite    string                     `json:"winFavourite"`
	PlaceFavourite  string                     `json:"placeFavourite"`
	QFavouritePair  []string                   `json:"qFavouritePair"`
	PQFavouritePair []string                   `json:"pqFavouritePair"`
	Predictions     *PredictionData            `json:"predictions,omitempty"`
}

// HorseByNumber returns the preprocessed record for a horse number.
func (p *PreprocessedRaceData) HorseByNumber(horseNumber string) (PreprocessedHorse, bool) {
	for _, h := range p.Horses {
		if h.HorseNumber == horseNumber {
			return h, true
		}
	}
	return PreprocessedHorse{}, false
}

// HorsesInCategory returns the horses assigned to one odds category, in
// odds-board order.
func (p *PreprocessedRaceData) HorsesInCategory(category string) []PreprocessedHorse {
	var out []PreprocessedHorse
	for _, h := range p.Horses {
		if h.Category == category {
			out = append(out, h)
		}
	}
	return out
}

// QuinellaOddsList converts the preprocessed quinella pairs back to plain
// odds pairs for the dominance comparators.
func (p *PreprocessedRaceData) QuinellaOddsList() []QuinellaPair {
	out := make([]QuinellaPair, 0, len(p.QuinellaPairs))
	for _, pair := range p.QuinellaPairs {
		out = append(out, QuinellaPair{HorseNumber1: pair.HorseNumber1, HorseNumber2: pair.HorseNumber2, Odds: pair.ActualOdds})
	}
	return out
}

// PlaceQuinellaOddsList converts the preprocessed place quinella pairs back
// to plain odds pairs for the dominance comparators.
func (p *PreprocessedRaceData) PlaceQuinellaOddsList() []QuinellaPair {
	out := make([]QuinellaPair, 0, len(p.PlaceQPairs))
	for _, pair := range p.PlaceQPairs {
		out = append(out, QuinellaPair{HorseNumber1: pair.HorseNumber1, HorseNumber2: pair.HorseNumber2, Odds: pair.ActualOdds})
	}
	return out
}
