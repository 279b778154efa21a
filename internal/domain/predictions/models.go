package predictions

import (
	"math"
	"time"
)

// DocumentVersion is the current persisted predictions format.
const DocumentVersion = 1

// NoGamesMessage explains an empty day.
const NoGamesMessage = "No upcoming games for this date."

// Result is the priced outcome for one game.
type Result struct {
	GameID           int64   `json:"gameId"`
	Date             string  `json:"date"`
	HomeTeam         string  `json:"homeTeam"`
	AwayTeam         string  `json:"awayTeam"`
	StartTimeUTC     string  `json:"startTimeUTC,omitempty"`
	LocalTime        string  `json:"gameTimeLocal,omitempty"`
	HomeWinProb      float64 `json:"homeWinProb"`
	HomeAmericanOdds int     `json:"homeAmericanOdds"`
	AwayAmericanOdds int     `json:"awayAmericanOdds"`
}

// Day is the payload for one date. Games is never nil so it encodes as [].
type Day struct {
	Date    string   `json:"date"`
	Games   []Result `json:"games"`
	Message string   `json:"message,omitempty"`
}

// NewDay builds a Day, substituting the no-games message when results are empty.
func NewDay(date string, results []Result) Day {
	if len(results) == 0 {
		return Day{Date: date, Games: []Result{}, Message: NoGamesMessage}
	}
	return Day{Date: date, Games: results}
}

// Document is the persisted multi-date predictions file.
type Document struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	RunID       string    `json:"runId,omitempty"`
	Predictions []Day     `json:"predictions"`
}

// NewDocument wraps days in the current document version.
func NewDocument(runID string, generatedAt time.Time, days ...Day) Document {
	if days == nil {
		days = []Day{}
	}
	return Document{
		Version:     DocumentVersion,
		GeneratedAt: generatedAt.UTC(),
		RunID:       runID,
		Predictions: days,
	}
}

// RoundProbability rounds to three decimals for presentation.
func RoundProbability(p float64) float64 {
	return math.Round(p*1000) / 1000
}
