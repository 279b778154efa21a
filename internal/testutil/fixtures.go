package testutil

import (
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
)

// SampleGame returns a scheduled game fixture for date.
func SampleGame(id int64, date, home, away string) games.Game {
	return games.Game{
		ID:           id,
		Date:         date,
		HomeTeam:     home,
		AwayTeam:     away,
		StartTimeUTC: date + "T23:00:00Z",
		State:        games.StateFuture,
	}
}

// SampleResult returns the neutral home-ice quote for a game.
func SampleResult(id int64, date, home, away string) predictions.Result {
	return predictions.Result{
		GameID:           id,
		Date:             date,
		HomeTeam:         home,
		AwayTeam:         away,
		HomeWinProb:      0.52,
		HomeAmericanOdds: -115,
		AwayAmericanOdds: 102,
	}
}

// SampleDay builds a day with a single sample result.
func SampleDay(date string) predictions.Day {
	return predictions.NewDay(date, []predictions.Result{SampleResult(1, date, "COL", "DAL")})
}
