package features

import (
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-odds-service/internal/model"
)

// HeadToHead counts completed regular-season meetings between home and away in season,
// from the designated home team's point of view regardless of venue. No meetings yields None.
func HeadToHead(schedule []games.ClubGame, home, away string, season int) model.Optional[model.HeadToHead] {
	wins, total := 0, 0
	for _, g := range schedule {
		if g.GameType != games.GameTypeRegularSeason || g.Season != season {
			continue
		}
		if !g.State.IsTerminal() || !g.IsBetween(home, away) {
			continue
		}
		winner, ok := g.Winner()
		if !ok {
			continue
		}
		total++
		if winner == home {
			wins++
		}
	}
	if total == 0 {
		return model.None[model.HeadToHead]()
	}
	return model.Some(model.HeadToHead{HomeWinPct: float64(wins) / float64(total), Games: total})
}
