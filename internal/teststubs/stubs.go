package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/players"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/teams"
)

// StubProvider is a test double for providers.DataProvider.
// Missing map entries behave like an upstream with no data.
type StubProvider struct {
	Games       []games.Game
	ScheduleErr error

	Standings    teams.Standings
	StandingsErr error

	Stats    []teams.SeasonStats
	StatsErr error

	ClubSchedules map[string][]games.ClubGame
	ClubErr       error

	Candidates map[string][]players.Candidate
	SearchErr  error

	SavePcts   map[int64]float64
	SavePctErr error

	// Notify is closed on the first schedule call; Block, when set, holds schedule calls until closed.
	Notify chan struct{}
	Block  chan struct{}

	Calls         atomic.Int32
	ScheduleCalls atomic.Int32
	ClubCalls     atomic.Int32
	SearchCalls   atomic.Int32

	mu            sync.Mutex
	scheduleDates []string
	seasons       []int
}

// ErrNoSavePct is returned by FetchSavePct for players missing from SavePcts.
var ErrNoSavePct = errors.New("stub: no save percentage")

func (s *StubProvider) FetchSchedule(ctx context.Context, date string) ([]games.Game, error) {
	s.Calls.Add(1)
	s.ScheduleCalls.Add(1)
	s.mu.Lock()
	s.scheduleDates = append(s.scheduleDates, date)
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.mu.Unlock()

	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.ScheduleErr != nil {
		return nil, s.ScheduleErr
	}

	out := make([]games.Game, 0, len(s.Games))
	for _, g := range s.Games {
		if g.Date == "" || g.Date == date {
			g.Date = date
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *StubProvider) FetchStandings(ctx context.Context) (teams.Standings, error) {
	_ = ctx
	s.Calls.Add(1)
	if s.StandingsErr != nil {
		return nil, s.StandingsErr
	}
	out := make(teams.Standings, len(s.Standings))
	for k, v := range s.Standings {
		out[k] = v
	}
	return out, nil
}

func (s *StubProvider) FetchTeamStats(ctx context.Context, season int) ([]teams.SeasonStats, error) {
	_ = ctx
	s.Calls.Add(1)
	s.mu.Lock()
	s.seasons = append(s.seasons, season)
	s.mu.Unlock()
	if s.StatsErr != nil {
		return nil, s.StatsErr
	}
	return append([]teams.SeasonStats(nil), s.Stats...), nil
}

func (s *StubProvider) FetchClubSchedule(ctx context.Context, abbrev string) ([]games.ClubGame, error) {
	_ = ctx
	s.Calls.Add(1)
	s.ClubCalls.Add(1)
	if s.ClubErr != nil {
		return nil, s.ClubErr
	}
	return s.ClubSchedules[abbrev], nil
}

func (s *StubProvider) SearchPlayers(ctx context.Context, name string) ([]players.Candidate, error) {
	_ = ctx
	s.Calls.Add(1)
	s.SearchCalls.Add(1)
	if s.SearchErr != nil {
		return nil, s.SearchErr
	}
	return s.Candidates[name], nil
}

func (s *StubProvider) FetchSavePct(ctx context.Context, playerID int64) (float64, error) {
	_ = ctx
	s.Calls.Add(1)
	if s.SavePctErr != nil {
		return 0, s.SavePctErr
	}
	pct, ok := s.SavePcts[playerID]
	if !ok {
		return 0, ErrNoSavePct
	}
	return pct, nil
}

// ScheduleDates returns the dates requested so far, in call order.
func (s *StubProvider) ScheduleDates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.scheduleDates...)
}

// Seasons returns the season ids requested from FetchTeamStats.
func (s *StubProvider) Seasons() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.seasons...)
}

// StubDocumentWriter is a test double for snapshots.DocumentWriter.
type StubDocumentWriter struct {
	mu      sync.Mutex
	Written []predictions.Document
	Err     error
}

// WriteDocument records the document for verification in tests.
func (w *StubDocumentWriter) WriteDocument(doc predictions.Document) (int64, error) {
	if w.Err != nil {
		return 0, w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Written = append(w.Written, doc)
	return 1, nil
}

// Last returns the most recent document written.
func (w *StubDocumentWriter) Last() (predictions.Document, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.Written) == 0 {
		return predictions.Document{}, false
	}
	return w.Written[len(w.Written)-1], true
}
