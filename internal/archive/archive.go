// Package archive keeps a SQL history of priced games, one row per (date, game).
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrUnsupportedDriver is returned by Open for drivers other than sqlite and postgres.
var ErrUnsupportedDriver = errors.New("unsupported archive driver")

const schema = `CREATE TABLE IF NOT EXISTS prediction_history (
	date               TEXT             NOT NULL,
	game_id            BIGINT           NOT NULL,
	position           INTEGER          NOT NULL,
	run_id             TEXT             NOT NULL,
	home_team          TEXT             NOT NULL,
	away_team          TEXT             NOT NULL,
	start_time_utc     TEXT,
	game_time_local    TEXT,
	home_win_prob      DOUBLE PRECISION NOT NULL,
	home_american_odds INTEGER          NOT NULL,
	away_american_odds INTEGER          NOT NULL,
	recorded_at        TEXT             NOT NULL,
	PRIMARY KEY (date, game_id)
)`

const upsertResult = `INSERT INTO prediction_history (
	date, game_id, position, run_id, home_team, away_team, start_time_utc, game_time_local,
	home_win_prob, home_american_odds, away_american_odds, recorded_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (date, game_id) DO UPDATE SET
	position = excluded.position,
	run_id = excluded.run_id,
	home_team = excluded.home_team,
	away_team = excluded.away_team,
	start_time_utc = excluded.start_time_utc,
	game_time_local = excluded.game_time_local,
	home_win_prob = excluded.home_win_prob,
	home_american_odds = excluded.home_american_odds,
	away_american_odds = excluded.away_american_odds,
	recorded_at = excluded.recorded_at`

// Store records and reads prediction history.
type Store struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// Open connects to the archive and ensures the schema exists.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	switch driver {
	case DriverSQLite:
		if dsn == "" {
			return nil, errors.New("sqlite archive requires a path")
		}
		if dir := filepath.Dir(dsn); !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create archive dir: %w", err)
			}
		}
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		if dsn == "" {
			return nil, errors.New("postgres archive requires a DSN")
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(time.Hour)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db, driver: driver, now: time.Now}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores day under runID. Rows for the same date from earlier runs that the new run no
// longer lists are removed, so History always reflects the latest run.
func (s *Store) Record(ctx context.Context, runID string, day predictions.Day) error {
	if s == nil || s.db == nil {
		return errors.New("archive not configured")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	recordedAt := s.now().UTC().Format(time.RFC3339)
	upsert := s.rebind(upsertResult)
	for i, r := range day.Games {
		if _, err := tx.ExecContext(ctx, upsert,
			day.Date, r.GameID, i, runID, r.HomeTeam, r.AwayTeam,
			nullString(r.StartTimeUTC), nullString(r.LocalTime),
			r.HomeWinProb, r.HomeAmericanOdds, r.AwayAmericanOdds, recordedAt,
		); err != nil {
			return fmt.Errorf("upsert game %d: %w", r.GameID, err)
		}
	}
	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM prediction_history WHERE date = ? AND run_id <> ?`), day.Date, runID); err != nil {
		return fmt.Errorf("prune stale rows: %w", err)
	}
	return tx.Commit()
}

// History returns the latest archived results for date in schedule order.
func (s *Store) History(ctx context.Context, date string) (predictions.Day, error) {
	if s == nil || s.db == nil {
		return predictions.Day{}, errors.New("archive not configured")
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT game_id, home_team, away_team, start_time_utc, game_time_local,
	home_win_prob, home_american_odds, away_american_odds
FROM prediction_history WHERE date = ? ORDER BY position`), date)
	if err != nil {
		return predictions.Day{}, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var results []predictions.Result
	for rows.Next() {
		var (
			r          predictions.Result
			start, loc sql.NullString
		)
		if err := rows.Scan(&r.GameID, &r.HomeTeam, &r.AwayTeam, &start, &loc,
			&r.HomeWinProb, &r.HomeAmericanOdds, &r.AwayAmericanOdds); err != nil {
			return predictions.Day{}, fmt.Errorf("scan history: %w", err)
		}
		r.Date = date
		r.StartTimeUTC = start.String
		r.LocalTime = loc.String
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return predictions.Day{}, fmt.Errorf("read history: %w", err)
	}
	return predictions.NewDay(date, results), nil
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
