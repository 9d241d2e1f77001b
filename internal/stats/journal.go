// Package stats keeps an in-memory journal of food outcomes per run.
// It backs the game-over breakdown and is discarded when the process exits.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package stats

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/food-fighter/internal/game"
)

// ErrUnknownRun is returned for run IDs the journal never issued.
var ErrUnknownRun = errors.New("stats: unknown run")

// Result classifies what happened to a food.
type Result string

const (
	ResultResolved Result = "resolved" // right expression, points awarded
	ResultWrong    Result = "wrong"    // matched with the wrong action
	ResultMissed   Result = "missed"   // fell off the field
)

// Outcome is one food leaving play.
type Outcome struct {
	Kind     string
	Category string
	Result   Result
	Delta    int
}

// OutcomeFromEvent converts a game event into an outcome.
// Events that do not end a food return false.
func OutcomeFromEvent(ev game.Event) (Outcome, bool) {
	switch e := ev.(type) {
	case game.FeedbackEvent:
		r := ResultResolved
		if !e.Success {
			r = ResultWrong
		}
		return Outcome{Kind: e.Kind, Category: string(e.Category), Result: r, Delta: e.Delta}, true
	case game.MissedEvent:
		return Outcome{Kind: e.Kind, Category: string(e.Category), Result: ResultMissed, Delta: e.Delta}, true
	default:
		return Outcome{}, false
	}
}

// KindStats aggregates outcomes for one food kind within a run.
type KindStats struct {
	Kind     string
	Category string
	Resolved int
	Wrong    int
	Missed   int
	Points   int
}

// RunSummary describes one run.
type RunSummary struct {
	ID         string
	Session    string
	FinalScore int
	Finished   bool
	Foods      int
	StartedAt  time.Time
}

// Journal is an in-memory SQLite ledger shared by all games of a process.
type Journal struct {
	db *sql.DB
}

// Open creates an empty in-memory journal.
func Open() (*Journal, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("stats: cannot open database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("stats: cannot connect to database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("stats: migration failed: %w", err)
	}
	return j, nil
}

func (j *Journal) migrate() error {
	schema := `
		CREATE TABLE runs (
			id TEXT PRIMARY KEY,
			session TEXT NOT NULL,
			final_score INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE outcomes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			kind TEXT NOT NULL,
			category TEXT NOT NULL,
			result TEXT NOT NULL,
			delta INTEGER NOT NULL
		);
		CREATE INDEX idx_outcomes_run ON outcomes(run_id, kind);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Close releases the journal.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// StartRun registers a new run for session and returns its ID.
func (j *Journal) StartRun(session string) (string, error) {
	id := uuid.NewString()
	if _, err := j.db.Exec("INSERT INTO runs (id, session) VALUES (?, ?)", id, session); err != nil {
		return "", fmt.Errorf("stats: cannot start run: %w", err)
	}
	return id, nil
}

// Record appends an outcome to a run.
func (j *Journal) Record(runID string, o Outcome) error {
	if err := j.checkRun(runID); err != nil {
		return err
	}
	_, err := j.db.Exec(
		"INSERT INTO outcomes (run_id, kind, category, result, delta) VALUES (?, ?, ?, ?, ?)",
		runID, o.Kind, o.Category, string(o.Result), o.Delta,
	)
	if err != nil {
		return fmt.Errorf("stats: cannot record outcome: %w", err)
	}
	return nil
}

// FinishRun stores the final score of a run.
func (j *Journal) FinishRun(runID string, finalScore int) error {
	res, err := j.db.Exec("UPDATE runs SET final_score = ?, finished = 1 WHERE id = ?", finalScore, runID)
	if err != nil {
		return fmt.Errorf("stats: cannot finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}
	return nil
}

// Breakdown returns per-kind totals for a run, ordered by kind.
func (j *Journal) Breakdown(runID string) ([]KindStats, error) {
	if err := j.checkRun(runID); err != nil {
		return nil, err
	}

	rows, err := j.db.Query(
		`SELECT kind, category,
		        SUM(CASE WHEN result = 'resolved' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN result = 'wrong' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN result = 'missed' THEN 1 ELSE 0 END),
		        SUM(delta)
		 FROM outcomes
		 WHERE run_id = ?
		 GROUP BY kind, category
		 ORDER BY kind`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("stats: cannot query breakdown: %w", err)
	}
	defer rows.Close()

	var out []KindStats
	for rows.Next() {
		var k KindStats
		if err := rows.Scan(&k.Kind, &k.Category, &k.Resolved, &k.Wrong, &k.Missed, &k.Points); err != nil {
			return nil, fmt.Errorf("stats: cannot scan row: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats: row iteration error: %w", err)
	}
	return out, nil
}

// Run returns the summary of one run.
func (j *Journal) Run(runID string) (RunSummary, error) {
	var r RunSummary
	var finished int
	var startedAt any
	err := j.db.QueryRow(
		`SELECT r.id, r.session, r.final_score, r.finished, r.started_at,
		        (SELECT COUNT(*) FROM outcomes o WHERE o.run_id = r.id)
		 FROM runs r WHERE r.id = ?`,
		runID,
	).Scan(&r.ID, &r.Session, &r.FinalScore, &finished, &startedAt, &r.Foods)
	if errors.Is(err, sql.ErrNoRows) {
		return RunSummary{}, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}
	if err != nil {
		return RunSummary{}, fmt.Errorf("stats: cannot query run: %w", err)
	}
	r.Finished = finished != 0
	r.StartedAt = parseTime(startedAt)
	return r, nil
}

// BestScore returns the highest final score among the finished runs of a
// session, and false if the session has none.
func (j *Journal) BestScore(session string) (int, bool, error) {
	var best sql.NullInt64
	err := j.db.QueryRow(
		"SELECT MAX(final_score) FROM runs WHERE session = ? AND finished = 1",
		session,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("stats: cannot query best score: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

func (j *Journal) checkRun(runID string) error {
	var n int
	if err := j.db.QueryRow("SELECT COUNT(*) FROM runs WHERE id = ?", runID).Scan(&n); err != nil {
		return fmt.Errorf("stats: cannot look up run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
