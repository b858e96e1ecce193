package logs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // repository assumes sqlite

	"github.com/pactician/pactician/ai"
)

type Repository struct {
	db *sqlx.DB

	insert *sqlx.NamedStmt
}

// Decision is one logged move. Features holds the chosen action's
// non-zero features as a JSON object.
type Decision struct {
	Game     string    `db:"game"`
	Turn     int       `db:"turn"`
	Agent    int       `db:"agent"`
	Role     string    `db:"role"`
	Action   string    `db:"action"`
	Value    int64     `db:"value"`
	Features string    `db:"features"`
	Time     time.Time `db:"time"`
}

// NewDecision flattens d for storage.
func NewDecision(game string, turn, agent int, d *ai.Decision) (*Decision, error) {
	out := &Decision{
		Game:     game,
		Turn:     turn,
		Agent:    agent,
		Role:     d.Role.String(),
		Action:   d.Action.String(),
		Value:    d.Value,
		Features: "{}",
		Time:     time.Now().UTC(),
	}
	for _, sc := range d.Scores {
		if sc.Action != d.Action {
			continue
		}
		bs, err := json.Marshal(sc.Features)
		if err != nil {
			return nil, err
		}
		out.Features = string(bs)
		break
	}
	return out, nil
}

// Game summarizes the decisions logged under one game id.
type Game struct {
	Game    string `db:"game"`
	Agents  int    `db:"agents"`
	Turns   int    `db:"turns"`
	Attacks int    `db:"attacks"`
	Started string `db:"started"`
}

// Count is how often an agent chose action while in role.
type Count struct {
	Agent  int    `db:"agent"`
	Role   string `db:"role"`
	Action string `db:"action"`
	Count  int    `db:"count"`
}

func Open(db string) (*Repository, error) {
	sql, err := sqlx.Open("sqlite3", db)
	if err != nil {
		return nil, err
	}
	_, err = sql.Exec(createDecisionTable)
	if err != nil {
		sql.Close()
		return nil, fmt.Errorf("create decisions table: %w", err)
	}
	_, err = sql.Exec(createGameView)
	if err != nil {
		sql.Close()
		return nil, fmt.Errorf("create games view: %w", err)
	}

	repo := &Repository{db: sql}
	repo.insert, err = sql.PrepareNamed(insertStmt)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("prepare: %w", err)
	}
	return repo, nil
}

func (r *Repository) InsertDecision(d *Decision) error {
	_, err := r.insert.Exec(d)
	return err
}

// InsertDecisions writes ds in a single transaction.
func (r *Repository) InsertDecisions(ds []*Decision) error {
	txn, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer txn.Rollback()
	stmt := txn.NamedStmt(r.insert)
	for _, d := range ds {
		if _, e := stmt.Exec(d); e != nil {
			return e
		}
	}
	return txn.Commit()
}

func (r *Repository) Games() ([]Game, error) {
	var out []Game
	if err := r.db.Select(&out, selectGames); err != nil {
		return nil, err
	}
	return out, nil
}

// Summary counts the role and action choices made in game.
func (r *Repository) Summary(game string) ([]Count, error) {
	var out []Count
	if err := r.db.Select(&out, selectSummary, game); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Decisions(game string) ([]Decision, error) {
	var out []Decision
	if err := r.db.Select(&out, selectDecisions, game); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Close() {
	if r.insert != nil {
		r.insert.Close()
	}
	r.db.Close()
}
