package metrics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type migration struct {
	id   int
	name string
	sql  string
}

var migrations = []migration{
	{
		id:   1,
		name: "initial_schema",
		sql: `
			CREATE TABLE agent_configs (
				experiment TEXT NOT NULL,
				id INTEGER NOT NULL,
				algorithm TEXT NOT NULL,
				depth INTEGER NOT NULL,
				max_transfers INTEGER NOT NULL,
				PRIMARY KEY (experiment, id)
			);

			CREATE TABLE games (
				id TEXT PRIMARY KEY,
				experiment TEXT NOT NULL,
				agent1 INTEGER NOT NULL,
				agent2 INTEGER NOT NULL,
				starting_player INTEGER NOT NULL,
				winner INTEGER NOT NULL,
				start_time DATETIME NOT NULL,
				end_time DATETIME NOT NULL,
				duration_ns INTEGER NOT NULL,
				turns INTEGER NOT NULL,
				moves INTEGER NOT NULL
			);

			CREATE TABLE moves (
				game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
				turn INTEGER NOT NULL,
				step INTEGER NOT NULL,
				player INTEGER NOT NULL,
				action TEXT NOT NULL,
				algorithm TEXT NOT NULL,
				depth INTEGER NOT NULL,
				posture TEXT NOT NULL,
				duration_ns INTEGER NOT NULL,
				simulated_turns INTEGER NOT NULL,
				evaluations INTEGER NOT NULL,
				pruned INTEGER NOT NULL,
				PRIMARY KEY (game_id, turn, player, step)
			);
		`,
	},
}

// Store keeps experiment results in a SQLite file so several runs can be queried together.
type Store struct {
	conn *sql.DB
}

// OpenStore opens or creates the database at path and brings its schema up to date.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		var count int
		if err := s.conn.QueryRow("SELECT COUNT(*) FROM migrations WHERE id = ?", m.id).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := s.runMigration(m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.id, m.name, err)
		}
	}
	return nil
}

func (s *Store) runMigration(m migration) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.sql); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO migrations (id, name) VALUES (?, ?)", m.id, m.name); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) SaveAgentConfigs(experiment string, configs []AgentConfig) error {
	for _, c := range configs {
		_, err := s.conn.Exec(`
			INSERT OR REPLACE INTO agent_configs (experiment, id, algorithm, depth, max_transfers)
			VALUES (?, ?, ?, ?, ?)`,
			experiment, c.ID, c.Algorithm, c.Depth, c.MaxTransfers)
		if err != nil {
			return fmt.Errorf("failed to save agent config %d: %w", c.ID, err)
		}
	}
	return nil
}

// SaveGame stores a game together with its moves in one transaction.
func (s *Store) SaveGame(experiment string, game GameRecord, moves []MoveRecord) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO games (id, experiment, agent1, agent2, starting_player, winner, start_time, end_time, duration_ns, turns, moves)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.ID, experiment, game.Agent1, game.Agent2, game.StartingPlayer, game.Winner,
		game.StartTime.UTC(), game.EndTime.UTC(), int64(game.Duration), game.TotalTurns, game.TotalMoves)
	if err != nil {
		return fmt.Errorf("failed to save game %s: %w", game.ID, err)
	}

	for _, m := range moves {
		_, err = tx.Exec(`
			INSERT INTO moves (game_id, turn, step, player, action, algorithm, depth, posture, duration_ns, simulated_turns, evaluations, pruned)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.Game, m.Turn, m.Step, m.Player, m.Action, m.Algorithm, m.Depth, m.Posture,
			int64(m.Duration), m.SimulatedTurns, m.Evaluations, m.Pruned)
		if err != nil {
			return fmt.Errorf("failed to save move %d/%d of game %s: %w", m.Turn, m.Step, m.Game, err)
		}
	}
	return tx.Commit()
}

// Games returns the stored games of an experiment, oldest first.
func (s *Store) Games(experiment string) ([]GameRecord, error) {
	rows, err := s.conn.Query(`
		SELECT id, agent1, agent2, starting_player, winner, start_time, end_time, duration_ns, turns, moves
		FROM games WHERE experiment = ? ORDER BY start_time, id`, experiment)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var (
			g        GameRecord
			duration int64
		)
		err := rows.Scan(&g.ID, &g.Agent1, &g.Agent2, &g.StartingPlayer, &g.Winner,
			&g.StartTime, &g.EndTime, &duration, &g.TotalTurns, &g.TotalMoves)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		g.Duration = time.Duration(duration)
		games = append(games, g)
	}
	return games, rows.Err()
}

// Wins counts the games each agent config won in an experiment. Agent1 plays as player 1.
func (s *Store) Wins(experiment string) (map[int]int, error) {
	rows, err := s.conn.Query(`
		SELECT CASE winner WHEN 1 THEN agent1 ELSE agent2 END AS agent, COUNT(*)
		FROM games WHERE experiment = ? AND winner != 0
		GROUP BY agent`, experiment)
	if err != nil {
		return nil, fmt.Errorf("failed to query wins: %w", err)
	}
	defer rows.Close()

	wins := make(map[int]int)
	for rows.Next() {
		var agent, count int
		if err := rows.Scan(&agent, &count); err != nil {
			return nil, fmt.Errorf("failed to scan wins: %w", err)
		}
		wins[agent] = count
	}
	return wins, rows.Err()
}
