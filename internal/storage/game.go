package storage

import (
	"database/sql"
	"fmt"
)

// RecordNewGame asynchronously records a new game
func (s *Store) RecordNewGame(record GameRecord) error {
	return s.enqueue("game record", func(tx *sql.Tx) error {
		query := `INSERT INTO games (
			game_id, white_player_id, black_player_id, status, start_time_utc
		) VALUES (?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.WhitePlayerID, record.BlackPlayerID,
			record.Status, record.StartTimeUTC,
		)
		return err
	})
}

// RecordState asynchronously journals an accepted state
func (s *Store) RecordState(record StateRecord) error {
	return s.enqueue("state record", func(tx *sql.Tx) error {
		query := `INSERT INTO states (
			game_id, move_count, state_json, player_color, move_time_utc
		) VALUES (?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.MoveCount, record.StateJSON,
			record.PlayerColor, record.MoveTimeUTC,
		)
		return err
	})
}

// UpdateGameSeats asynchronously updates the seat assignments after a join
func (s *Store) UpdateGameSeats(gameID, whiteID, blackID string) error {
	return s.enqueue("seat update", func(tx *sql.Tx) error {
		query := `UPDATE games SET white_player_id = ?, black_player_id = ? WHERE game_id = ?`
		_, err := tx.Exec(query, whiteID, blackID, gameID)
		return err
	})
}

// UpdateGameStatus asynchronously updates a game's lifecycle status
func (s *Store) UpdateGameStatus(gameID, status string) error {
	return s.enqueue("status update", func(tx *sql.Tx) error {
		query := `UPDATE games SET status = ? WHERE game_id = ?`
		_, err := tx.Exec(query, status, gameID)
		return err
	})
}

// DeleteGameRecords asynchronously removes a game and its journal
func (s *Store) DeleteGameRecords(gameID string) error {
	return s.enqueue("game deletion", func(tx *sql.Tx) error {
		// states go with it via ON DELETE CASCADE
		query := `DELETE FROM games WHERE game_id = ?`
		_, err := tx.Exec(query, gameID)
		return err
	})
}

// QueryGames retrieves games with optional filtering
func (s *Store) QueryGames(gameID, playerID string) ([]GameRecord, error) {
	query := `SELECT game_id, white_player_id, black_player_id, status, start_time_utc
	FROM games WHERE 1=1`

	var args []any

	if gameID != "" && gameID != "*" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}

	if playerID != "" && playerID != "*" {
		query += " AND (white_player_id = ? OR black_player_id = ?)"
		args = append(args, playerID, playerID)
	}

	query += " ORDER BY start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		err := rows.Scan(&g.GameID, &g.WhitePlayerID, &g.BlackPlayerID, &g.Status, &g.StartTimeUTC)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return games, nil
}

// QueryStates retrieves a game's journal in move order
func (s *Store) QueryStates(gameID string) ([]StateRecord, error) {
	query := `SELECT state_id, game_id, move_count, state_json, player_color, move_time_utc
	FROM states WHERE game_id = ? ORDER BY move_count ASC`

	rows, err := s.db.Query(query, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var states []StateRecord
	for rows.Next() {
		var r StateRecord
		err := rows.Scan(&r.StateID, &r.GameID, &r.MoveCount, &r.StateJSON, &r.PlayerColor, &r.MoveTimeUTC)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		states = append(states, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return states, nil
}

// LatestState retrieves the most recent journaled state for a game
func (s *Store) LatestState(gameID string) (*StateRecord, error) {
	query := `SELECT state_id, game_id, move_count, state_json, player_color, move_time_utc
	FROM states WHERE game_id = ? ORDER BY move_count DESC LIMIT 1`

	var r StateRecord
	err := s.db.QueryRow(query, gameID).Scan(
		&r.StateID, &r.GameID, &r.MoveCount, &r.StateJSON, &r.PlayerColor, &r.MoveTimeUTC,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
