package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sanathkumarr/hitwicket-backend/internal/entity"
)

// MatchRepository archives finished matches in SQLite.
type MatchRepository interface {
	Save(ctx context.Context, record *entity.MatchRecord) error
	List(ctx context.Context, limit int) ([]entity.MatchRecord, error)
}

type dbMatch struct {
	conn *sql.DB
}

func NewMatchRepository(conn *sql.DB) MatchRepository {
	return &dbMatch{
		conn: conn,
	}
}

func (that *dbMatch) Save(ctx context.Context, record *entity.MatchRecord) error {
	historyJSON, err := json.Marshal(record.History)
	if err != nil {
		return fmt.Errorf("could not marshal history: %w", err)
	}

	query := `INSERT INTO matches (game_id, winner, moves, history, finished_at) VALUES (?, ?, ?, ?, ?)`

	if _, err = that.conn.ExecContext(ctx, query, record.GameID, record.Winner, record.Moves, string(historyJSON), record.FinishedAt); err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}

	return nil
}

func (that *dbMatch) List(ctx context.Context, limit int) ([]entity.MatchRecord, error) {
	query := `SELECT game_id, winner, moves, history, finished_at FROM matches ORDER BY id DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	records := []entity.MatchRecord{}
	for rows.Next() {
		var record entity.MatchRecord
		var historyJSON string

		if err = rows.Scan(&record.GameID, &record.Winner, &record.Moves, &historyJSON, &record.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}

		if err = json.Unmarshal([]byte(historyJSON), &record.History); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history: %w", err)
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read matches: %w", err)
	}

	return records, nil
}
