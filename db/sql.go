package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"

	"puissance4/games"
)

type scoreRow struct {
	bun.BaseModel `bun:"table:connect4_scores,alias:s"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Player1Wins int       `bun:"player1_wins,notnull"`
	Player2Wins int       `bun:"player2_wins,notnull"`
	Draws       int       `bun:"draws,notnull"`
	PlayedAt    time.Time `bun:"played_at,notnull,default:current_timestamp"`
}

// SQLStore keeps score records in the connect4_scores table.
type SQLStore struct {
	db *bun.DB
}

// OpenPostgres connects with pgdriver and makes sure the table exists.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return newSQLStore(ctx, bun.NewDB(sqldb, pgdialect.New()))
}

// OpenSQLite opens a SQLite database through bun's sqliteshim driver and makes
// sure the table exists.
func OpenSQLite(ctx context.Context, dsn string) (*SQLStore, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite serializes writers anyway.
	sqldb.SetMaxOpenConns(1)
	return newSQLStore(ctx, bun.NewDB(sqldb, sqlitedialect.New()))
}

func newSQLStore(ctx context.Context, db *bun.DB) (*SQLStore, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping score store: %w", err)
	}

	_, err := db.NewCreateTable().
		Model((*scoreRow)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create score table: %w", err)
	}

	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Append(ctx context.Context, rec ScoreRecord) error {
	row := &scoreRow{
		Player1Wins: rec.Player1Wins,
		Player2Wins: rec.Player2Wins,
		Draws:       rec.Draws,
		PlayedAt:    rec.PlayedAt,
	}
	if row.PlayedAt.IsZero() {
		row.PlayedAt = time.Now().UTC()
	}

	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (s *SQLStore) Summary(ctx context.Context) (games.Summary, error) {
	var summary games.Summary

	err := s.db.NewSelect().
		Model((*scoreRow)(nil)).
		ColumnExpr("COALESCE(SUM(?), 0) AS p1_total", bun.Ident("player1_wins")).
		ColumnExpr("COALESCE(SUM(?), 0) AS p2_total", bun.Ident("player2_wins")).
		ColumnExpr("COALESCE(SUM(?), 0) AS draws_total", bun.Ident("draws")).
		ColumnExpr("COUNT(*) AS games").
		Scan(ctx, &summary)
	if err != nil {
		return games.Summary{}, fmt.Errorf("sum scores: %w", err)
	}
	return summary, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
