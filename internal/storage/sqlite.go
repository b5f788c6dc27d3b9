package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/iwvelando/flexo-savings/internal/savings"
	"github.com/iwvelando/flexo-savings/internal/session"
	"go.uber.org/zap"
)

// Fixed-width so that text order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore is a session.Store backed by the sessions table.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens dbPath, migrates it and returns a store using it.
func NewSQLiteStore(logger *zap.Logger, dbPath string) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	applied, err := Migrate(context.Background(), db)
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("session database ready",
		zap.String("op", "storage.NewSQLiteStore"),
		zap.String("path", dbPath),
		zap.Int("migrationsApplied", applied),
	)
	return &SQLiteStore{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, sess *session.Session) error {
	ledger := sess.Ledger
	if ledger == nil {
		ledger = savings.NewLedger()
	}
	ledgerJSON, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	resultsJSON, err := savings.MarshalResults(sess.Results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, name, ledger, results, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			ledger = excluded.ledger,
			results = excluded.results,
			updated_at = excluded.updated_at`,
		sess.ID,
		sess.Name,
		string(ledgerJSON),
		string(resultsJSON),
		sess.CreatedAt.UTC().Format(timeLayout),
		sess.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*session.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, ledger, results, created_at, updated_at
		FROM sessions
		WHERE id = ?`, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return sess, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if affected == 0 {
		return session.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]*session.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, ledger, results, created_at, updated_at
		FROM sessions
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows",
				zap.String("op", "storage.List"),
				zap.Error(closeErr),
			)
		}
	}()

	var list []*session.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		list = append(list, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return list, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*session.Session, error) {
	var (
		sess        session.Session
		ledgerJSON  string
		resultsJSON string
		createdAt   string
		updatedAt   string
	)
	if err := row.Scan(&sess.ID, &sess.Name, &ledgerJSON, &resultsJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	sess.Ledger = savings.NewLedger()
	if err := json.Unmarshal([]byte(ledgerJSON), sess.Ledger); err != nil {
		return nil, err
	}
	results, err := savings.UnmarshalResults([]byte(resultsJSON))
	if err != nil {
		return nil, err
	}
	sess.Results = results

	if sess.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if sess.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &sess, nil
}
