// Package store keeps carousel content documents in a local sqlite database
// and serves as persistence collaborator of the editor.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"carousel/persist"
)

// ErrNotFound is returned when requested draft does not exist.
var ErrNotFound = errors.New("draft not found")

const schema = `CREATE TABLE IF NOT EXISTS drafts (
	id       TEXT PRIMARY KEY,
	document BLOB NOT NULL,
	updated  INTEGER NOT NULL
)`

// Draft describes stored document.
type Draft struct {
	ID      string
	Updated time.Time
}

// Store is sqlite backed draft storage. Connection is shared, calls are
// serialized.
type Store struct {
	log  *zap.Logger
	now  func() time.Time
	mu   sync.Mutex
	conn *sqlite.Conn
}

// Open opens or creates database at path. Use ":memory:" for transient
// storage.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	flags := sqlite.OpenReadWrite | sqlite.OpenCreate
	if path == ":memory:" {
		flags |= sqlite.OpenMemory
	} else {
		flags |= sqlite.OpenWAL
	}
	conn, err := sqlite.OpenConn(path, flags)
	if err != nil {
		return nil, fmt.Errorf("unable to open draft store %q: %w", path, err)
	}
	if err := sqlitex.ExecuteTransient(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare draft store schema: %w", err)
	}
	return &Store{log: log.Named("store"), now: time.Now, conn: conn}, nil
}

// Close closes database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// Save implements persist.Saver. Documents without id get fresh one.
func (s *Store) Save(ctx context.Context, doc *persist.Document) error {
	if doc.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("unable to generate draft id: %w", err)
		}
		doc.ID = id.String()
	}
	data, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("unable to encode draft %s: %w", doc.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return errors.New("draft store is closed")
	}
	s.conn.SetInterrupt(ctx.Done())
	defer s.conn.SetInterrupt(nil)

	err = sqlitex.Execute(s.conn,
		`INSERT INTO drafts (id, document, updated) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET document = excluded.document, updated = excluded.updated`,
		&sqlitex.ExecOptions{Args: []any{doc.ID, data, s.now().UnixNano()}})
	if err != nil {
		return fmt.Errorf("unable to save draft %s: %w", doc.ID, err)
	}
	s.log.Debug("Draft saved", zap.String("id", doc.ID), zap.Int("size", len(data)))
	return nil
}

// Load returns stored document.
func (s *Store) Load(ctx context.Context, id string) (*persist.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil, errors.New("draft store is closed")
	}
	s.conn.SetInterrupt(ctx.Done())
	defer s.conn.SetInterrupt(nil)

	var (
		data  []byte
		found bool
	)
	err := sqlitex.Execute(s.conn, `SELECT document FROM drafts WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				data = make([]byte, stmt.ColumnLen(0))
				stmt.ColumnBytes(0, data)
				found = true
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("unable to load draft %s: %w", id, err)
	}
	if !found {
		return nil, fmt.Errorf("draft %s: %w", id, ErrNotFound)
	}
	doc, err := persist.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("draft %s: %w", id, err)
	}
	return doc, nil
}

// List returns stored drafts, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil, errors.New("draft store is closed")
	}
	s.conn.SetInterrupt(ctx.Done())
	defer s.conn.SetInterrupt(nil)

	var out []Draft
	err := sqlitex.Execute(s.conn, `SELECT id, updated FROM drafts ORDER BY updated DESC, id`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			out = append(out, Draft{ID: stmt.ColumnText(0), Updated: time.Unix(0, stmt.ColumnInt64(1))})
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("unable to list drafts: %w", err)
	}
	return out, nil
}

// Delete removes draft.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return errors.New("draft store is closed")
	}
	s.conn.SetInterrupt(ctx.Done())
	defer s.conn.SetInterrupt(nil)

	if err := sqlitex.Execute(s.conn, `DELETE FROM drafts WHERE id = ?`, &sqlitex.ExecOptions{Args: []any{id}}); err != nil {
		return fmt.Errorf("unable to delete draft %s: %w", id, err)
	}
	if s.conn.Changes() == 0 {
		return fmt.Errorf("draft %s: %w", id, ErrNotFound)
	}
	return nil
}
