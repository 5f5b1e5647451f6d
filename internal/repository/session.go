package repository

import (
	"context"
	"errors"
	"sync"

	tl "todo_list"

	"gorm.io/gorm"
	sqlite3 "modernc.org/sqlite/lib"
)

// Store owns the connection pool to the backing store for the process lifetime.
// It is safe for concurrent use; every unit of work gets its own Session.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an opened gorm pool.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying pool for infrastructure that needs it directly
// (server-side session storage, CLI maintenance commands).
func (s *Store) DB() *gorm.DB { return s.db }

// NewSession starts an empty unit of work over the shared pool.
func (s *Store) NewSession() *Session {
	return &Session{db: s.db}
}

// Repositories returns user and todo repositories bound to one fresh session.
func (s *Store) Repositories() *Repository {
	return New(s.NewSession())
}

type opKind int

const (
	opInsert opKind = iota + 1
	opDelete
)

type stagedOp struct {
	kind   opKind
	entity any
}

// Session is a unit of work: writes are staged with Add/Remove and applied
// atomically by Commit. Reads go straight to the store through Query.
type Session struct {
	db *gorm.DB

	mu     sync.Mutex
	staged []stagedOp
}

// Add stages entity for insertion. Nothing is written until Commit.
func (s *Session) Add(entity any) {
	s.stage(stagedOp{kind: opInsert, entity: entity})
}

// Remove stages entity for deletion by primary key.
func (s *Session) Remove(entity any) {
	s.stage(stagedOp{kind: opDelete, entity: entity})
}

func (s *Session) stage(op stagedOp) {
	s.mu.Lock()
	s.staged = append(s.staged, op)
	s.mu.Unlock()
}

// Pending returns the number of staged, uncommitted changes.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.staged)
}

// Query returns a handle scoped to model for filtering and fetching rows.
func (s *Session) Query(ctx context.Context, model any) *gorm.DB {
	return s.db.WithContext(ctx).Model(model)
}

// Rollback discards every staged change.
func (s *Session) Rollback() {
	s.mu.Lock()
	s.staged = nil
	s.mu.Unlock()
}

// Commit applies all staged changes in one transaction. If the store rejects any
// of them the transaction is rolled back, the staged changes are discarded and a
// *todo_list.PersistenceError is returned.
func (s *Session) Commit(ctx context.Context) error {
	s.mu.Lock()
	ops := s.staged
	s.staged = nil
	s.mu.Unlock()

	if len(ops) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			if err := op.apply(tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &tl.PersistenceError{Kind: classify(err), Op: "commit", Err: err}
	}
	return nil
}

func (op stagedOp) apply(tx *gorm.DB) error {
	switch op.kind {
	case opInsert:
		return tx.Create(op.entity).Error
	case opDelete:
		return tx.Delete(op.entity).Error
	default:
		return errors.New("unknown staged operation")
	}
}

// sqliteCoder matches driver errors that expose an extended SQLite result code.
type sqliteCoder interface {
	Code() int
}

// classify maps a store error onto a persistence kind. gorm translates the common
// cases; the SQLite code check covers errors that reach us still wrapped.
func classify(err error) tl.PersistenceKind {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return tl.KindDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return tl.KindForeignKey
	}

	var coder sqliteCoder
	if errors.As(err, &coder) {
		switch coder.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return tl.KindDuplicate
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return tl.KindForeignKey
		}
	}
	return tl.KindStore
}
