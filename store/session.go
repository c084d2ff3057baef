package store

import (
	"context"
	"fmt"
	"time"

	"github.com/kcmvp/urlq"
)

// Store keeps the current address of every session, one row per session.
// Writing an address replaces the previous one; no history is kept.
type Store struct {
	db DB
	d  dialect
}

// New returns a Store on db. driver selects the SQL dialect and must be one of
// sqlite3, mysql or postgres.
func New(db DB, driver string) (*Store, error) {
	d, err := dialectOf(driver)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, d: d}, nil
}

// Default returns a Store on the default datasource of the application configuration.
func Default() (*Store, error) {
	db, driver, err := DefaultDS()
	if err != nil {
		return nil, err
	}
	return New(db, driver)
}

// Migrate creates the location table when it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.d.createTable); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}
	return nil
}

// Session returns the location of session id. home is the address used until the
// session has one stored.
func (s *Store) Session(ctx context.Context, id, home string) *Session {
	return &Session{ctx: ctx, store: s, id: id, home: home}
}

func (s *Store) load(ctx context.Context, id string) (href, title string, found bool, err error) {
	rows, err := s.db.QueryContext(ctx, s.d.selectOne, id)
	if err != nil {
		return "", "", false, fmt.Errorf("load session %q: %w", id, err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&href, &title); err != nil {
			return "", "", false, fmt.Errorf("scan session %q: %w", id, err)
		}
		found = true
	}
	if err := rows.Err(); err != nil {
		return "", "", false, fmt.Errorf("load session %q: %w", id, err)
	}
	return href, title, found, nil
}

func (s *Store) save(ctx context.Context, id, href, title string) error {
	if _, err := s.db.ExecContext(ctx, s.d.upsert, id, href, title, time.Now().UTC()); err != nil {
		return fmt.Errorf("save session %q: %w", id, err)
	}
	return nil
}

// Session is the stored location of one session. It reads and replaces the
// address the way a browser tab does and is meant for a single caller.
type Session struct {
	ctx   context.Context
	store *Store
	id    string
	home  string
	last  *urlq.Location
}

var _ urlq.ReadWriter = (*Session)(nil)

// Location returns the stored location, or the home location when none is stored.
func (s *Session) Location() (urlq.Location, error) {
	href, title, found, err := s.store.load(s.ctx, s.id)
	if err != nil {
		return urlq.Location{}, err
	}
	if !found {
		href, title = s.home, ""
	}
	loc := urlq.ParseLocation(href)
	loc.Title = title
	s.last = &loc
	return loc, nil
}

// Replace stores the address obtained by applying suffix to the location last read.
func (s *Session) Replace(suffix, title string) error {
	if s.last == nil {
		if _, err := s.Location(); err != nil {
			return err
		}
	}
	href := urlq.Resolve(*s.last, suffix)
	if err := s.store.save(s.ctx, s.id, href, title); err != nil {
		return err
	}
	loc := urlq.ParseLocation(href)
	loc.Title = title
	s.last = &loc
	return nil
}

// Href returns the stored address of the session.
func (s *Session) Href() (string, error) {
	href, _, found, err := s.store.load(s.ctx, s.id)
	if err != nil {
		return "", err
	}
	if !found {
		return s.home, nil
	}
	return href, nil
}
