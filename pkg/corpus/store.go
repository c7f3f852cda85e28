package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
	"unicode/utf8"
)

var (
	// ErrNotFound is returned when a named text is not in the corpus.
	ErrNotFound = errors.New("corpus: text not found")
	// ErrInvalidText is returned for an empty name or body.
	ErrInvalidText = errors.New("corpus: name and body must not be empty")
)

// Info holds the metadata of a stored text.
type Info struct {
	Id      int
	Name    string
	Symbols int // The number of runes in the body.
	AddedAt time.Time
}

// Text is a stored training text together with its metadata.
type Text struct {
	Info
	Body string
}

// SetupSchema initializes the corpus table in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const schemaTexts = `
CREATE TABLE IF NOT EXISTS corpus_texts (
    text_id   INTEGER PRIMARY KEY,
    text_name TEXT NOT NULL UNIQUE,
    body      TEXT NOT NULL,
    symbols   INTEGER NOT NULL,
    added_at  DATETIME NOT NULL
);
`
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaTexts); err != nil {
		return fmt.Errorf("could not create corpus schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Store is a library of already-cleaned training texts kept in SQLite. It
// holds prepared statements for its queries.
type Store struct {
	db          *sql.DB
	stmtInsert  *sql.Stmt
	stmtGet     *sql.Stmt
	stmtList    *sql.Stmt
	stmtRemove  *sql.Stmt
	stmtCount   *sql.Stmt
	stmtSymbols *sql.Stmt
	logger      *slog.Logger
}

// NewStore prepares all statements against db, which must already have the
// schema from SetupSchema. If any statement fails to prepare, the ones already
// prepared are closed.
func NewStore(db *sql.DB) (s *Store, err error) {
	var prepared []*sql.Stmt
	defer func() {
		if err != nil {
			for _, stmt := range prepared {
				_ = stmt.Close()
			}
		}
	}()
	prepare := func(query string) (*sql.Stmt, error) {
		stmt, err := db.Prepare(query)
		if err != nil {
			return nil, fmt.Errorf("could not prepare %q: %w", query, err)
		}
		prepared = append(prepared, stmt)
		return stmt, nil
	}

	s = &Store{
		db:     db,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if s.stmtInsert, err = prepare(`INSERT INTO corpus_texts (text_name, body, symbols, added_at) VALUES (?, ?, ?, ?) RETURNING text_id;`); err != nil {
		return nil, err
	}
	if s.stmtGet, err = prepare(`SELECT text_id, text_name, body, symbols, added_at FROM corpus_texts WHERE text_name = ?;`); err != nil {
		return nil, err
	}
	if s.stmtList, err = prepare(`SELECT text_id, text_name, symbols, added_at FROM corpus_texts ORDER BY text_name;`); err != nil {
		return nil, err
	}
	if s.stmtRemove, err = prepare(`DELETE FROM corpus_texts WHERE text_name = ?;`); err != nil {
		return nil, err
	}
	if s.stmtCount, err = prepare(`SELECT COUNT(*) FROM corpus_texts;`); err != nil {
		return nil, err
	}
	if s.stmtSymbols, err = prepare(`SELECT coalesce(SUM(symbols), 0) FROM corpus_texts;`); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases all prepared SQL statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtInsert.Close()
	_ = s.stmtGet.Close()
	_ = s.stmtList.Close()
	_ = s.stmtRemove.Close()
	_ = s.stmtCount.Close()
	_ = s.stmtSymbols.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Add stores a new text under name. Adding a name that already exists is an
// error.
func (s *Store) Add(ctx context.Context, name, body string) (Info, error) {
	if name == "" || body == "" {
		return Info{}, ErrInvalidText
	}
	info := Info{
		Name:    name,
		Symbols: utf8.RuneCountInString(body),
		AddedAt: time.Now().UTC(),
	}
	if err := s.stmtInsert.QueryRowContext(ctx, name, body, info.Symbols, info.AddedAt).Scan(&info.Id); err != nil {
		return Info{}, fmt.Errorf("could not add text '%s': %w", name, err)
	}

	s.logger.InfoContext(ctx, "Text added",
		slog.String("text_name", name),
		slog.Int("text_id", info.Id),
		slog.Int("symbols", info.Symbols),
	)
	return info, nil
}

// Append adds body to the end of the named text, creating the text if it
// does not exist yet. The operation is performed within a transaction.
func (s *Store) Append(ctx context.Context, name, body string) (Info, error) {
	if name == "" || body == "" {
		return Info{}, ErrInvalidText
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Info{}, fmt.Errorf("could not begin transaction for append: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	var info Info
	var existing string
	err = tx.StmtContext(ctx, s.stmtGet).QueryRowContext(ctx, name).Scan(&info.Id, &info.Name, &existing, &info.Symbols, &info.AddedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		info = Info{Name: name, Symbols: utf8.RuneCountInString(body), AddedAt: time.Now().UTC()}
		if err = tx.StmtContext(ctx, s.stmtInsert).QueryRowContext(ctx, name, body, info.Symbols, info.AddedAt).Scan(&info.Id); err != nil {
			return Info{}, fmt.Errorf("could not add text '%s': %w", name, err)
		}
	case err != nil:
		return Info{}, fmt.Errorf("could not read text '%s': %w", name, err)
	default:
		info.Symbols += utf8.RuneCountInString(body)
		if _, err = tx.ExecContext(ctx, `UPDATE corpus_texts SET body = ?, symbols = ? WHERE text_id = ?`, existing+body, info.Symbols, info.Id); err != nil {
			return Info{}, fmt.Errorf("could not append to text '%s': %w", name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return Info{}, err
	}

	s.logger.InfoContext(ctx, "Text appended",
		slog.String("text_name", name),
		slog.Int("text_id", info.Id),
		slog.Int("symbols", info.Symbols),
	)
	return info, nil
}

// Get returns the named text, or ErrNotFound.
func (s *Store) Get(ctx context.Context, name string) (Text, error) {
	var text Text
	err := s.stmtGet.QueryRowContext(ctx, name).Scan(&text.Id, &text.Name, &text.Body, &text.Symbols, &text.AddedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Text{}, fmt.Errorf("%w: '%s'", ErrNotFound, name)
		}
		return Text{}, fmt.Errorf("could not get text '%s': %w", name, err)
	}
	return text, nil
}

// List returns the metadata of every stored text, ordered by name.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	infos := make([]Info, 0)
	for rows.Next() {
		var info Info
		if err = rows.Scan(&info.Id, &info.Name, &info.Symbols, &info.AddedAt); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// Remove deletes the named text, or returns ErrNotFound.
func (s *Store) Remove(ctx context.Context, name string) error {
	res, err := s.stmtRemove.ExecContext(ctx, name)
	if err != nil {
		return fmt.Errorf("could not remove text '%s': %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: '%s'", ErrNotFound, name)
	}

	s.logger.InfoContext(ctx, "Text removed", slog.String("text_name", name))
	return nil
}

// Each calls fn with every named text, in the given order. With no names it
// visits every stored text ordered by name. It stops at the first error.
func (s *Store) Each(ctx context.Context, names []string, fn func(Text) error) error {
	if len(names) == 0 {
		infos, err := s.List(ctx)
		if err != nil {
			return err
		}
		for _, info := range infos {
			names = append(names, info.Name)
		}
	}

	for _, name := range names {
		text, err := s.Get(ctx, name)
		if err != nil {
			return err
		}
		if err = fn(text); err != nil {
			return fmt.Errorf("text '%s': %w", name, err)
		}
	}
	return nil
}
