package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/model"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrUnknownTable is returned for tables the database does not have.
	ErrUnknownTable = errors.New("store: unknown table")
)

var (
	_ forms.Saver        = (*Store)(nil)
	_ forms.ChoiceSource = (*Store)(nil)
)

// Record is one stored row keyed by column name.
type Record map[string]any

// ID returns the row id.
func (r Record) ID() int64 {
	id, _ := r["id"].(int64)
	return id
}

// Option configures Open.
type Option func(*Store)

// WithLogger sets the logger used for schema and save events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPoolSize sets the number of pooled connections. Values below one
// are ignored.
func WithPoolSize(size int) Option {
	return func(s *Store) {
		if size > 0 {
			s.poolSize = size
		}
	}
}

// Store is a SQLite backed record store. It is safe for concurrent use.
type Store struct {
	pool     *sqlitex.Pool
	logger   *slog.Logger
	path     string
	poolSize int

	mu     sync.Mutex
	tables map[string]bool
}

// Open opens (creating when missing) the database at path.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("store: path is required")
	}
	s := &Store{
		path:     path,
		poolSize: 4,
		tables:   make(map[string]bool),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if path == ":memory:" {
		// Every in-memory connection is its own database.
		s.poolSize = 1
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize:    s.poolSize,
		PrepareConn: prepareConn,
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	s.pool = pool

	// Take once so a bad path fails here rather than on first use.
	conn, err := s.take(ctx)
	if err != nil {
		_ = pool.Close()
		return nil, err
	}
	s.pool.Put(conn)

	s.logger.DebugContext(ctx, "store opened", slog.String("path", path), slog.Int("pool_size", s.poolSize))
	return s, nil
}

func prepareConn(conn *sqlite.Conn) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("store: %s: %w", pragma, err)
		}
	}
	return nil
}

// Close releases every pooled connection.
func (s *Store) Close() error {
	if err := s.pool.Close(); err != nil {
		return fmt.Errorf("store: close %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) take(ctx context.Context) (*sqlite.Conn, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: take connection: %w", err)
	}
	return conn, nil
}

// EnsureSchema creates the tables schema needs when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context, schema model.Schema) error {
	if err := schema.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	conn, err := s.take(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)
	return s.ensureSchema(ctx, conn, schema)
}

func (s *Store) ensureSchema(ctx context.Context, conn *sqlite.Conn, schema model.Schema) error {
	table := schema.TableName()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tables[table] {
		return nil
	}
	if err := sqlitex.ExecuteScript(conn, createScript(schema), nil); err != nil {
		return fmt.Errorf("store: create %q: %w", table, err)
	}
	s.tables[table] = true
	s.logger.DebugContext(ctx, "table ready", slog.String("table", table))
	return nil
}

// Save inserts data as a new row of schema's table and returns its id.
// Many-to-many values become join rows in the same transaction, so a
// failure leaves nothing behind.
func (s *Store) Save(ctx context.Context, schema model.Schema, data map[string]any) (id int64, err error) {
	if err := schema.Validate(); err != nil {
		return 0, fmt.Errorf("store: %w", err)
	}
	conn, err := s.take(ctx)
	if err != nil {
		return 0, err
	}
	defer s.pool.Put(conn)

	if err := s.ensureSchema(ctx, conn, schema); err != nil {
		return 0, err
	}

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return 0, fmt.Errorf("store: begin transaction: %w", err)
	}
	defer endTransaction(&err)

	query, args, err := insertStatement(schema, data)
	if err != nil {
		return 0, err
	}
	if err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{Args: args}); err != nil {
		return 0, fmt.Errorf("store: insert %q: %w", schema.TableName(), err)
	}
	id = conn.LastInsertRowID()

	for _, col := range schema.Columns {
		if col.Kind != model.KindManyToMany {
			continue
		}
		targets, convErr := relatedIDs(col, data[col.Name])
		if convErr != nil {
			err = convErr
			return 0, err
		}
		join := joinTable(schema, col)
		for _, target := range targets {
			err = sqlitex.Execute(conn,
				"INSERT INTO "+quote(join)+" (source_id, target_id) VALUES (?, ?)",
				&sqlitex.ExecOptions{Args: []any{id, target}})
			if err != nil {
				return 0, fmt.Errorf("store: link %q: %w", join, err)
			}
		}
	}

	s.logger.InfoContext(ctx, "record saved", slog.String("table", schema.TableName()), slog.Int64("id", id))
	return id, nil
}

// Count returns the number of rows in table.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	conn, err := s.take(ctx)
	if err != nil {
		return 0, err
	}
	defer s.pool.Put(conn)

	if err := checkTable(conn, table); err != nil {
		return 0, err
	}
	var count int64
	err = sqlitex.Execute(conn, "SELECT count(*) FROM "+quote(table), &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			count = stmt.ColumnInt64(0)
			return nil
		},
	})
	if err != nil {
		return 0, fmt.Errorf("store: count %q: %w", table, err)
	}
	return count, nil
}

// List returns every row of table ordered by id.
func (s *Store) List(ctx context.Context, table string) ([]Record, error) {
	conn, err := s.take(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	if err := checkTable(conn, table); err != nil {
		return nil, err
	}
	var records []Record
	err = sqlitex.Execute(conn, "SELECT * FROM "+quote(table)+" ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			records = append(records, scanRecord(stmt))
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: list %q: %w", table, err)
	}
	return records, nil
}

// Get returns the row of table with id.
func (s *Store) Get(ctx context.Context, table string, id int64) (Record, error) {
	conn, err := s.take(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	if err := checkTable(conn, table); err != nil {
		return nil, err
	}
	var record Record
	err = sqlitex.Execute(conn, "SELECT * FROM "+quote(table)+" WHERE id = ?", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			record = scanRecord(stmt)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: get %q: %w", table, err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: %s #%d", ErrNotFound, table, id)
	}
	return record, nil
}

// Related returns the target ids linked to the row id through the
// many-to-many column of schema.
func (s *Store) Related(ctx context.Context, schema model.Schema, column string, id int64) ([]int64, error) {
	col, ok := schema.Column(column)
	if !ok || col.Kind != model.KindManyToMany {
		return nil, fmt.Errorf("store: %q is not a many-to-many column of %q", column, schema.Name)
	}
	conn, err := s.take(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	join := joinTable(schema, col)
	if err := checkTable(conn, join); err != nil {
		return nil, err
	}
	var ids []int64
	err = sqlitex.Execute(conn, "SELECT target_id FROM "+quote(join)+" WHERE source_id = ? ORDER BY target_id", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			ids = append(ids, stmt.ColumnInt64(0))
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: related %q: %w", join, err)
	}
	return ids, nil
}

// Choices lists the rows of table as form choices. The value is the row id
// and the label the first descriptive column found, falling back to
// "<table> #<id>".
func (s *Store) Choices(ctx context.Context, table string) ([]forms.Choice, error) {
	records, err := s.List(ctx, table)
	if err != nil {
		return nil, err
	}
	choices := make([]forms.Choice, 0, len(records))
	for _, record := range records {
		id := strconv.FormatInt(record.ID(), 10)
		choices = append(choices, forms.Choice{Value: id, Label: recordLabel(table, id, record)})
	}
	return choices, nil
}

var labelColumns = []string{"name", "title", "label", "username", "email", "item"}

func recordLabel(table, id string, record Record) string {
	for _, key := range labelColumns {
		if value, ok := record[key]; ok && value != nil {
			if text := fmt.Sprint(value); text != "" {
				return text
			}
		}
	}
	return table + " #" + id
}

func checkTable(conn *sqlite.Conn, table string) error {
	found := false
	err := sqlitex.Execute(conn, "SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?", &sqlitex.ExecOptions{
		Args: []any{table},
		ResultFunc: func(*sqlite.Stmt) error {
			found = true
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("store: lookup %q: %w", table, err)
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return nil
}

func scanRecord(stmt *sqlite.Stmt) Record {
	record := make(Record, stmt.ColumnCount())
	for i := 0; i < stmt.ColumnCount(); i++ {
		name := stmt.ColumnName(i)
		switch stmt.ColumnType(i) {
		case sqlite.TypeNull:
			record[name] = nil
		case sqlite.TypeInteger:
			record[name] = stmt.ColumnInt64(i)
		case sqlite.TypeFloat:
			record[name] = stmt.ColumnFloat(i)
		case sqlite.TypeBlob:
			buf := make([]byte, stmt.ColumnLen(i))
			stmt.ColumnBytes(i, buf)
			record[name] = buf
		default:
			record[name] = stmt.ColumnText(i)
		}
	}
	return record
}
