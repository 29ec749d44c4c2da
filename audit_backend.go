// audit_backend.go: Storage backends for the Lyra audit trail
//
// Defines the pluggable backend seam for audit persistence with two
// implementations: a queryable SQLite store (WAL mode, batched inserts)
// and an append-only JSONL file for grep-able, shippable logs.
//
// Backend selection degrades gracefully: SQLite first, JSONL fallback, so
// audit logging never prevents a script from starting.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package lyra

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver registration
)

// auditBackend abstracts audit storage so backends can be swapped without
// touching the logger. The contract is minimal: batch write, durability
// flush, final close.
type auditBackend interface {
	// Write persists a batch of audit events. Safe for concurrent use.
	Write(events []AuditEvent) error

	// Flush ensures all pending writes are committed to storage.
	Flush() error

	// Close releases all resources; the backend must not be used after.
	Close() error
}

// createAuditBackend selects the backend for the given configuration:
// explicit .jsonl paths get the JSONL backend, everything else tries
// SQLite first and falls back to JSONL.
func createAuditBackend(config AuditConfig) (auditBackend, error) {
	if config.OutputFile != "" && filepath.Ext(config.OutputFile) == ".jsonl" {
		return newJSONLBackend(config)
	}

	backend, err := newSQLiteBackend(config)
	if err == nil {
		return backend, nil
	}

	jsonlBackend, jsonlErr := newJSONLBackend(config)
	if jsonlErr != nil {
		return nil, fmt.Errorf("all audit backends failed - SQLite: %w, JSONL: %v", err, jsonlErr)
	}
	return jsonlBackend, nil
}

// defaultAuditDBPath is the unified SQLite store used when no OutputFile
// is configured, consolidating events from every Lyra-using script on the
// host into one queryable database.
func defaultAuditDBPath() string {
	return filepath.Join(os.TempDir(), "lyra", "invocations.db")
}

// sqliteAuditBackend persists audit events in a single SQLite database.
type sqliteAuditBackend struct {
	db         *sql.DB
	dbPath     string
	insertStmt *sql.Stmt
	mu         sync.Mutex
	closed     bool
}

// newSQLiteBackend opens (creating if needed) the SQLite audit store and
// prepares the batch insert statement. WAL mode keeps concurrent script
// invocations from blocking each other.
func newSQLiteBackend(config AuditConfig) (*sqliteAuditBackend, error) {
	dbPath := config.OutputFile
	if dbPath == "" || filepath.Ext(dbPath) != ".db" {
		dbPath = defaultAuditDBPath()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create audit database directory: %w", err)
	}

	db, err := sql.Open("sqlite3",
		fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping audit database: %w", err)
	}

	backend := &sqliteAuditBackend{db: db, dbPath: dbPath}
	if err := backend.initializeSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize audit schema: %w", err)
	}
	if err := backend.prepareStatements(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare audit statements: %w", err)
	}
	return backend, nil
}

// initializeSchema creates the invocation table and query indexes.
func (s *sqliteAuditBackend) initializeSchema() error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS invocation_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		level TEXT NOT NULL,
		event TEXT NOT NULL,
		script TEXT NOT NULL,
		argument TEXT,
		status INTEGER NOT NULL,
		process_id INTEGER NOT NULL,
		context TEXT,
		checksum TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := s.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create invocation_events table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_invocation_timestamp ON invocation_events(timestamp)",
		"CREATE INDEX IF NOT EXISTS idx_invocation_script ON invocation_events(script)",
		"CREATE INDEX IF NOT EXISTS idx_invocation_event ON invocation_events(event, script)",
	}
	for _, indexSQL := range indexes {
		if _, err := s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create audit index: %w", err)
		}
	}
	return nil
}

// prepareStatements prepares the insert statement used for batch writes.
func (s *sqliteAuditBackend) prepareStatements() error {
	insertSQL := `
	INSERT INTO invocation_events (
		timestamp, level, event, script, argument, status, process_id, context, checksum
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := s.db.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	s.insertStmt = stmt
	return nil
}

// Write persists a batch of events inside a single transaction.
func (s *sqliteAuditBackend) Write(events []AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("cannot write to closed SQLite audit backend")
	}
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin audit transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txStmt := tx.Stmt(s.insertStmt)
	defer func() {
		_ = txStmt.Close()
	}()

	for _, event := range events {
		contextJSON := ""
		if event.Context != nil {
			data, marshalErr := json.Marshal(event.Context)
			if marshalErr != nil {
				err = fmt.Errorf("failed to serialize audit context: %w", marshalErr)
				return err
			}
			contextJSON = string(data)
		}

		_, err = txStmt.Exec(
			event.Timestamp.Format(time.RFC3339Nano),
			event.Level.String(),
			event.Event,
			event.Script,
			event.Argument,
			event.Status,
			event.ProcessID,
			contextJSON,
			event.Checksum,
		)
		if err != nil {
			return fmt.Errorf("failed to insert audit event: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit audit transaction: %w", err)
	}
	return nil
}

// Flush forces a WAL checkpoint so recent transactions are durable.
func (s *sqliteAuditBackend) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("failed to flush SQLite audit backend: %w", err)
	}
	return nil
}

// EventCount returns the number of recorded events for a script, or for
// all scripts when script is empty. Exposed for the lyra CLI.
func (s *sqliteAuditBackend) EventCount(script string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, fmt.Errorf("cannot query closed SQLite audit backend")
	}

	var count int64
	var err error
	if script == "" {
		err = s.db.QueryRow("SELECT COUNT(*) FROM invocation_events").Scan(&count)
	} else {
		err = s.db.QueryRow("SELECT COUNT(*) FROM invocation_events WHERE script = ?", script).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count audit events: %w", err)
	}
	return count, nil
}

// Close flushes and releases the statement and connection. Safe to call
// multiple times.
func (s *sqliteAuditBackend) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if err := s.Flush(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true

	if s.insertStmt != nil {
		if err := s.insertStmt.Close(); err != nil {
			return fmt.Errorf("failed to close insert statement: %w", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("failed to close audit database: %w", err)
		}
	}
	return nil
}

// jsonlAuditBackend appends audit events as one JSON object per line.
type jsonlAuditBackend struct {
	file   *os.File
	mu     sync.Mutex
	closed bool
}

// newJSONLBackend opens the JSONL audit file for appending with
// owner-only permissions.
func newJSONLBackend(config AuditConfig) (*jsonlAuditBackend, error) {
	if config.OutputFile == "" {
		return nil, fmt.Errorf("JSONL backend requires OutputFile to be specified")
	}
	if err := os.MkdirAll(filepath.Dir(config.OutputFile), 0750); err != nil {
		return nil, fmt.Errorf("failed to create JSONL audit log directory: %w", err)
	}

	file, err := os.OpenFile(config.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSONL audit log file: %w", err)
	}
	return &jsonlAuditBackend{file: file}, nil
}

// Write appends each event as a JSON line.
func (j *jsonlAuditBackend) Write(events []AuditEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return fmt.Errorf("cannot write to closed JSONL audit backend")
	}

	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to serialize audit event: %w", err)
		}
		if _, err := j.file.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write audit event to JSONL: %w", err)
		}
	}
	return nil
}

// Flush fsyncs the JSONL file.
func (j *jsonlAuditBackend) Flush() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync JSONL audit file: %w", err)
	}
	return nil
}

// Close closes the JSONL file. Safe to call multiple times.
func (j *jsonlAuditBackend) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true
	if j.file != nil {
		return j.file.Close()
	}
	return nil
}
