// audit.go: Invocation audit trail for Lyra
//
// Opt-in recording of validation runs: which script was invoked, whether
// help was shown, which argument failed. Useful for operational scripts
// whose invocations must be accountable after the fact.
//
// The logger buffers events and flushes in the background; events carry a
// SHA-256 checksum for tamper detection and cached timestamps to keep the
// logging cost out of the validation path.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package lyra

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/agilira/go-timecache"
)

// AuditLevel represents the severity of audit events
type AuditLevel int

const (
	AuditInfo AuditLevel = iota
	AuditWarn
	AuditCritical
)

func (al AuditLevel) String() string {
	switch al {
	case AuditInfo:
		return "INFO"
	case AuditWarn:
		return "WARN"
	case AuditCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// AuditEvent represents a single recorded validation-run event.
type AuditEvent struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     AuditLevel             `json:"level"`
	Event     string                 `json:"event"`
	Script    string                 `json:"script"`
	Argument  string                 `json:"argument,omitempty"`
	Status    int                    `json:"status"`
	ProcessID int                    `json:"process_id"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Checksum  string                 `json:"checksum"` // For tamper detection
}

// AuditConfig configures the audit system
type AuditConfig struct {
	Enabled       bool          `json:"enabled"`
	OutputFile    string        `json:"output_file"`
	MinLevel      AuditLevel    `json:"min_level"`
	BufferSize    int           `json:"buffer_size"`
	FlushInterval time.Duration `json:"flush_interval"`
}

// DefaultAuditConfig returns the default audit configuration.
//
// An empty OutputFile selects the unified SQLite store under the system
// temp directory; a path with .jsonl extension selects append-only JSONL.
func DefaultAuditConfig() AuditConfig {
	return AuditConfig{
		Enabled:       true,
		OutputFile:    "",
		MinLevel:      AuditInfo,
		BufferSize:    64,
		FlushInterval: 2 * time.Second,
	}
}

// AuditLogger records validation-run events through a pluggable backend
// (SQLite or JSONL). All logging methods are safe on a nil receiver, so
// Options.Audit can be left unset without guards at call sites.
type AuditLogger struct {
	config      AuditConfig
	backend     auditBackend
	buffer      []AuditEvent
	bufferMu    sync.Mutex
	flushTicker *time.Ticker
	stopCh      chan struct{}
	processID   int
}

// NewAuditLogger creates an audit logger with automatic backend selection:
// SQLite when available, JSONL as fallback. The returned logger must be
// closed to flush pending events.
func NewAuditLogger(config AuditConfig) (*AuditLogger, error) {
	if config.BufferSize <= 0 {
		return nil, fmt.Errorf("audit buffer size must be positive")
	}

	backend, err := createAuditBackend(config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audit backend: %w", err)
	}

	logger := &AuditLogger{
		config:    config,
		backend:   backend,
		buffer:    make([]AuditEvent, 0, config.BufferSize),
		stopCh:    make(chan struct{}),
		processID: os.Getpid(),
	}

	if config.FlushInterval > 0 {
		logger.flushTicker = time.NewTicker(config.FlushInterval)
		go logger.flushLoop()
	}

	return logger, nil
}

// Log records an audit event. No-op on a nil or disabled logger.
func (al *AuditLogger) Log(level AuditLevel, event, script, argument string, status int, context map[string]interface{}) {
	if al == nil || al.backend == nil || !al.config.Enabled || level < al.config.MinLevel {
		return
	}

	// Cached timestamp keeps logging off the validation hot path
	auditEvent := AuditEvent{
		Timestamp: timecache.CachedTime(),
		Level:     level,
		Event:     event,
		Script:    script,
		Argument:  argument,
		Status:    status,
		ProcessID: al.processID,
		Context:   context,
	}
	auditEvent.Checksum = generateChecksum(auditEvent)

	al.bufferMu.Lock()
	al.buffer = append(al.buffer, auditEvent)
	if len(al.buffer) >= al.config.BufferSize {
		_ = al.flushBufferUnsafe() // Keep buffering cheap; errors surface on explicit Flush
	}
	al.bufferMu.Unlock()
}

// LogValidated records a successful validation run.
func (al *AuditLogger) LogValidated(script string, argumentCount int) {
	al.Log(AuditInfo, "args_validated", script, "", 0,
		map[string]interface{}{"arguments": argumentCount})
}

// LogHelpShown records a help display (clean halt).
func (al *AuditLogger) LogHelpShown(script string) {
	al.Log(AuditInfo, "help_shown", script, "", 0, nil)
}

// LogValidationFailure records the first failing argument of a run.
func (al *AuditLogger) LogValidationFailure(script, argument string) {
	al.Log(AuditWarn, "validation_failed", script, argument, 1, nil)
}

// Flush immediately writes all buffered events
func (al *AuditLogger) Flush() error {
	if al == nil {
		return nil
	}
	al.bufferMu.Lock()
	defer al.bufferMu.Unlock()
	return al.flushBufferUnsafe()
}

// Close gracefully shuts down the audit logger, flushing pending events.
func (al *AuditLogger) Close() error {
	if al == nil {
		return nil
	}
	close(al.stopCh)
	if al.flushTicker != nil {
		al.flushTicker.Stop()
	}

	if err := al.Flush(); err != nil {
		return fmt.Errorf("failed to flush audit logger during close: %w", err)
	}
	if al.backend != nil {
		if err := al.backend.Close(); err != nil {
			return fmt.Errorf("failed to close audit backend: %w", err)
		}
	}
	return nil
}

// flushLoop runs the background flush process
func (al *AuditLogger) flushLoop() {
	for {
		select {
		case <-al.flushTicker.C:
			_ = al.Flush()
		case <-al.stopCh:
			return
		}
	}
}

// flushBufferUnsafe writes the buffer to the backend (caller holds bufferMu).
func (al *AuditLogger) flushBufferUnsafe() error {
	if len(al.buffer) == 0 {
		return nil
	}
	if err := al.backend.Write(al.buffer); err != nil {
		return fmt.Errorf("failed to write audit events to backend: %w", err)
	}
	al.buffer = al.buffer[:0]
	return nil
}

// generateChecksum creates a tamper-detection checksum using SHA-256
func generateChecksum(event AuditEvent) string {
	data := fmt.Sprintf("%s:%s:%s:%s:%d",
		event.Timestamp.Format(time.RFC3339Nano),
		event.Event, event.Script, event.Argument, event.Status)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
