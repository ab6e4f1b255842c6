package internal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// AuditRecord describes one handled API request. Route is the path template
// the request matched; Path is what the caller actually sent.
type AuditRecord struct {
	RequestID string
	Route     string
	Path      string
	Status    int
	DateAsOf  *Date
}

func (r AuditRecord) normalize() AuditRecord {
	r.Path = auditPath(r.Path)
	r.Route = strings.TrimSpace(r.Route)
	if r.Route == "" {
		r.Route = "unmatched"
	}
	r.RequestID = strings.TrimSpace(r.RequestID)
	if r.DateAsOf != nil && r.DateAsOf.IsZero() {
		r.DateAsOf = nil
	}
	return r
}

type RequestAuditLogger interface {
	LogRequest(ctx context.Context, rec AuditRecord) error
}

type AuditLogStorage interface {
	Insert(ctx context.Context, rec AuditRecord) error
}

func NewStorageAuditLogger(storage AuditLogStorage) *StorageAuditLogger {
	return &StorageAuditLogger{auditLogStorage: storage}
}

type StorageAuditLogger struct {
	auditLogStorage AuditLogStorage
}

func (l *StorageAuditLogger) LogRequest(ctx context.Context, rec AuditRecord) error {
	if err := l.auditLogStorage.Insert(ctx, rec.normalize()); err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

// SlogAuditLogger writes audit records to a logger when no database is configured.
type SlogAuditLogger struct {
	log *slog.Logger
}

func NewSlogAuditLogger(log *slog.Logger) *SlogAuditLogger {
	return &SlogAuditLogger{log: log}
}

func (l *SlogAuditLogger) LogRequest(ctx context.Context, rec AuditRecord) error {
	rec = rec.normalize()
	attrs := []any{
		slog.String("request_id", rec.RequestID),
		slog.String("route", rec.Route),
		slog.String("path", rec.Path),
		slog.Int("status", rec.Status),
	}
	if rec.DateAsOf != nil {
		attrs = append(attrs, slog.String("date_as_of", rec.DateAsOf.String()))
	}
	l.log.InfoContext(ctx, "audit", attrs...)
	return nil
}

func auditPath(endpoint string) string {
	p := strings.Trim(strings.TrimSpace(endpoint), "/")
	if p == "" {
		return "unknown"
	}
	return p
}
