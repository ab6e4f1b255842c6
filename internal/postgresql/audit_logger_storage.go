package postgresql

import (
	"context"
	"fmt"
	"service-fxrates/internal"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RequestLogStorage appends API audit records to request_log.
type RequestLogStorage struct {
	pgpool *pgxpool.Pool
}

func NewRequestLogStorage(pgpool *pgxpool.Pool) *RequestLogStorage {
	return &RequestLogStorage{pgpool: pgpool}
}

func (s *RequestLogStorage) Insert(ctx context.Context, rec internal.AuditRecord) error {
	_, err := s.pgpool.Exec(ctx, `
insert into request_log (request_id, route, path, status, date_as_of)
values (nullif($1, ''), $2, $3, $4, $5::date);
`, rec.RequestID, rec.Route, rec.Path, rec.Status, asOfDate(rec.DateAsOf))
	if err != nil {
		return fmt.Errorf("insert request_log %s %d: %w", rec.Route, rec.Status, err)
	}
	return nil
}

func asOfDate(d *internal.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := internal.DateOf(d.Time).Time
	return &t
}
