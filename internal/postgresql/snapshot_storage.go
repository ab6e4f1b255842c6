package postgresql

import (
	"context"
	"fmt"
	"service-fxrates/internal"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type SnapshotStorage struct {
	pgpool *pgxpool.Pool
}

func NewSnapshotStorage(pgpool *pgxpool.Pool) *SnapshotStorage {
	return &SnapshotStorage{pgpool: pgpool}
}

func (s *SnapshotStorage) SaveSnapshot(
	ctx context.Context,
	base internal.CurrencyCode,
	fetchedAt time.Time,
	rates map[internal.CurrencyCode]decimal.Decimal,
) error {
	baseStr := strings.ToUpper(strings.TrimSpace(base.String()))
	if baseStr == "" {
		return fmt.Errorf("base currency is empty")
	}
	if fetchedAt.IsZero() {
		return fmt.Errorf("fetched_at is empty")
	}

	quotes := make([]string, 0, len(rates))
	for quote := range rates {
		quotes = append(quotes, string(quote))
	}
	sort.Strings(quotes)

	batch := &pgx.Batch{}
	for _, quote := range quotes {
		quoteStr := strings.ToUpper(strings.TrimSpace(quote))
		if quoteStr == "" || quoteStr == baseStr {
			continue
		}
		rate := rates[internal.CurrencyCode(quote)]
		batch.Queue(`
insert into rate_snapshot (base_ccy, quote_ccy, rate, fetched_at)
values ($1, $2, $3::numeric, $4)
on conflict (base_ccy, quote_ccy, fetched_at)
do update set rate = excluded.rate;
`, baseStr, quoteStr, rate.String(), fetchedAt)
	}
	if batch.Len() == 0 {
		return nil
	}

	tx, err := s.pgpool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert snapshot %s @%s: %w", baseStr, fetchedAt.Format(time.RFC3339), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Latest returns the most recent stored snapshot for base.
func (s *SnapshotStorage) Latest(ctx context.Context, base internal.CurrencyCode) (time.Time, map[internal.CurrencyCode]decimal.Decimal, error) {
	baseStr := strings.ToUpper(strings.TrimSpace(base.String()))

	rows, err := s.pgpool.Query(ctx, `
select quote_ccy, rate::text, fetched_at
from rate_snapshot
where base_ccy = $1
  and fetched_at = (select max(fetched_at) from rate_snapshot where base_ccy = $1);
`, baseStr)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	defer rows.Close()

	var fetchedAt time.Time
	out := map[internal.CurrencyCode]decimal.Decimal{}
	for rows.Next() {
		var qRaw, rateText string
		if err := rows.Scan(&qRaw, &rateText, &fetchedAt); err != nil {
			return time.Time{}, nil, fmt.Errorf("scan: %w", err)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(rateText))
		if err != nil {
			return time.Time{}, nil, fmt.Errorf("parse rate %s/%s=%q: %w", baseStr, qRaw, rateText, err)
		}
		out[internal.CurrencyCode(strings.TrimSpace(qRaw))] = rate
	}
	return fetchedAt, out, rows.Err()
}
