package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type SnapshotStorage interface {
	SaveSnapshot(ctx context.Context, base CurrencyCode, fetchedAt time.Time, rates map[CurrencyCode]decimal.Decimal) error
}

// SnapshotRecorder keeps a history of live rates for one base currency.
type SnapshotRecorder struct {
	source  RateSource
	storage SnapshotStorage
	base    CurrencyCode
	now     func() time.Time
}

func NewSnapshotRecorder(source RateSource, storage SnapshotStorage, base CurrencyCode) *SnapshotRecorder {
	return &SnapshotRecorder{source: source, storage: storage, base: base, now: time.Now}
}

// Record fetches the latest rates and stores them. It returns the number of
// rates written.
func (r *SnapshotRecorder) Record(ctx context.Context) (int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	rates, err := r.source.Rates(reqCtx, r.base, Date{})
	if err != nil {
		return 0, fmt.Errorf("live rates: %w", err)
	}
	if len(rates) == 0 {
		return 0, nil
	}

	if err := r.storage.SaveSnapshot(reqCtx, r.base, r.now().UTC(), rates); err != nil {
		return 0, fmt.Errorf("save snapshot: %w", err)
	}
	return len(rates), nil
}
