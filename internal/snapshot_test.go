package internal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"service-fxrates/internal"
	"service-fxrates/internal/mock"
)

func TestSnapshotRecorder_Record(t *testing.T) {
	rates := map[internal.CurrencyCode]decimal.Decimal{"EUR": d("0.92"), "JPY": d("151.3")}

	src := mock.NewMockRateSource(t)
	src.EXPECT().Rates(testifymock.Anything, internal.CurrencyCode("USD"), internal.Date{}).Return(rates, nil).Once()

	storage := mock.NewMockSnapshotStorage(t)
	storage.EXPECT().
		SaveSnapshot(testifymock.Anything, internal.CurrencyCode("USD"), testifymock.AnythingOfType("time.Time"), rates).
		Run(func(_ context.Context, _ internal.CurrencyCode, fetchedAt time.Time, _ map[internal.CurrencyCode]decimal.Decimal) {
			assert.Equal(t, time.UTC, fetchedAt.Location())
		}).
		Return(nil).
		Once()

	n, err := internal.NewSnapshotRecorder(src, storage, "USD").Record(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSnapshotRecorder_Record_EmptyRatesNotSaved(t *testing.T) {
	src := mock.NewMockRateSource(t)
	src.EXPECT().Rates(testifymock.Anything, testifymock.Anything, testifymock.Anything).
		Return(map[internal.CurrencyCode]decimal.Decimal{}, nil).Once()
	storage := mock.NewMockSnapshotStorage(t)

	n, err := internal.NewSnapshotRecorder(src, storage, "USD").Record(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSnapshotRecorder_Record_Errors(t *testing.T) {
	t.Run("source", func(t *testing.T) {
		src := mock.NewMockRateSource(t)
		src.EXPECT().Rates(testifymock.Anything, testifymock.Anything, testifymock.Anything).
			Return(nil, internal.ConnectivityError("Failed to connect to the API, Status code: %d", 500)).Once()

		_, err := internal.NewSnapshotRecorder(src, mock.NewMockSnapshotStorage(t), "USD").Record(context.Background())

		assert.ErrorIs(t, err, internal.ErrConnectivity)
		assert.Contains(t, err.Error(), "live rates")
	})

	t.Run("storage", func(t *testing.T) {
		src := mock.NewMockRateSource(t)
		src.EXPECT().Rates(testifymock.Anything, testifymock.Anything, testifymock.Anything).
			Return(map[internal.CurrencyCode]decimal.Decimal{"EUR": d("1")}, nil).Once()
		storage := mock.NewMockSnapshotStorage(t)
		storage.EXPECT().SaveSnapshot(testifymock.Anything, testifymock.Anything, testifymock.Anything, testifymock.Anything).
			Return(errors.New("tx failed")).Once()

		_, err := internal.NewSnapshotRecorder(src, storage, "USD").Record(context.Background())

		assert.EqualError(t, err, "save snapshot: tx failed")
	})
}
