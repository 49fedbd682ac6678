package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/core/domain/model/order"
	"ftl/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransactionFetcher struct{ mock.Mock }

func (m *MockTransactionFetcher) Transactions(ctx context.Context, id kernel.AssetID) ([]ledger.Transaction, error) {
	args := m.Called(ctx, id)
	txs, _ := args.Get(0).([]ledger.Transaction)
	return txs, args.Error(1)
}

func create() ledger.Transaction {
	return ledger.Transaction{ID: "tx-create", Operation: ledger.Create}
}

func transfer(status *int) ledger.Transaction {
	return ledger.Transaction{ID: "tx-transfer", Operation: ledger.Transfer, Status: status}
}

func TestStatusEngine_FromHistory(t *testing.T) {
	engine := services.NewStatusEngine(order.Statuses, new(MockTransactionFetcher))

	tests := []struct {
		name    string
		history []ledger.Transaction
		want    order.Status
	}{
		{
			name:    "create only yields the initial status",
			history: []ledger.Transaction{create()},
			want:    order.ToBeConfirmed,
		},
		{
			name:    "latest status bearing transfer wins",
			history: []ledger.Transaction{create(), transfer(ledger.StatusCode(1)), transfer(ledger.StatusCode(2))},
			want:    order.Started,
		},
		{
			name:    "transfers without status are skipped",
			history: []ledger.Transaction{create(), transfer(ledger.StatusCode(1)), transfer(nil), transfer(nil)},
			want:    order.Confirmed,
		},
		{
			name:    "unannotated transfers fall back to the create",
			history: []ledger.Transaction{create(), transfer(nil)},
			want:    order.ToBeConfirmed,
		},
		{
			name:    "unknown code yields UNKNOWN",
			history: []ledger.Transaction{create(), transfer(ledger.StatusCode(1)), transfer(ledger.StatusCode(99))},
			want:    order.Unknown,
		},
		{
			name:    "unknown sentinel yields UNKNOWN",
			history: []ledger.Transaction{create(), transfer(ledger.StatusCode(kernel.UnknownCode))},
			want:    order.Unknown,
		},
		{
			name:    "an older unknown code is superseded",
			history: []ledger.Transaction{create(), transfer(ledger.StatusCode(99)), transfer(ledger.StatusCode(4))},
			want:    order.Rejected,
		},
		{
			name:    "empty history yields UNKNOWN",
			history: nil,
			want:    order.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.FromHistory(tt.history))
		})
	}
}

func TestStatusEngine_Resolve(t *testing.T) {
	ctx := t.Context()
	assetID, err := kernel.NewAssetID(strings.Repeat("1", 64))
	require.NoError(t, err)

	t.Run("replays the fetched history", func(t *testing.T) {
		fetcher := new(MockTransactionFetcher)
		fetcher.On("Transactions", ctx, assetID).
			Return([]ledger.Transaction{create(), transfer(ledger.StatusCode(3))}, nil).Once()

		engine := services.NewStatusEngine(order.Statuses, fetcher)
		status, err := engine.Resolve(ctx, assetID)

		require.NoError(t, err)
		assert.Equal(t, order.Completed, status)
		fetcher.AssertExpectations(t)
	})

	t.Run("every call reads the ledger again", func(t *testing.T) {
		fetcher := new(MockTransactionFetcher)
		fetcher.On("Transactions", ctx, assetID).Return([]ledger.Transaction{create()}, nil).Once()
		fetcher.On("Transactions", ctx, assetID).
			Return([]ledger.Transaction{create(), transfer(ledger.StatusCode(1))}, nil).Once()

		engine := services.NewStatusEngine(order.Statuses, fetcher)
		first, err := engine.Resolve(ctx, assetID)
		require.NoError(t, err)
		second, err := engine.Resolve(ctx, assetID)
		require.NoError(t, err)

		assert.Equal(t, order.ToBeConfirmed, first)
		assert.Equal(t, order.Confirmed, second)
		fetcher.AssertExpectations(t)
	})

	t.Run("ledger failures propagate unchanged", func(t *testing.T) {
		ledgerErr := errors.New("ledger unavailable")
		fetcher := new(MockTransactionFetcher)
		fetcher.On("Transactions", ctx, assetID).Return(nil, ledgerErr).Once()

		engine := services.NewStatusEngine(order.Statuses, fetcher)
		status, err := engine.Resolve(ctx, assetID)

		require.ErrorIs(t, err, ledgerErr)
		assert.Equal(t, order.Unknown, status)
	})
}
