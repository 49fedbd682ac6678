package event_test

import (
	"strings"
	"testing"
	"time"

	"ftl/internal/core/domain/model/event"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	assetID, err := kernel.NewAssetID(strings.Repeat("c", 64))
	require.NoError(t, err)
	place, err := kernel.NewPlace("Gouda")
	require.NoError(t, err)
	at := time.Date(2019, 4, 1, 10, 30, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		e, err := event.NewEvent(assetID, at, place, event.Position)
		require.NoError(t, err)
		require.NoError(t, e.Validate())
		assert.Equal(t, event.Position, e.Milestone())
		assert.True(t, e.OrderAssetID().Equal(assetID))
		assert.Equal(t, "Gouda", e.Place().String())
		assert.Equal(t, at, e.Time())
	})

	t.Run("unknown milestone", func(t *testing.T) {
		_, err := event.NewEvent(assetID, at, place, event.Milestone(7))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := event.NewEvent(kernel.AssetID{}, time.Time{}, kernel.Place{}, event.Load)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "order_asset_id")
		assert.Contains(t, err.Error(), "time")
		assert.Contains(t, err.Error(), "place")
	})
}
