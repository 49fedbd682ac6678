package publication_test

import (
	"strings"
	"testing"
	"time"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/core/domain/model/publication"
	"ftl/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	asset, _ := kernel.NewAssetID(strings.Repeat("a", 64))
	tx, _ := kernel.NewAssetID(strings.Repeat("b", 64))
	recipients := []string{"pub-bob"}

	r, err := publication.NewRecord(kernel.NewUUID(), asset, tx, ledger.Transfer, "confirm order", recipients, time.Now())
	require.NoError(t, err)
	assert.Equal(t, ledger.Transfer, r.Operation())
	assert.Equal(t, []string{"pub-bob"}, r.Recipients())

	recipients[0] = "changed"
	assert.Equal(t, []string{"pub-bob"}, r.Recipients())
}

func TestNewRecord_Invalid(t *testing.T) {
	_, err := publication.NewRecord(kernel.UUID{}, kernel.AssetID{}, kernel.AssetID{}, ledger.Operation("BURN"), "", nil, time.Now())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "transaction_id")
}
