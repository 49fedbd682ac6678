package setting_test

import (
	"strings"
	"testing"

	"ftl/internal/core/domain/model/setting"
	"ftl/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSetting(t *testing.T) {
	shape := strings.Repeat("5", 64)

	s, err := setting.NewSetting(setting.OrderShape, shape)
	require.NoError(t, err)
	assert.Equal(t, "order_shape", s.Name())

	id, err := s.ShapeID()
	require.NoError(t, err)
	assert.Equal(t, shape, id.String())

	_, err = setting.NewSetting("bad name", "x")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = setting.NewSetting(setting.EventShape, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestSetting_ShapeIDRejectsNonAssetValues(t *testing.T) {
	s, err := setting.NewSetting(setting.EventShape, "not-an-asset")
	require.NoError(t, err)

	_, err = s.ShapeID()
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
