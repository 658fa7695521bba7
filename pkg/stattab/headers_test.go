package stattab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/stattab/pkg/errors"
)

func TestNewHeaderRegistry(t *testing.T) {
	reg, err := newHeaderRegistry([]Header{
		{Key: "loss", Name: "train loss"},
		{Key: "acc"},
	})
	require.NoError(t, err)

	require.Equal(t, 2, reg.len())

	loss, ok := reg.get("loss")
	require.True(t, ok)
	assert.Equal(t, 0, loss.index)
	assert.Equal(t, "train loss", loss.name)
	assert.Equal(t, len("train loss"), loss.minWidth)

	// empty display name falls back to the key
	acc, ok := reg.get("acc")
	require.True(t, ok)
	assert.Equal(t, 1, acc.index)
	assert.Equal(t, "acc", acc.name)
	assert.Equal(t, 3, acc.minWidth)
}

func TestNewHeaderRegistryDuplicateKey(t *testing.T) {
	_, err := newHeaderRegistry(Columns("h1", "h1"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateHeader))
}

func TestNewHeaderRegistryEmptyKey(t *testing.T) {
	_, err := newHeaderRegistry([]Header{{Key: ""}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestColumns(t *testing.T) {
	headers := Columns("h1", "h2")
	assert.Equal(t, []Header{{Key: "h1", Name: "h1"}, {Key: "h2", Name: "h2"}}, headers)
}

func TestRename(t *testing.T) {
	reg, err := newHeaderRegistry(Columns("h1", "h2"))
	require.NoError(t, err)

	require.NoError(t, reg.rename(map[string]string{"h1": "epoch"}))
	h1, _ := reg.get("h1")
	assert.Equal(t, "epoch", h1.name)
	assert.Equal(t, 5, h1.minWidth, "minWidth grows to the longer name")

	// shorter name keeps the grown width
	require.NoError(t, reg.rename(map[string]string{"h1": "e"}))
	assert.Equal(t, "e", h1.name)
	assert.Equal(t, 5, h1.minWidth)
}

func TestRenameUnknownKeyLeavesRegistryUntouched(t *testing.T) {
	reg, err := newHeaderRegistry(Columns("h1", "h2"))
	require.NoError(t, err)

	err = reg.rename(map[string]string{"h1": "epoch", "nope": "X"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownHeader))

	// even the valid pair must not have been applied
	h1, _ := reg.get("h1")
	assert.Equal(t, "h1", h1.name)
	assert.Equal(t, 2, h1.minWidth)
}

func TestGrowToFitMonotonic(t *testing.T) {
	reg, err := newHeaderRegistry(Columns("h1"))
	require.NoError(t, err)
	entry, _ := reg.get("h1")

	assert.True(t, entry.growToFit("12345"))
	assert.Equal(t, 5, entry.minWidth)

	assert.False(t, entry.growToFit("123"))
	assert.Equal(t, 5, entry.minWidth, "minWidth never shrinks")

	assert.False(t, entry.growToFit("12345"))
	assert.Equal(t, 5, entry.minWidth)
}
