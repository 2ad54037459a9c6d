package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDrops(t *testing.T) {
	assert.Equal(t, "1.5 XRP", FormatDrops("1500000"))
	assert.Equal(t, "0.000001 XRP", FormatDrops("1"))
	assert.Equal(t, "150 XRP", FormatDrops("150000000"))
	assert.Equal(t, "0 XRP", FormatDrops(""))
	assert.Equal(t, "0 XRP", FormatDrops("abc"))
}

func TestXRPToDrops(t *testing.T) {
	drops, err := XRPToDrops("1.5")
	require.NoError(t, err)
	assert.Equal(t, "1500000", drops)

	drops, err = XRPToDrops("0.000001")
	require.NoError(t, err)
	assert.Equal(t, "1", drops)

	_, err = XRPToDrops("0.0000001")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = XRPToDrops("-1")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = XRPToDrops("ten")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestTruncateMiddle(t *testing.T) {
	assert.Equal(t, "short", TruncateMiddle("short", 10))
	assert.Equal(t, "rABCD...WXYZ", TruncateMiddle("rABCDEFGHIJKLMNOPQRSTUVWXYZ", 9))
	assert.Equal(t, "abc", TruncateMiddle("abc", 0))
}
