package iointernal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/sixelcat/internal/errors"
	"github.com/srlehn/sixelcat/internal/iointernal"
)

func TestAccumulatorOrder(t *testing.T) {
	acc := iointernal.NewAccumulator(0)
	accept := acc.WriteFunc()
	for _, c := range []string{"\033Pq", `#0;2;0;0;0`, "\033\\"} {
		require.NoError(t, accept([]byte(c)))
	}
	assert.Equal(t, "\033Pq#0;2;0;0;0\033\\", string(acc.Bytes()))
	assert.Equal(t, 3, acc.Chunks())
}

func TestAccumulatorCopiesChunks(t *testing.T) {
	acc := iointernal.NewAccumulator(0)
	chunk := []byte(`abc`)
	require.NoError(t, acc.AcceptChunk(chunk))
	chunk[0] = 'x'
	assert.Equal(t, `abc`, string(acc.Bytes()))
}

func TestAccumulatorEmptyChunk(t *testing.T) {
	acc := iointernal.NewAccumulator(0)
	require.NoError(t, acc.AcceptChunk(nil))
	assert.Equal(t, 0, acc.Len())
	assert.Equal(t, 1, acc.Chunks())
}

func TestAccumulatorLimitIsAllOrNothing(t *testing.T) {
	acc := iointernal.NewAccumulator(5)
	require.NoError(t, acc.AcceptChunk([]byte(`abc`)))

	err := acc.AcceptChunk([]byte(`def`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOutputLimit))
	assert.Equal(t, `abc`, string(acc.Bytes()), `rejected chunk must not be partially appended`)

	require.NoError(t, acc.AcceptChunk([]byte(`de`)))
	assert.Equal(t, `abcde`, string(acc.Bytes()))
}

func TestAccumulatorReset(t *testing.T) {
	acc := iointernal.NewAccumulator(0)
	require.NoError(t, acc.AcceptChunk([]byte(`partial`)))
	acc.Reset()
	assert.Equal(t, 0, acc.Len())
	assert.Equal(t, 0, acc.Chunks())
}

func TestAccumulatorNilReceiver(t *testing.T) {
	var acc *iointernal.Accumulator
	assert.Error(t, acc.AcceptChunk([]byte(`x`)))
	assert.Nil(t, acc.Bytes())
}
