package wordid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRoundTrip(t *testing.T) {
	id, err := Make(3, 12345)
	require.NoError(t, err)
	assert.Equal(t, 3, Dic(id))
	assert.Equal(t, 12345, Word(id))
}

func TestMakeDicOutOfRange(t *testing.T) {
	_, err := Make(15, 0)
	assert.Error(t, err)
	_, err = Make(-1, 0)
	assert.Error(t, err)
}

func TestMakeWordOutOfRange(t *testing.T) {
	_, err := Make(0, 0x10000000)
	assert.Error(t, err)
}

func TestMakeWordBoundary(t *testing.T) {
	for dic := 0; dic < 15; dic++ {
		id, err := Make(dic, 0)
		require.NoError(t, err)
		assert.Equal(t, dic, Dic(id))
	}
}

func TestAbsent(t *testing.T) {
	assert.True(t, IsAbsent(Absent))
	id, _ := Make(0, 0)
	assert.False(t, IsAbsent(id))
}
