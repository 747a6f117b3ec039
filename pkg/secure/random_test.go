package secure

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureRandom(t *testing.T) {
	for _, size := range []int{16, 32, 64, 128} {
		data, err := SecureRandom(size)
		require.NoError(t, err)
		assert.Len(t, data, size)

		data2, err := SecureRandom(size)
		require.NoError(t, err)
		assert.NotEqual(t, data, data2, "Random data should be different")
	}

	data, err := SecureRandom(0)
	assert.NoError(t, err)
	assert.Empty(t, data)
}

func TestSyncReader(t *testing.T) {
	source := bytes.Repeat([]byte{0x01}, 1000)
	sr := NewSyncReader(bytes.NewReader(source))

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, 100)
			n, err := io.ReadFull(sr, buf)
			assert.NoError(t, err)
			mu.Lock()
			total += n
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, len(source), total)

	_, err := sr.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)
}

func TestNewSyncReaderDoesNotDoubleWrap(t *testing.T) {
	sr := NewSyncReader(bytes.NewReader(nil))
	assert.Same(t, sr, NewSyncReader(sr))
}
