package repo

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testHistory(t *testing.T, storage Storage) *History {
	t.Helper()
	h, err := NewHistory(zaptest.NewLogger(t), HistoryWithStorage(storage), HistoryWithLimit(2))
	require.NoError(t, err)
	return h
}

func TestHistoryCurrent(t *testing.T) {
	for name, storage := range testStorages(t) {
		t.Run(name, func(t *testing.T) {
			h := testHistory(t, storage)

			_, err := h.Current(t.Context())
			require.ErrorIs(t, err, os.ErrNotExist)

			require.NoError(t, h.Add(t.Context(), []byte(`[]`)))
			require.NoError(t, h.Add(t.Context(), []byte(`[{"path":"blog/x"}]`)))

			data, err := h.Current(t.Context())
			require.NoError(t, err)
			assert.JSONEq(t, `[{"path":"blog/x"}]`, string(data))
		})
	}
}

func TestHistoryCleanup(t *testing.T) {
	for name, storage := range testStorages(t) {
		t.Run(name, func(t *testing.T) {
			h := testHistory(t, storage)
			start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			i := 0
			h.now = func() time.Time {
				i++
				return start.Add(time.Duration(i) * time.Millisecond)
			}
			for n := 0; n < 20; n++ {
				require.NoError(t, h.Add(t.Context(), []byte(fmt.Sprint(n))))
			}

			keys, err := h.backups(t.Context())
			require.NoError(t, err)
			require.Len(t, keys, 2)
			// newest first
			assert.Equal(t, HistoryPrefix+"20240101T000000.020000000Z"+HistorySuffix, keys[0])
			assert.Equal(t, HistoryPrefix+"20240101T000000.019000000Z"+HistorySuffix, keys[1])

			data, err := h.Current(t.Context())
			require.NoError(t, err)
			assert.Equal(t, "19", string(data))
		})
	}
}

func TestHistoryDefaultStorage(t *testing.T) {
	dir := t.TempDir()
	h, err := NewHistory(zaptest.NewLogger(t), HistoryWithDir(dir))
	require.NoError(t, err)
	require.NoError(t, h.Add(t.Context(), []byte(`[]`)))

	_, err = os.Stat(dir + "/" + CurrentKey)
	require.NoError(t, err)
	require.NoError(t, h.Close())
}
