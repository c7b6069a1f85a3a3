package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/yetrix/config"
	"github.com/plus3/yetrix/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSlot(t *testing.T, slot store.Slot) {
	t.Helper()
	ctx := context.Background()

	_, err := slot.Read(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, slot.Write(ctx, []byte(`{"score":10}`)))
	got, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"score":10}`, string(got))

	require.NoError(t, slot.Write(ctx, []byte(`{"score":25}`)))
	got, err = slot.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"score":25}`, string(got))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, slot.Write(cancelled, []byte("x")), context.Canceled)
	_, err = slot.Read(cancelled)
	assert.ErrorIs(t, err, context.Canceled)

	require.NoError(t, slot.Close())
}

func TestMemory(t *testing.T) {
	m := store.NewMemory()
	testSlot(t, m)
	assert.Equal(t, 2, m.Writes())

	t.Run("read returns a copy", func(t *testing.T) {
		m := store.NewMemory()
		require.NoError(t, m.Write(context.Background(), []byte("abc")))
		got, _ := m.Read(context.Background())
		got[0] = 'z'
		again, _ := m.Read(context.Background())
		assert.Equal(t, "abc", string(again))
	})
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	f, err := store.NewFile(filepath.Join(dir, "saves", "yetrix.save"), "0")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "saves", "yetrix.save.0"), f.Path())
	testSlot(t, f)

	t.Run("content is compressed", func(t *testing.T) {
		f, err := store.NewFile(filepath.Join(dir, "plain"), "")
		require.NoError(t, err)
		defer f.Close()

		payload := []byte(`{"blocks":{}}`)
		require.NoError(t, f.Write(context.Background(), payload))
		raw, err := os.ReadFile(f.Path())
		require.NoError(t, err)
		assert.NotEqual(t, payload, raw)
		assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, raw[:4])
	})

	t.Run("garbage is an error, not a panic", func(t *testing.T) {
		path := filepath.Join(dir, "garbage")
		require.NoError(t, os.WriteFile(path, []byte("not zstd"), 0o644))
		f, err := store.NewFile(path, "")
		require.NoError(t, err)
		defer f.Close()

		_, err = f.Read(context.Background())
		require.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("no leftover temp files", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Join(dir, "saves"))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestBadger(t *testing.T) {
	t.Run("on disk", func(t *testing.T) {
		b, err := store.OpenBadger(t.TempDir(), "0")
		require.NoError(t, err)
		testSlot(t, b)
	})

	t.Run("in memory", func(t *testing.T) {
		b, err := store.OpenBadgerInMemory("0")
		require.NoError(t, err)
		testSlot(t, b)
	})

	t.Run("slots sharing a database are independent", func(t *testing.T) {
		owner, err := store.OpenBadgerInMemory("a")
		require.NoError(t, err)
		defer owner.Close()

		other := owner.Sibling("b")
		ctx := context.Background()
		require.NoError(t, owner.Write(ctx, []byte("a")))
		_, err = other.Read(ctx)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, other.Write(ctx, []byte("b")))
		got, err := owner.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, "a", string(got))
		require.NoError(t, other.Close())

		got, err = owner.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, "a", string(got))
	})
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{"memory", "file", "badger"} {
		t.Run(backend, func(t *testing.T) {
			slot, err := store.Open(config.SaveConfig{
				Backend: backend,
				Path:    filepath.Join(dir, backend),
				Slot:    "0",
			})
			require.NoError(t, err)
			testSlot(t, slot)
		})
	}

	_, err := store.Open(config.SaveConfig{Backend: "tape"})
	assert.Error(t, err)
}
