package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/findex/pkg/types"
)

// writeFile creates a file of the given size, creating parent directories
func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", size)), 0644))
}

func TestDirSize_Empty(t *testing.T) {
	assert.Equal(t, uint64(0), DirSize(t.TempDir()))
}

func TestDirSize_FlatFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), 10)
	writeFile(t, filepath.Join(dir, "b.txt"), 20)
	writeFile(t, filepath.Join(dir, "c.txt"), 30)

	assert.Equal(t, uint64(60), DirSize(dir))
}

func TestDirSize_Nested(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), 5)
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), 7)
	writeFile(t, filepath.Join(dir, "sub", "deeper", "c.txt"), 11)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0755))

	assert.Equal(t, uint64(23), DirSize(dir))
	assert.Equal(t, uint64(18), DirSize(filepath.Join(dir, "sub")))
	assert.Equal(t, uint64(0), DirSize(filepath.Join(dir, "empty")))
}

func TestDirSize_Missing(t *testing.T) {
	assert.Equal(t, uint64(0), DirSize(filepath.Join(t.TempDir(), "nope")))
}

func TestDirSize_SkipsUnreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.txt"), 4)
	locked := filepath.Join(dir, "locked")
	writeFile(t, filepath.Join(locked, "hidden.txt"), 100)
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	assert.Equal(t, uint64(4), DirSize(dir))
}

func TestWalk_ClassifiesAndSizes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.png"), 3)
	writeFile(t, filepath.Join(dir, "a", "notes.txt"), 10)
	writeFile(t, filepath.Join(dir, "a", "Makefile"), 2)

	var got []types.Entry
	stats, err := Walk(dir, func(e types.Entry) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Visited)
	assert.Equal(t, 0, stats.Unreadable)

	paths := make([]string, len(got))
	for i, e := range got {
		paths[i] = e.Path
	}
	assert.Equal(t, []string{
		dir,
		filepath.Join(dir, "a"),
		filepath.Join(dir, "a", "Makefile"),
		filepath.Join(dir, "a", "notes.txt"),
		filepath.Join(dir, "b.png"),
	}, paths)

	root := got[0]
	assert.True(t, root.IsDir)
	assert.Equal(t, types.KindDirectory, root.Kind)
	assert.Equal(t, uint64(15), root.SizeBytes)

	sub := got[1]
	assert.Equal(t, "a", sub.Name)
	assert.Equal(t, uint64(12), sub.SizeBytes)

	assert.Equal(t, types.KindFile, got[2].Kind)
	assert.Equal(t, uint64(2), got[2].SizeBytes)

	assert.Equal(t, types.Kind("txt"), got[3].Kind)
	assert.Equal(t, types.Kind("png"), got[4].Kind)
	assert.False(t, got[4].IsDir)
}

func TestWalk_Deterministic(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"z.txt", "m/k.txt", "a.txt", "m/b.txt"} {
		writeFile(t, filepath.Join(dir, name), 1)
	}

	collect := func() []string {
		var out []string
		_, err := Walk(dir, func(e types.Entry) error {
			out = append(out, e.Path)
			return nil
		})
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, collect(), collect())
}

func TestWalk_MissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "missing"), func(types.Entry) error {
		t.Fatal("callback must not run")
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestWalk_CallbackErrorStops(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), 1)
	writeFile(t, filepath.Join(dir, "b.txt"), 1)

	boom := errors.New("boom")
	calls := 0
	_, err := Walk(dir, func(types.Entry) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestWalk_SingleFileRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solo.md")
	writeFile(t, path, 42)

	var got []types.Entry
	_, err := Walk(path, func(e types.Entry) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "solo.md", got[0].Name)
	assert.Equal(t, types.Kind("md"), got[0].Kind)
	assert.Equal(t, uint64(42), got[0].SizeBytes)
}

func TestWalk_CountsUnreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	writeFile(t, filepath.Join(locked, "inside.txt"), 1)
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	var names []string
	stats, err := Walk(dir, func(e types.Entry) error {
		names = append(names, e.Name)
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, names, "locked")
	assert.NotContains(t, names, "inside.txt")
	assert.Equal(t, 2, stats.Visited)
	assert.Equal(t, 0, stats.Unreadable, "a listed-then-failed directory is not unreadable")
	assert.Equal(t, 1, stats.Unlistable)
}
