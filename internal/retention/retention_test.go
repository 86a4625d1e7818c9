package retention

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLogs(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644))
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestArchiveName(t *testing.T) {
	at := time.Date(2023, 1, 2, 3, 4, 5, 678_000_000, time.UTC)
	assert.Equal(t, "2023-01-02T03-04-05.678Z.log", ArchiveName(at))

	// Non-UTC input is normalised.
	loc := time.FixedZone("X", 2*60*60)
	assert.Equal(t, "2023-01-02T03-04-05.678Z.log", ArchiveName(at.In(loc)))
}

func TestParseArchiveTime(t *testing.T) {
	tests := []struct {
		name string
		want time.Time
		ok   bool
	}{
		{"2023-01-01T00-00-00.000Z.log", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"2023-06-15T13-45-30.250Z.log", time.Date(2023, 6, 15, 13, 45, 30, 250_000_000, time.UTC), true},
		{"2023-06-15T13-45-30Z.log", time.Date(2023, 6, 15, 13, 45, 30, 0, time.UTC), true},
		{"not-a-timestamp.log", time.Time{}, false},
		{"latest-2023-01-01T00-00-00.000.log", time.Time{}, false},
		{"2023-13-01T00-00-00.000Z.log", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseArchiveTime(tt.name)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseArchiveTime_RoundTrip(t *testing.T) {
	at := time.Date(2024, 2, 29, 23, 59, 59, 999_000_000, time.UTC)
	got, ok := ParseArchiveTime(ArchiveName(at))
	require.True(t, ok)
	assert.True(t, at.Equal(got))
}

func TestPrepareLogDirectory_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log", "debug")

	deleted, err := PrepareLogDirectory(dir, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPrepareLogDirectory_RemovesLatest(t *testing.T) {
	dir := t.TempDir()
	writeLogs(t, dir, LatestName, "2023-01-01T00-00-00.000Z.log")

	deleted, err := PrepareLogDirectory(dir, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
	assert.Equal(t, []string{"2023-01-01T00-00-00.000Z.log"}, listDir(t, dir))
}

func TestPrepareLogDirectory_PrunesOldest(t *testing.T) {
	dir := t.TempDir()
	writeLogs(t, dir,
		"2023-01-01T00-00-00.000Z.log",
		"2023-01-02T00-00-00.000Z.log",
		"2023-01-03T00-00-00.000Z.log",
		LatestName,
	)

	deleted, err := PrepareLogDirectory(dir, 2)
	require.NoError(t, err)

	// Pruning stops once fewer than two archives remain.
	assert.Equal(t, 2, deleted)
	assert.Equal(t, []string{"2023-01-03T00-00-00.000Z.log"}, listDir(t, dir))
}

func TestPrepareLogDirectory_DeletionCount(t *testing.T) {
	tests := []struct {
		files, max, wantDeleted int
	}{
		{files: 5, max: 5, wantDeleted: 1},
		{files: 5, max: 3, wantDeleted: 3},
		{files: 5, max: 1, wantDeleted: 5},
		{files: 4, max: 5, wantDeleted: 0},
		{files: 0, max: 1, wantDeleted: 0},
	}

	for _, tt := range tests {
		dir := t.TempDir()
		base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
		var names []string
		for i := 0; i < tt.files; i++ {
			names = append(names, ArchiveName(base.Add(time.Duration(i)*time.Hour)))
		}
		writeLogs(t, dir, names...)

		deleted, err := PrepareLogDirectory(dir, tt.max)
		require.NoError(t, err)
		assert.Equal(t, tt.wantDeleted, deleted, "files=%d max=%d", tt.files, tt.max)

		remaining := listDir(t, dir)
		assert.ElementsMatch(t, names[tt.wantDeleted:], remaining)
		if tt.files > 0 {
			assert.Less(t, len(remaining), tt.max)
		}
	}
}

func TestPrepareLogDirectory_NoPruningWhenDisabled(t *testing.T) {
	for _, threshold := range []int{0, -1} {
		dir := t.TempDir()
		base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 10; i++ {
			writeLogs(t, dir, ArchiveName(base.Add(time.Duration(i)*time.Minute)))
		}

		deleted, err := PrepareLogDirectory(dir, threshold)
		require.NoError(t, err)
		assert.Equal(t, 0, deleted)
		assert.Len(t, listDir(t, dir), 10)
	}
}

func TestPrepareLogDirectory_KeepsUnparseable(t *testing.T) {
	dir := t.TempDir()
	writeLogs(t, dir,
		"not-a-timestamp.log",
		"server.log",
		"2023-01-01T00-00-00.000Z.log",
	)

	deleted, err := PrepareLogDirectory(dir, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.Equal(t, []string{"not-a-timestamp.log", "server.log"}, listDir(t, dir))
}

func TestPrepareLogDirectory_UnparseableDoNotCount(t *testing.T) {
	dir := t.TempDir()
	writeLogs(t, dir,
		"a.log", "b.log", "c.log", "d.log",
		"2023-01-01T00-00-00.000Z.log",
	)

	deleted, err := PrepareLogDirectory(dir, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
	assert.Len(t, listDir(t, dir), 5)
}

func TestPrepareLogDirectory_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeLogs(t, dir, "notes.txt", "2023-01-01T00-00-00.000Z.log.gz")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "debug"), 0o755))

	deleted, err := PrepareLogDirectory(dir, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
	assert.Equal(t, []string{"2023-01-01T00-00-00.000Z.log.gz", "debug", "notes.txt"}, listDir(t, dir))
}

func TestPrepareLogDirectory_ListingError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	writeLogs(t, filepath.Dir(file), filepath.Base(file))

	_, err := PrepareLogDirectory(file, 1)
	assert.Error(t, err)
}
