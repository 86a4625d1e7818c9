package retention

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// LatestName is the per-session pointer file, recreated on every run.
	LatestName = "latest.log"
	// Suffix marks a file as a log file.
	Suffix = ".log"

	nameLayout = "2006-01-02T15-04-05.000Z"
)

// ArchiveName returns the archival file name for a session started at t.
func ArchiveName(t time.Time) string {
	return t.UTC().Format(nameLayout) + Suffix
}

// ParseArchiveTime recovers the session timestamp from an archival file name.
// Hyphens after the last "T" are read back as colons.
func ParseArchiveTime(name string) (time.Time, bool) {
	stem := strings.TrimSuffix(name, Suffix)
	if i := strings.LastIndex(stem, "T"); i >= 0 {
		stem = stem[:i] + strings.ReplaceAll(stem[i:], "-", ":")
	} else {
		stem = strings.ReplaceAll(stem, "-", ":")
	}
	t, err := time.Parse(time.RFC3339Nano, stem)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type archive struct {
	name string
	at   time.Time
}

// PrepareLogDirectory readies dir for a new session. A missing directory is
// created. An existing latest.log is removed, then the oldest archival logs
// are deleted until fewer than maxRetained remain. maxRetained <= 0 disables
// pruning. It returns how many archival logs were deleted.
//
// Files whose names don't carry a timestamp are left alone and do not count
// towards maxRetained.
func PrepareLogDirectory(dir string, maxRetained int) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return 0, fmt.Errorf("create log directory %s: %w", dir, err)
			}
			return 0, nil
		}
		return 0, fmt.Errorf("read log directory %s: %w", dir, err)
	}

	var archives []archive
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, Suffix) {
			continue
		}
		if name == LatestName {
			if err := os.Remove(filepath.Join(dir, name)); err != nil {
				return 0, fmt.Errorf("remove %s: %w", name, err)
			}
			continue
		}
		if at, ok := ParseArchiveTime(name); ok {
			archives = append(archives, archive{name: name, at: at})
		}
	}

	if maxRetained <= 0 {
		return 0, nil
	}

	sort.SliceStable(archives, func(i, j int) bool {
		return archives[i].at.Before(archives[j].at)
	})

	deleted := 0
	for len(archives) >= maxRetained {
		oldest := archives[0]
		if err := os.Remove(filepath.Join(dir, oldest.name)); err != nil {
			return deleted, fmt.Errorf("remove old log %s: %w", oldest.name, err)
		}
		archives = archives[1:]
		deleted++
	}
	return deleted, nil
}
