// Package levelscanner finds level files on disk.
package levelscanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chosenoffset.com/sightline/internal/core/level"
	"chosenoffset.com/sightline/internal/world/levelfile"
)

// LevelEntry is a level file found in a directory
type LevelEntry struct {
	Name string // File name without the .json extension
	Path string
}

// Scan lists the .json files directly inside dir, sorted by file name.
// Hidden files and subdirectories are skipped.
func Scan(dir string) ([]LevelEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read level directory: %w", err)
	}

	var levels []LevelEntry
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".json") {
			continue
		}

		levels = append(levels, LevelEntry{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dir, name),
		})
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].Path < levels[j].Path
	})
	return levels, nil
}

// LoadAll builds every level in dir in file name order. A level without a
// name takes its file name.
func LoadAll(dir string, clearance float64) ([]*level.Level, error) {
	entries, err := Scan(dir)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no level files in %s", dir)
	}

	levels := make([]*level.Level, 0, len(entries))
	for _, entry := range entries {
		def, err := levelfile.Load(entry.Path)
		if err != nil {
			return nil, err
		}
		if def.Name == "" {
			def.Name = entry.Name
		}
		lvl, err := levelfile.Build(def, clearance)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", entry.Path, err)
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}
