package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteJSON writes the whole document to a single indented JSON file and
// returns the path actually written. A path without an extension gets
// ".json" appended.
func WriteJSON(doc *Document, path string) (string, error) {
	if filepath.Ext(path) == "" {
		path += ".json"
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding export: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// WriteCSV writes one CSV file per table next to basePath, named
// {base}_{table}.csv with basePath's extension stripped. Empty tables
// still produce a file so the bundle shape is predictable, but the file
// is empty rather than a lone header row. Returns the written paths in
// table order.
func WriteCSV(doc *Document, basePath string) ([]string, error) {
	base := strings.TrimSuffix(basePath, filepath.Ext(basePath))
	paths := make([]string, 0, 9)
	for _, t := range doc.tables() {
		path := fmt.Sprintf("%s_%s.csv", base, t.name)
		if err := writeCSVTable(path, t); err != nil {
			return nil, fmt.Errorf("writing %s: %w", t.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSVTable(path string, t table) error {
	if len(t.records) == 0 {
		return writeFileAtomic(path, nil)
	}
	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.Write(t.headers); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range t.records {
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing rows: %w", err)
	}
	return writeFileAtomic(path, []byte(buf.String()))
}

// writeFileAtomic writes data through a temp file in the target directory
// and renames it into place, so a failed export never leaves a truncated
// file behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing data: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
