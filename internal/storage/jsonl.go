// Package storage persists document corpora as newline-delimited JSON,
// one document per line, UTF-8 with non-ASCII characters unescaped.
package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/aicollect/sitescraper/internal/enrich"
)

// JSONLStore reads and writes a JSONL corpus at a fixed path.
type JSONLStore struct {
	path     string
	appendTo bool
	logger   *zap.Logger
}

// NewJSONLStore returns a store for path. With appendTo set, Save adds to
// an existing file instead of overwriting it.
func NewJSONLStore(path string, appendTo bool, logger *zap.Logger) *JSONLStore {
	return &JSONLStore{
		path:     path,
		appendTo: appendTo,
		logger:   logger,
	}
}

// Save writes documents to the store, one JSON object per line.
func (s *JSONLStore) Save(docs []enrich.Document) error {
	flags := os.O_WRONLY | os.O_CREATE
	if s.appendTo {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(s.path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode document %s: %w", doc.URL, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", s.path, err)
	}
	s.logger.Info("Saved documents", zap.Int("count", len(docs)), zap.String("path", s.path))
	return nil
}

// SaveSingle appends one document to the store, creating the file if
// needed. Useful for streaming runs.
func (s *JSONLStore) SaveSingle(doc enrich.Document) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document %s: %w", doc.URL, err)
	}
	return nil
}

// Load parses the corpus back into an ordered document list. Lines that
// fail to parse are logged and skipped rather than aborting the load; a
// missing file yields an empty list.
func (s *JSONLStore) Load() ([]enrich.Document, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Corpus file does not exist", zap.String("path", s.path))
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	var docs []enrich.Document
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var doc enrich.Document
		if err := json.Unmarshal(line, &doc); err != nil {
			s.logger.Warn("Skipping unparsable line",
				zap.Int("line", lineNum),
				zap.String("path", s.path),
				zap.Error(err),
			)
			continue
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	s.logger.Info("Loaded documents", zap.Int("count", len(docs)), zap.String("path", s.path))
	return docs, nil
}
