package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tracker-go/internal/model"
)

// Store mediates between the data file and the in-memory Dataset.
// It owns the id counters for the datasets it loads.
type Store struct {
	path   string
	logger *log.Logger
	ids    model.Counters
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a store backed by the file at path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the data file. It never fails: missing, unreadable, or
// malformed files produce an empty dataset.
func (s *Store) Load() *Dataset {
	s.ids.Reset()
	empty := newDataset(&s.ids)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("data file not found, starting empty", "path", s.path)
			return empty
		}
		s.logger.Warn("data file unreadable, treating as empty", "path", s.path, "err", err)
		return empty
	}

	doc, err := decodeDocument(data)
	if err != nil {
		s.logger.Warn("data file is not valid JSON, treating as empty", "path", s.path, "err", err)
		return empty
	}
	if err := datasetSchema.Validate(doc); err != nil {
		s.logger.Warn("data file does not match schema, treating as empty", "path", s.path, "err", err)
		return empty
	}

	d := s.build(doc.(map[string]any))
	d.Link()
	s.logger.Debug("loaded data file", "path", s.path,
		"users", len(d.Users), "projects", len(d.Projects), "tasks", len(d.Tasks))
	return d
}

func (s *Store) build(doc map[string]any) *Dataset {
	d := newDataset(&s.ids)
	for _, m := range records(doc["users"]) {
		d.Users = append(d.Users, model.UserFromMap(m, &s.ids.Users))
	}
	for _, m := range records(doc["projects"]) {
		d.Projects = append(d.Projects, model.ProjectFromMap(m, &s.ids.Projects))
	}
	for _, m := range records(doc["tasks"]) {
		t := model.TaskFromMap(m, &s.ids.Tasks)
		if raw, invalid := model.InvalidStatus(m); invalid {
			s.logger.Warn("unknown task status, using open", "task_id", t.ID, "status", raw)
		}
		d.Tasks = append(d.Tasks, t)
	}
	return d
}

// Save links back-references and writes the whole dataset to the data file.
func (s *Store) Save(d *Dataset) error {
	d.Link()

	data, err := json.MarshalIndent(d.Document(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data file: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data, 0644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	s.logger.Debug("saved data file", "path", s.path,
		"users", len(d.Users), "projects", len(d.Projects), "tasks", len(d.Tasks))
	return nil
}

// decodeDocument parses JSON, keeping numbers as json.Number so ids are read
// exactly.
func decodeDocument(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse data file: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("parse data file: trailing data after document")
	}
	return doc, nil
}

func records(v any) []map[string]any {
	list, _ := v.([]any)
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
