package store

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed dataset.schema.json
var datasetSchemaJSON string

// SchemaURL is the resource name the embedded schema is compiled under.
const SchemaURL = "dataset.schema.json"

var datasetSchema = jsonschema.MustCompileString(SchemaURL, datasetSchemaJSON)

// Schema returns the embedded JSON Schema source.
func Schema() string {
	return datasetSchemaJSON
}

// Problem is one schema violation in the data file.
type Problem struct {
	Path    string // e.g. tasks[0].id; empty for the document itself
	Message string
}

func (p Problem) String() string {
	if p.Path == "" {
		return p.Message
	}
	return p.Path + ": " + p.Message
}

// Report describes the data file as Load would see it.
type Report struct {
	Path     string
	Missing  bool  // no file; Load starts empty
	Err      error // unreadable or not JSON
	Problems []Problem

	// Record counts, set when the document is valid.
	Users, Projects, Tasks int
}

// Valid reports whether Load would use the file's contents.
func (r *Report) Valid() bool {
	return r.Err == nil && len(r.Problems) == 0
}

// Validate checks the data file against the embedded schema without loading
// it.
func (s *Store) Validate() *Report {
	r := &Report{Path: s.path}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		r.Missing = true
		return r
	}
	if err != nil {
		r.Err = fmt.Errorf("read data file: %w", err)
		return r
	}

	doc, err := decodeDocument(data)
	if err != nil {
		r.Err = err
		return r
	}

	if err := datasetSchema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			r.Err = err
			return r
		}
		r.Problems = leafProblems(ve, r.Problems)
		return r
	}

	m := doc.(map[string]any)
	r.Users = len(records(m["users"]))
	r.Projects = len(records(m["projects"]))
	r.Tasks = len(records(m["tasks"]))
	return r
}

// leafProblems appends the innermost causes of err, which carry the
// specific keyword failures.
func leafProblems(err *jsonschema.ValidationError, out []Problem) []Problem {
	if len(err.Causes) == 0 {
		return append(out, Problem{Path: recordPath(err.InstanceLocation), Message: err.Message})
	}
	for _, cause := range err.Causes {
		out = leafProblems(cause, out)
	}
	return out
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// recordPath turns a JSON pointer such as /tasks/0/id into tasks[0].id.
func recordPath(ptr string) string {
	var b strings.Builder
	for _, part := range strings.Split(strings.TrimPrefix(ptr, "#"), "/") {
		if part == "" {
			continue
		}
		if _, err := strconv.Atoi(part); err == nil {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(pointerUnescaper.Replace(part))
	}
	return b.String()
}
