package db

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tgienger/todo/internal/config"
	"github.com/tgienger/todo/internal/models"
)

//go:embed todo_tasks.schema.json
var documentSchemaSource string

var documentSchema = jsonschema.MustCompileString("todo_tasks.schema.json", documentSchemaSource)

// JSONFile stores the state as a single JSON document
type JSONFile struct {
	path string
}

// NewJSONFile returns the default JSON backend for dir
func NewJSONFile(dir string) *JSONFile {
	return &JSONFile{path: filepath.Join(dir, config.JSONFile)}
}

// Path returns the location of the document
func (f *JSONFile) Path() string {
	return f.path
}

// Load reads the document. A missing file yields a fresh state.
func (f *JSONFile) Load() (models.State, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.NewState(), nil
		}
		return models.State{}, fmt.Errorf("read %s: %w", f.path, err)
	}
	state, err := Decode(data)
	if err != nil {
		return models.State{}, fmt.Errorf("%s: %w", f.path, err)
	}
	return state, nil
}

// Save overwrites the document with state
func (f *JSONFile) Save(state models.State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

// Decode parses and validates a document. Absent fields take their
// defaults: counters 1, done false, created_at "", group_id null.
func Decode(data []byte) (models.State, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.State{}, fmt.Errorf("parse: %w", err)
	}
	if err := documentSchema.Validate(doc); err != nil {
		return models.State{}, fmt.Errorf("validate: %w", err)
	}

	state := models.NewState()
	if err := json.Unmarshal(data, &state); err != nil {
		return models.State{}, fmt.Errorf("decode: %w", err)
	}
	return normalize(state), nil
}

// Encode renders state as an indented document with non-ASCII text kept literal
func Encode(state models.State) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(state)); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// normalize replaces nil collections so they round-trip as []
func normalize(state models.State) models.State {
	if state.Groups == nil {
		state.Groups = []models.Group{}
	}
	if state.Tasks == nil {
		state.Tasks = []models.Task{}
	}
	return state
}
