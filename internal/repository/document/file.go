package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/jsonc"

	"github.com/oshokin/winpack/internal/config"
)

// Repository loads and saves one JSON document.
type Repository interface {
	Load(ctx context.Context) (map[string]any, error)
	Save(ctx context.Context, document map[string]any) error
	Path() string
}

// FileRepository stores a JSON object document on disk.
type FileRepository struct {
	// path is the filesystem location of the document.
	path string
	// mu serialises access to the file.
	mu sync.Mutex
}

var (
	// ErrNotFound is returned when the document does not exist.
	ErrNotFound = errors.New("document not found")
	// errNotAnObject is returned when the document's top-level value is not an object.
	errNotAnObject = errors.New("top-level value must be a JSON object")
)

// NewFileRepository creates a repository for the document at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the document location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the document.
func (r *FileRepository) Load(_ context.Context) (map[string]any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, r.path)
		}

		return nil, fmt.Errorf("read document: %w", err)
	}

	var value any
	if err = json.Unmarshal(jsonc.ToJSON(contents), &value); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", r.path, err)
	}

	document, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode document %s: %w", r.path, errNotAnObject)
	}

	return document, nil
}

// Save writes the document as indented JSON. Comments in the original file are not preserved.
func (r *FileRepository) Save(_ context.Context, document map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var buffer bytes.Buffer

	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(document); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	if err := os.WriteFile(r.path, buffer.Bytes(), config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	return nil
}
