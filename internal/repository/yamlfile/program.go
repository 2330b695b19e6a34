// Package yamlfile stores training programs as YAML documents in a directory, one file per program.
package yamlfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

type implRepository struct {
	dir string
	l   log.Logger
}

// New creates a ProgramRepository rooted at dir. The directory is created on first write.
func New(dir string, l log.Logger) repository.ProgramRepository {
	return &implRepository{dir: dir, l: l}
}

// Decode reads a single program document and rejects unknown fields.
func Decode(r io.Reader) (model.Program, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p model.Program
	if err := dec.Decode(&p); err != nil {
		return model.Program{}, fmt.Errorf("decode program: %w", err)
	}
	if strings.TrimSpace(p.Name) == "" {
		return model.Program{}, errors.New("decode program: name is required")
	}
	return p, nil
}

// Encode writes p as YAML.
func Encode(w io.Writer, p model.Program) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode program: %w", err)
	}
	return enc.Close()
}

func (r *implRepository) GetProgram(ctx context.Context, id string) (model.Program, error) {
	path, err := r.path(id)
	if err != nil {
		return model.Program{}, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Program{}, repository.ErrNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "yamlfile repository: open %s: %v", path, err)
		return model.Program{}, repository.ErrFailedToGet
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		r.l.Errorf(ctx, "yamlfile repository: %s: %v", path, err)
		return model.Program{}, repository.ErrFailedToGet
	}
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}

func (r *implRepository) UpsertProgram(ctx context.Context, program model.Program) (model.Program, error) {
	if program.ID == "" {
		program.ID = uuid.NewString()
	}
	path, err := r.path(program.ID)
	if err != nil {
		return model.Program{}, err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, program); err != nil {
		return model.Program{}, err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		r.l.Errorf(ctx, "yamlfile repository: mkdir %s: %v", r.dir, err)
		return model.Program{}, repository.ErrFailedToInsert
	}

	// Write then rename so readers never see a partial document.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		r.l.Errorf(ctx, "yamlfile repository: write %s: %v", tmp, err)
		return model.Program{}, repository.ErrFailedToInsert
	}
	if err := os.Rename(tmp, path); err != nil {
		r.l.Errorf(ctx, "yamlfile repository: rename %s: %v", tmp, err)
		return model.Program{}, repository.ErrFailedToInsert
	}
	return program, nil
}

// path maps an id to <dir>/<id>.yaml and refuses ids that would escape dir.
func (r *implRepository) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid program id %q", id)
	}
	return filepath.Join(r.dir, id+".yaml"), nil
}
