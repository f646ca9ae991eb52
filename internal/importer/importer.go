// Package importer reads worker records from YAML import files.
//
// An import file looks like:
//
//	workers:
//	  - surname: Smith
//	    name: Engineer
//	    zodiac: Leo
//	    year: 1990
//
// Files are decoded with yaml.v3 into generic values and checked against
// the embedded CUE schema (schema.cue) before anything is converted to
// worker.Worker, so a string year or a misspelled key is reported with
// its path instead of being silently zeroed.
package importer

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/workers/internal/worker"
)

//go:embed schema.cue
var schemaCUE string

// ImportError describes why an import file was rejected.
type ImportError struct {
	Path    string // file path
	Field   string // CUE path of the offending value, if known
	Message string
}

func (e *ImportError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

type importFile struct {
	Workers []worker.Worker `json:"workers"`
}

// Load reads, validates and decodes the import file at path.
func Load(path string) ([]worker.Worker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	return Parse(path, data)
}

// Parse validates and decodes import file contents. name is used in
// error messages only.
func Parse(name string, data []byte) ([]worker.Worker, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ImportError{Path: name, Message: fmt.Sprintf("failed to parse YAML: %v", err)}
	}
	if raw == nil {
		return nil, &ImportError{Path: name, Message: "file is empty"}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile import schema: %w", err)
	}

	doc := ctx.Encode(raw)
	if err := doc.Err(); err != nil {
		return nil, &ImportError{Path: name, Message: err.Error()}
	}

	v := schema.LookupPath(cue.ParsePath("#File")).Unify(doc)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(name, err)
	}

	var f importFile
	if err := v.Decode(&f); err != nil {
		return nil, &ImportError{Path: name, Message: err.Error()}
	}
	if f.Workers == nil {
		f.Workers = []worker.Worker{}
	}
	return f.Workers, nil
}

// formatCUEError keeps the first CUE error and its value path.
func formatCUEError(name string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ImportError{Path: name, Message: err.Error()}
	}

	first := errs[0]
	format, args := first.Msg()
	return &ImportError{
		Path:    name,
		Field:   strings.Join(first.Path(), "."),
		Message: fmt.Sprintf(format, args...),
	}
}
