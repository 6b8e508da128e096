package records

import (
	"fmt"
	"io"
	"kill-chain-service/internal/domain"
	"os"
	"path/filepath"
	"strings"
)

// Format is a file encoding chosen by extension.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// FormatOf maps a path extension to a Format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported file type %q (want .yaml, .yml or .xlsx)", filepath.Ext(path))
	}
}

func Decode(r io.Reader, f Format) (*Document, error) {
	switch f {
	case FormatYAML:
		return DecodeYAML(r)
	case FormatXLSX:
		return DecodeXLSX(r)
	default:
		return nil, fmt.Errorf("decode: unsupported format %q", f)
	}
}

// LoadFile decodes and builds the records in path.
func LoadFile(path string) (*Records, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}
	defer fh.Close()

	doc, err := Decode(fh, format)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}

	recs, err := Build(doc)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}
	return recs, nil
}

// WriteAssignments writes rows to w in the given format.
func WriteAssignments(w io.Writer, f Format, rows []domain.Assignment) error {
	switch f {
	case FormatYAML:
		return EncodeAssignmentsYAML(w, rows)
	case FormatXLSX:
		return EncodeAssignmentsXLSX(w, rows)
	default:
		return fmt.Errorf("write assignments: unsupported format %q", f)
	}
}

// WriteAssignmentsFile creates path and writes rows in the format implied by
// its extension.
func WriteAssignmentsFile(path string, rows []domain.Assignment) (err error) {
	format, err := FormatOf(path)
	if err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}

	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	defer func() {
		if cerr := fh.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("write %q: close: %w", path, cerr)
		}
	}()

	if err := WriteAssignments(fh, format, rows); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}
