package diagram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/umlayout/pkg/errors"
)

// Supported diagram file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// document is the serialized form of a diagram, shared by all formats.
type document struct {
	ID        string     `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Name      string     `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Classes   []Class    `json:"classes" yaml:"classes" toml:"classes"`
	Relations []Relation `json:"relations" yaml:"relations" toml:"relations"`
}

// FormatFromPath infers a format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "cannot infer diagram format from %q (want .json, .yaml or .toml)", path)
}

// Read decodes a diagram in the given format.
//
// Classes and relations without an ID get a random one. A relation endpoint
// may name a class by ID or, when no class has that ID, by unique Name.
func Read(r io.Reader, format string) (*ClassDiagram, error) {
	var doc document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidDiagram, err, "decode json")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
			return nil, errs.Wrap(errs.ErrCodeInvalidDiagram, err, "decode yaml")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidDiagram, err, "decode toml")
		}
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported diagram format %q", format)
	}
	return fromDocument(doc)
}

// ReadFile reads a diagram, inferring the format from the extension.
func ReadFile(path string) (*ClassDiagram, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d, nil
}

// Write encodes a diagram in the given format.
func Write(w io.Writer, d *ClassDiagram, format string) error {
	doc := toDocument(d)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	}
	return errs.New(errs.ErrCodeInvalidFormat, "unsupported diagram format %q", format)
}

// Marshal encodes a diagram to bytes.
func Marshal(d *ClassDiagram, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, d, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes a diagram, inferring the format from the extension.
func WriteFile(d *ClassDiagram, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, d, format); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func toDocument(d *ClassDiagram) document {
	doc := document{
		ID:        d.ID,
		Name:      d.Name,
		Classes:   make([]Class, 0, d.ClassCount()),
		Relations: make([]Relation, 0, d.RelationCount()),
	}
	for _, c := range d.Classes() {
		doc.Classes = append(doc.Classes, *c)
	}
	for _, r := range d.Relations() {
		doc.Relations = append(doc.Relations, *r)
	}
	return doc
}

func fromDocument(doc document) (*ClassDiagram, error) {
	var d *ClassDiagram
	if doc.ID != "" {
		d = NewWithID(doc.ID, doc.Name)
	} else {
		d = New(doc.Name)
	}

	byName := make(map[string]string, len(doc.Classes))
	ambiguous := make(map[string]bool)
	for _, c := range doc.Classes {
		stored, err := d.AddClass(c)
		if err != nil {
			return nil, err
		}
		if stored.Name == "" {
			continue
		}
		if _, dup := byName[stored.Name]; dup {
			ambiguous[stored.Name] = true
		}
		byName[stored.Name] = stored.ID
	}

	resolve := func(ref string) string {
		if _, ok := d.Class(ref); ok {
			return ref
		}
		if id, ok := byName[ref]; ok && !ambiguous[ref] {
			return id
		}
		return ref
	}

	for _, r := range doc.Relations {
		r.Source = resolve(r.Source)
		r.Target = resolve(r.Target)
		if _, err := d.AddRelation(r); err != nil {
			return nil, err
		}
	}
	return d, nil
}
