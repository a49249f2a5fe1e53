package document

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/travislint/travislint/internal/domain"
)

// canonicalIndent matches the two-space block style Travis files use.
const canonicalIndent = 2

// YAMLLoader implements domain.DocumentLoader for YAML files.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Read returns the contents of path.
func (l *YAMLLoader) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileError(path, err)
	}
	return data, nil
}

// Load reads path and canonicalizes its contents.
func (l *YAMLLoader) Load(path string) (*domain.Document, error) {
	data, err := l.Read(path)
	if err != nil {
		return nil, err
	}
	return l.Parse(path, data)
}

// Parse decodes data as a generic YAML tree and re-emits it in canonical form.
// Mapping keys come out sorted; comments, anchors and styling are dropped.
// A stream holding more than one document is rejected.
func (l *YAMLLoader) Parse(name string, data []byte) (*domain.Document, error) {
	value, err := decodeSingle(data)
	if err != nil {
		return nil, domain.NewParseError(name, err)
	}

	canonical, err := Canonicalize(value)
	if err != nil {
		return nil, domain.NewParseError(name, err)
	}

	return &domain.Document{
		Source:    name,
		Value:     value,
		Canonical: canonical,
	}, nil
}

// decodeSingle decodes the only document in data. Empty input yields nil.
func decodeSingle(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var value any
	if err := dec.Decode(&value); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("expected a single document in the stream, found more")
	}
	return value, nil
}

// Canonicalize serializes a generic YAML value.
func Canonicalize(value any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(canonicalIndent)
	if err := enc.Encode(value); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
