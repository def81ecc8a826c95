package config

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/deptree/pkg/errors"
)

// decodeXML collects the trimmed text of every leaf element regardless of
// nesting; the root element's name is not checked. Elements with blank text
// count as absent.
func decodeXML(data []byte) (map[string]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	fields := make(map[string]string)

	var (
		current string
		text    strings.Builder
		root    bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "malformed XML")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			root = true
			current = t.Name.Local
			text.Reset()
		case xml.CharData:
			if current != "" {
				text.Write(t)
			}
		case xml.EndElement:
			if v := strings.TrimSpace(text.String()); current != "" && v != "" {
				fields[key(current)] = v
			}
			current = ""
		}
	}
	if !root {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "malformed XML: no root element")
	}
	return fields, nil
}

func decodeYAML(data []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "malformed YAML")
	}
	return scalars(doc)
}

func decodeTOML(data []byte) (map[string]string, error) {
	var doc map[string]any
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "malformed TOML")
	}
	return scalars(doc)
}

// scalars flattens a decoded YAML or TOML document into field strings.
// Nested tables and lists are rejected; null values count as absent.
func scalars(doc map[string]any) (map[string]string, error) {
	fields := make(map[string]string, len(doc))
	for name, v := range doc {
		switch v := v.(type) {
		case nil:
		case string:
			fields[key(name)] = v
		case bool, int, int64, uint64, float64:
			fields[key(name)] = fmt.Sprint(v)
		default:
			return nil, errors.New(errors.ErrCodeInvalidConfig, "field %s must be a scalar value", name)
		}
	}
	return fields, nil
}
