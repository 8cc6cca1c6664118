package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadSet reads, parses, and validates a question set file.
//
// TOML files and YAML files whose top level is not a `questions:` list are
// read as a mapping from question text to its fields, in document order.
func LoadSet(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("read question set: %w", err)
	}
	raw, err := parseSet(data, path)
	if err != nil {
		return Set{}, err
	}
	return NormalizeSet(raw)
}

func parseSet(data []byte, path string) (rawSet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseJSONSet(data)
	case ".toml":
		return parseTOMLSet(data)
	default:
		return parseYAMLSet(data)
	}
}

func parseJSONSet(data []byte) (rawSet, error) {
	var set rawSet
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&set); err != nil {
		return rawSet{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return rawSet{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return rawSet{}, fmt.Errorf("parse json: %w", err)
	}
	return set, nil
}

func parseTOMLSet(data []byte) (rawSet, error) {
	var byText map[string]rawQuestion
	meta, err := toml.Decode(string(data), &byText)
	if err != nil {
		return rawSet{}, fmt.Errorf("parse toml: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return rawSet{}, fmt.Errorf("parse toml: unknown fields %s", strings.Join(keys, ", "))
	}
	set := rawSet{Version: 1}
	for _, key := range meta.Keys() {
		if len(key) > 1 {
			if _, ok := mappingFields[key[1]]; !ok || len(key) > 2 {
				return rawSet{}, fmt.Errorf("parse toml: field %s not found in question %q", strings.Join(key[1:], "."), key[0])
			}
			continue
		}
		item := byText[key[0]]
		item.Text = key[0]
		set.Questions = append(set.Questions, item)
	}
	return set, nil
}

func parseYAMLSet(data []byte) (rawSet, error) {
	var doc yaml.Node
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&doc); err != nil {
		return rawSet{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return rawSet{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return rawSet{}, fmt.Errorf("parse yaml: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return rawSet{}, fmt.Errorf("parse yaml: top level must be a mapping")
	}
	root := doc.Content[0]
	if isListForm(root) {
		return parseYAMLList(data)
	}
	return parseYAMLMapping(root)
}

// isListForm reports whether the document uses the `questions:` list layout.
func isListForm(root *yaml.Node) bool {
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "questions" && root.Content[i+1].Kind == yaml.SequenceNode {
			return true
		}
	}
	return false
}

func parseYAMLList(data []byte) (rawSet, error) {
	var set rawSet
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&set); err != nil {
		return rawSet{}, fmt.Errorf("parse yaml: %w", err)
	}
	return set, nil
}

func parseYAMLMapping(root *yaml.Node) (rawSet, error) {
	set := rawSet{Version: 1}
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		if valueNode.Kind != yaml.MappingNode {
			return rawSet{}, fmt.Errorf("parse yaml: line %d: question %q must map to its fields", keyNode.Line, keyNode.Value)
		}
		for j := 0; j+1 < len(valueNode.Content); j += 2 {
			field := valueNode.Content[j]
			if _, ok := mappingFields[field.Value]; !ok {
				return rawSet{}, fmt.Errorf("parse yaml: line %d: field %s not found in question %q", field.Line, field.Value, keyNode.Value)
			}
		}
		var item rawQuestion
		if err := valueNode.Decode(&item); err != nil {
			return rawSet{}, fmt.Errorf("parse yaml: question %q: %w", keyNode.Value, err)
		}
		item.Text = keyNode.Value
		set.Questions = append(set.Questions, item)
	}
	return set, nil
}
