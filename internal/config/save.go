package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SetValue sets the scalar at a dotted key path (e.g. "ui.theme") in the
// YAML file at path, creating intermediate mappings as needed.
// This preserves comments and formatting in other sections by using yaml.Node.
func SetValue(path, key, value string) error {
	keys := strings.Split(key, ".")
	for _, k := range keys {
		if k == "" {
			return fmt.Errorf("invalid key %q", key)
		}
	}

	doc, err := ReadDocument(path)
	if err != nil {
		return err
	}
	if err := SetNode(doc, keys, value); err != nil {
		return err
	}
	return WriteDocument(path, doc)
}

// ReadDocument parses the YAML file at path into a document node. A missing
// or empty file yields an empty document.
func ReadDocument(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	return &doc, nil
}

// SetNode upserts a scalar under keys in doc. Existing values are replaced in
// place so their comments survive.
func SetNode(doc *yaml.Node, keys []string, value string) error {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return fmt.Errorf("not a yaml document")
	}
	node := doc.Content[0]
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("document root is not a mapping")
	}

	for i, k := range keys {
		last := i == len(keys)-1
		child := lookup(node, k)

		if last {
			if child == nil {
				node.Content = append(node.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: k},
					&yaml.Node{Kind: yaml.ScalarNode, Value: value},
				)
				return nil
			}
			if child.Kind != yaml.ScalarNode {
				return fmt.Errorf("%s is not a scalar", strings.Join(keys[:i+1], "."))
			}
			child.Value = value
			child.Tag = ""
			child.Style = 0
			return nil
		}

		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: k},
				child,
			)
		}
		if child.Kind != yaml.MappingNode {
			return fmt.Errorf("%s is not a mapping", strings.Join(keys[:i+1], "."))
		}
		node = child
	}
	return nil
}

// LookupValue returns the scalar at keys, if present.
func LookupValue(doc *yaml.Node, keys []string) (string, bool) {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return "", false
	}
	node := doc.Content[0]
	for _, k := range keys {
		if node.Kind != yaml.MappingNode {
			return "", false
		}
		node = lookup(node, k)
		if node == nil {
			return "", false
		}
	}
	if node.Kind != yaml.ScalarNode {
		return "", false
	}
	return node.Value, true
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// WriteDocument encodes doc and writes it atomically to path.
func WriteDocument(path string, doc *yaml.Node) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	_ = encoder.Close()

	return WriteFileAtomic(path, buf.Bytes())
}

// WriteFileAtomic writes data to a temp file next to path and renames it
// into place. The parent directory is created if needed.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
