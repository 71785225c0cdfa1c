/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dyn

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlOps is the representation over yaml.v3 document trees. Nodes are
// *yaml.Node; document wrappers and aliases are followed transparently.
//
// # Implements:
//   - Ops
type yamlOps struct{}

const (
	yamlTagStr   = "!!str"
	yamlTagInt   = "!!int"
	yamlTagBool  = "!!bool"
	yamlTagFloat = "!!float"
	yamlTagNull  = "!!null"
	yamlTagMap   = "!!map"
	yamlTagSeq   = "!!seq"
)

func (yamlOps) Name() string { return "yaml" }

func (yamlOps) Empty() any {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: yamlTagMap}
}

func (yamlOps) EmptyList() any {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: yamlTagSeq}
}

func (yamlOps) Null() any {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlTagNull, Value: "null"}
}

func (yamlOps) CreateString(v string) any {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlTagStr, Value: v}
}

func (yamlOps) CreateBool(v bool) any {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlTagBool, Value: strconv.FormatBool(v)}
}

func (yamlOps) CreateInt(v int64) any {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlTagInt, Value: strconv.FormatInt(v, 10)}
}

func (yamlOps) CreateFloat(v float64) any {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlTagFloat, Value: strconv.FormatFloat(v, 'g', -1, 64)}
}

func (yamlOps) CreateList(items []any) any {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: yamlTagSeq}
	n.Content = make([]*yaml.Node, 0, len(items))
	for _, it := range items {
		n.Content = append(n.Content, it.(*yaml.Node))
	}
	return n
}

func (yamlOps) CreateMap(entries []MapEntry) any {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: yamlTagMap}
	n.Content = make([]*yaml.Node, 0, len(entries)*2)
	for _, e := range entries {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlTagStr, Value: e.Key}
		n.Content = append(n.Content, key, e.Value.(*yaml.Node))
	}
	return n
}

func (o yamlOps) GetString(node any) (string, error) {
	n, err := o.resolve(node)
	if err != nil {
		return "", err
	}
	if n.Kind == yaml.ScalarNode && n.Tag == yamlTagStr {
		return n.Value, nil
	}
	return "", ErrUnexpectedKind("string expected, got %s", yamlKind(n))
}

func (o yamlOps) GetBool(node any) (bool, error) {
	n, err := o.resolve(node)
	if err != nil {
		return false, err
	}
	if n.Kind == yaml.ScalarNode && n.Tag == yamlTagBool {
		if b, err := strconv.ParseBool(n.Value); err == nil {
			return b, nil
		}
		switch strings.ToLower(n.Value) {
		case "y", "yes", "on":
			return true, nil
		case "n", "no", "off":
			return false, nil
		}
	}
	return false, ErrUnexpectedKind("bool expected, got %s", yamlKind(n))
}

func (o yamlOps) GetInt(node any) (int64, error) {
	n, err := o.resolve(node)
	if err != nil {
		return 0, err
	}
	if n.Kind == yaml.ScalarNode && n.Tag == yamlTagInt {
		if v, err := strconv.ParseInt(n.Value, 10, 64); err == nil {
			return v, nil
		}
		if v, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return v, nil
		}
	}
	return 0, ErrUnexpectedKind("integer expected, got %s", yamlKind(n))
}

func (o yamlOps) GetFloat(node any) (float64, error) {
	n, err := o.resolve(node)
	if err != nil {
		return 0, err
	}
	if n.Kind == yaml.ScalarNode && (n.Tag == yamlTagFloat || n.Tag == yamlTagInt) {
		if v, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return v, nil
		}
	}
	return 0, ErrUnexpectedKind("number expected, got %s", yamlKind(n))
}

func (o yamlOps) GetList(node any) ([]any, error) {
	n, err := o.resolve(node)
	if err != nil {
		return nil, err
	}
	if n.Kind != yaml.SequenceNode {
		return nil, ErrUnexpectedKind("sequence expected, got %s", yamlKind(n))
	}
	items := make([]any, 0, len(n.Content))
	for _, c := range n.Content {
		items = append(items, c)
	}
	return items, nil
}

func (o yamlOps) MapEntries(node any) ([]MapEntry, error) {
	n, err := o.resolve(node)
	if err != nil {
		return nil, err
	}
	if n.Kind != yaml.MappingNode {
		return nil, ErrUnexpectedKind("mapping expected, got %s", yamlKind(n))
	}
	entries := make([]MapEntry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, err := o.resolve(n.Content[i])
		if err != nil {
			return nil, err
		}
		if key.Kind != yaml.ScalarNode {
			return nil, ErrUnsupportedNode("non-scalar mapping key at line %d", key.Line)
		}
		entries = append(entries, MapEntry{Key: key.Value, Value: n.Content[i+1]})
	}
	return entries, nil
}

func (o yamlOps) IsMap(node any) bool {
	n, err := o.resolve(node)
	return err == nil && n.Kind == yaml.MappingNode
}

func (o yamlOps) IsList(node any) bool {
	n, err := o.resolve(node)
	return err == nil && n.Kind == yaml.SequenceNode
}

func (o yamlOps) IsNil(node any) bool {
	if node == nil {
		return true
	}
	n, err := o.resolve(node)
	return err == nil && n.Kind == yaml.ScalarNode && n.Tag == yamlTagNull
}

// resolve unwraps documents and follows aliases to the effective node.
func (o yamlOps) resolve(node any) (*yaml.Node, error) {
	n, ok := node.(*yaml.Node)
	if !ok || n == nil {
		return nil, ErrUnsupportedNode("*yaml.Node expected, got %T", node)
	}
	for {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) == 1:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return n, nil
		}
	}
}

func yamlKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar " + n.Tag
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
