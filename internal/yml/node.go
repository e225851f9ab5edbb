package yml

import (
	"gopkg.in/yaml.v3"
	"strconv"
	"strings"
)

type (
	// Node is a yaml.Node with read-side convenience accessors.
	Node yaml.Node

	// Nodes holds the interleaved key/value children of a mapping node.
	Nodes []*yaml.Node
)

func (n *Node) Lookup(name string) *Node {
	return (*Node)(Nodes(n.Content).LookupValueNode(name))
}

func (n *Node) Items(callback func(index int, node *Node) error) error {
	for i := 0; i < len(n.Content); i++ {
		value := n.Content[i]
		nodeValue := (*Node)(value)
		if err := callback(i, nodeValue); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) Pairs(callback func(key string, node *Node) error) error {
	for i := 0; i < len(n.Content); i += 2 {
		key := n.Content[i].Value
		value := n.Content[i+1]
		nodeValue := (*Node)(value)
		if err := callback(key, nodeValue); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) Interface() interface{} {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!str":
			return n.Value
		case "!!bool":
			return parseBool(n.Value)
		case "!!nil":
			return nil
		case "!!float":
			return parseFloat(n.Value)
		case "!!int":
			return parseInt(n.Value)
		default:
			return n.Value
		}
	case yaml.MappingNode:
		var aMap = make(map[string]interface{})
		for i := 0; i < len(n.Content); i += 2 {
			key := n.Content[i].Value
			value := (*Node)(n.Content[i+1])
			aMap[key] = value.Interface()
		}
		return aMap
	case yaml.SequenceNode:
		var aSlice = make([]interface{}, 0)
		for i := 0; i < len(n.Content); i++ {
			value := (*Node)(n.Content[i])
			aSlice = append(aSlice, value.Interface())
		}
		return aSlice
	case yaml.DocumentNode:
		if len(n.Content) > 0 {
			return (*Node)(n.Content[0]).Interface()
		}
	}
	return nil
}

// LookupValueNode returns the value node paired with a mapping key, matching case-insensitively.
func (n Nodes) LookupValueNode(name string) *yaml.Node {
	for i := 0; i+1 < len(n); i += 2 {
		if strings.EqualFold(n[i].Value, name) {
			return n[i+1]
		}
	}
	return nil
}

// parseBool converts a scalar value to a boolean.
func parseBool(value string) bool {
	return strings.EqualFold(value, "true")
}

// parseFloat converts a scalar value to a float64.
func parseFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

// parseInt converts a scalar value to an int.
func parseInt(value string) int {
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return i
}
