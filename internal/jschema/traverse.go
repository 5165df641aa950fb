// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"iter"
	"slices"
	"strings"
)

// Node is a schema reached while walking a document's properties.
type Node struct {
	// Path is the dotted property path; array items appear as "name[]".
	Path     string
	Depth    int
	Required bool
	Schema   *Schema
}

// Walk returns an iterator over every property schema reachable from root
// through properties and items, depth first with properties in sorted order.
// It handles cycles by tracking visited schemas.
func Walk(root *Schema) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		visited := make(map[*Schema]struct{})
		walkChildren(root, "", 0, yield, visited)
	}
}

func walkChildren(s *Schema, path string, depth int, yield func(Node) bool, visited map[*Schema]struct{}) bool {
	if s == nil {
		return true
	}
	if _, ok := visited[s]; ok {
		return true
	}
	visited[s] = struct{}{}

	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		child := s.Properties[name]
		childPath := name
		if path != "" {
			childPath = path + "." + name
		}
		node := Node{
			Path:     childPath,
			Depth:    depth,
			Required: slices.Contains(s.Required, name),
			Schema:   child,
		}
		if !yield(node) {
			return false
		}
		if !walkChildren(child, childPath, depth+1, yield, visited) {
			return false
		}
	}

	if s.Items != nil {
		itemsPath := path + "[]"
		if _, ok := visited[s.Items]; !ok && len(s.Items.Properties) == 0 && path != "" {
			// Scalar items are reported as their own node.
			if !yield(Node{Path: itemsPath, Depth: depth, Schema: s.Items}) {
				return false
			}
		}
		if !walkChildren(s.Items, itemsPath, depth, yield, visited) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes Walk yields and how many are required.
func Count(root *Schema) (total, required int) {
	for n := range Walk(root) {
		total++
		if n.Required {
			required++
		}
	}
	return total, required
}

// Formats returns the distinct format keywords used under root, sorted.
func Formats(root *Schema) []string {
	seen := map[string]struct{}{}
	for n := range Walk(root) {
		if f := n.Schema.Format; f != "" {
			seen[f] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Indent returns a two-space indent for the node depth.
func (n Node) Indent() string {
	return strings.Repeat("  ", n.Depth)
}
