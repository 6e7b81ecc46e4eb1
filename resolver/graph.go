/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolver provides token reference resolution.
package resolver

import (
	"fmt"

	"bennypowers.dev/tincture/token"
)

// DependencyGraph represents a directed graph of token dependencies,
// keyed by dot path.
type DependencyGraph struct {
	order        []string
	dependencies map[string][]string
	dependents   map[string][]string
	nodes        map[string]bool
}

// BuildDependencyGraph builds a dependency graph from a list of tokens.
// Node iteration follows the order of tokens.
func BuildDependencyGraph(tokens []*token.Token) *DependencyGraph {
	graph := &DependencyGraph{
		order:        make([]string, 0, len(tokens)),
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
		nodes:        make(map[string]bool, len(tokens)),
	}

	for _, tok := range tokens {
		key := tok.DotPath()
		if !graph.nodes[key] {
			graph.order = append(graph.order, key)
		}
		graph.nodes[key] = true
	}

	for _, tok := range tokens {
		deps := extractDependencies(tok.RawValue)
		if len(deps) > 0 {
			key := tok.DotPath()
			graph.dependencies[key] = deps
			for _, dep := range deps {
				graph.dependents[dep] = append(graph.dependents[dep], key)
			}
		}
	}

	return graph
}

// extractDependencies collects every referenced path in a raw value,
// descending into composite values.
func extractDependencies(value any) []string {
	var deps []string
	switch v := value.(type) {
	case string:
		deps = append(deps, token.ExtractAllRefs(v)...)
	case map[string]any:
		for _, child := range v {
			deps = append(deps, extractDependencies(child)...)
		}
	case []any:
		for _, child := range v {
			deps = append(deps, extractDependencies(child)...)
		}
	}
	return deps
}

// Has reports whether the graph contains a token at path.
func (g *DependencyGraph) Has(path string) bool {
	return g.nodes[path]
}

// Dependencies returns the paths the given token references.
func (g *DependencyGraph) Dependencies(path string) []string {
	if deps, ok := g.dependencies[path]; ok {
		return deps
	}
	return []string{}
}

// Dependents returns the paths of tokens that reference the given token.
func (g *DependencyGraph) Dependents(path string) []string {
	if deps, ok := g.dependents[path]; ok {
		return deps
	}
	return []string{}
}

// Missing returns, for each token with a dangling reference, the
// referenced paths that are not in the graph.
func (g *DependencyGraph) Missing() map[string][]string {
	missing := make(map[string][]string)
	for _, node := range g.order {
		for _, dep := range g.dependencies[node] {
			if !g.Has(dep) {
				missing[node] = append(missing[node], dep)
			}
		}
	}
	return missing
}

// HasCycle returns true if the graph contains a circular dependency.
func (g *DependencyGraph) HasCycle() bool {
	return g.FindCycle() != nil
}

// FindCycle returns the cycle path if one exists, or nil if no cycle.
func (g *DependencyGraph) FindCycle() []string {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	for _, node := range g.order {
		if cycle := g.findCycleDFS(node, visited, recStack, nil); cycle != nil {
			return cycle
		}
	}
	return nil
}

func (g *DependencyGraph) findCycleDFS(node string, visited, recStack map[string]bool, path []string) []string {
	if recStack[node] {
		cycleStart := -1
		for i, n := range path {
			if n == node {
				cycleStart = i
				break
			}
		}
		if cycleStart == -1 {
			panic(fmt.Sprintf("cycle detection invariant violated: node %q in recStack but not in path %v", node, path))
		}
		cycle := append([]string{}, path[cycleStart:]...)
		return append(cycle, node)
	}
	if visited[node] {
		return nil
	}

	visited[node] = true
	recStack[node] = true
	path = append(path, node)

	for _, dep := range g.dependencies[node] {
		if cycle := g.findCycleDFS(dep, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	recStack[node] = false
	return nil
}

// TopologicalSort returns token paths in dependency order (dependencies
// first). Returns an error if the graph contains a cycle.
func (g *DependencyGraph) TopologicalSort() ([]string, error) {
	if cycle := g.FindCycle(); cycle != nil {
		return nil, fmt.Errorf("%w: %v", ErrCircularReference, cycle)
	}

	visited := make(map[string]bool)
	result := make([]string, 0, len(g.order))

	for _, node := range g.order {
		if !visited[node] {
			g.topologicalSortDFS(node, visited, &result)
		}
	}

	return result, nil
}

func (g *DependencyGraph) topologicalSortDFS(node string, visited map[string]bool, stack *[]string) {
	visited[node] = true

	for _, dep := range g.dependencies[node] {
		if !visited[dep] && g.Has(dep) {
			g.topologicalSortDFS(dep, visited, stack)
		}
	}

	*stack = append(*stack, node)
}
