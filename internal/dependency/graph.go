// Package dependency builds and flattens dependency graphs.
package dependency // import "github.com/CognitoIQ/wsdlfetch/internal/dependency"

import (
	"sort"
	"sync"
)

// insertUnique inserts s into set, preserving order. If s is already in set,
// it is not added. The augmented set is returned.
func insertUnique(set []string, s string) []string {
	i := sort.SearchStrings(set, s)
	if i >= len(set) || set[i] != s {
		set = append(set, "")
		copy(set[i+1:], set[i:])
		set[i] = s
	}
	return set
}

// A Graph is a collection of targets and their dependencies. The zero
// value is an empty Graph ready to use. A Graph is not safe for
// concurrent use.
type Graph struct {
	once    sync.Once
	targets []string
	nodes   map[string][]string
}

// Len returns the number of targets in the graph.
func (g *Graph) Len() int {
	return len(g.targets)
}

func (g *Graph) init() {
	g.once.Do(func() { g.nodes = make(map[string][]string) })
}

// Add adds a dependency to a Graph.
func (g *Graph) Add(target, dependency string) {
	g.init()
	g.targets = insertUnique(g.targets, target)
	g.nodes[target] = insertUnique(g.nodes[target], dependency)
}

// Dependencies returns the direct dependencies of target, sorted.
func (g *Graph) Dependencies(target string) []string {
	g.init()
	return append([]string(nil), g.nodes[target]...)
}

// Flatten calls the walk function on each node in the Graph in topological
// order, starting with the leaves and traversing up to the roots.  The same
// Graph will always be traversed in the same order.
//
// Every vertex in the Graph is visited once; any cycles in the graph are
// skipped.
func (g *Graph) Flatten(walk func(string)) {
	g.init()
	visited := make(map[string]bool, len(g.nodes))
	for _, tgt := range g.targets {
		if !visited[tgt] {
			visited[tgt] = true
			g.flatten(walk, g.nodes[tgt], visited)
			walk(tgt)
		}
	}
}

// Walk is like Flatten, but only visits root and the vertices reachable
// from it. root is always visited last, even if it has no dependencies
// or is part of a cycle. If walk returns an error, Walk stops and
// returns it.
func (g *Graph) Walk(root string, walk func(string) error) error {
	g.init()
	visited := map[string]bool{root: true}
	var err error
	g.flatten(func(v string) {
		if err == nil {
			err = walk(v)
		}
	}, g.nodes[root], visited)
	if err != nil {
		return err
	}
	return walk(root)
}

func (g *Graph) flatten(fn func(string), targets []string, visited map[string]bool) {
	for _, tgt := range targets {
		if !visited[tgt] {
			visited[tgt] = true
			g.flatten(fn, g.nodes[tgt], visited)
			fn(tgt)
		}
	}
}
