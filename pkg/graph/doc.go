// Package graph provides the file and wire formats for graphs and layouts.
//
// # Documents
//
// A [Document] describes one graph, digraph or bigraph together with its
// node attributes. Documents are read from JSON or TOML:
//
//	{
//	  "kind": "digraph",
//	  "nodes": 3,
//	  "edges": [{"source": 0, "target": 1}, {"source": 1, "target": 2, "weight": 2}],
//	  "names": ["a", "b", "c"],
//	  "labels": {"0": 1}
//	}
//
// Attribute fields (names, labels, scores) take an array with one value per
// node or an object keyed by node index. Bigraphs use rows and cols instead
// of nodes and the _row and _col variants of every attribute.
//
// Common operations:
//
//	doc, _ := graph.ReadFile("karate.json")     // File -> Document
//	adj, _ := doc.Matrix()                      // Document -> matrix
//	opts, _ := doc.GraphOptions(plan.DefaultOptions())
//	data, _ := graph.Marshal(doc)               // Document -> JSON
//
// # Layouts
//
// A [Layout] is a resolved drawing plan in serializable form; the layout
// command and the plan endpoint emit it:
//
//	l := graph.FromPlan(p)
//	data, _ := graph.MarshalLayout(l)
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
