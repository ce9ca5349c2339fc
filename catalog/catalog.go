// Package catalog holds the fixed set of operations every library is
// benchmarked with, and the data set they run against.
package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kndndrj/sparqlbench/core"
)

const (
	Base  = "http://example.org/"
	Graph = "http://example.org/benchmark"

	rdfType    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	rdfsLabel  = "http://www.w3.org/2000/01/rdf-schema#label"
	xsdInteger = "http://www.w3.org/2001/XMLSchema#integer"

	// benchmarkEntities is the number of triples touched by write operations
	benchmarkEntities = 100
)

var ErrUnknownOperation = errors.New("unknown operation")

// Default returns the standard catalog: five reads and three writes. Writes
// carry prepare and reset updates so each one starts from the seeded
// baseline and leaves it behind.
func Default() []*core.Operation {
	benchmarkTriples := writeTriples()
	reset := fmt.Sprintf(
		"DELETE WHERE { GRAPH <%s> { ?s <%sbenchmarkValue> ?o } }",
		Graph, Base,
	)
	insert := fmt.Sprintf("INSERT DATA { GRAPH <%s> { %s } }", Graph, benchmarkTriples)

	return []*core.Operation{
		{
			Name:     "select_simple",
			Category: core.CategorySelect,
			Method:   http.MethodPost,
			Text:     "SELECT ?s ?p ?o WHERE { ?s ?p ?o } LIMIT 100",
			Expect:   core.ResultKindTable,
		},
		{
			Name:     "select_filter",
			Category: core.CategorySelect,
			Method:   http.MethodPost,
			Text: fmt.Sprintf(
				"SELECT ?s ?value WHERE { ?s <%svalue> ?value . FILTER(?value > 500) } LIMIT 100",
				Base,
			),
			Expect: core.ResultKindTable,
		},
		{
			Name:     "select_optional",
			Category: core.CategorySelect,
			Method:   http.MethodPost,
			Text: fmt.Sprintf(
				"SELECT ?s ?label WHERE { ?s a <%sEntity> . OPTIONAL { ?s <%s> ?label } } LIMIT 100",
				Base, rdfsLabel,
			),
			Expect: core.ResultKindTable,
		},
		{
			Name:     "ask",
			Category: core.CategoryAsk,
			Method:   http.MethodPost,
			Text:     fmt.Sprintf("ASK { <%sentity/1> ?p ?o }", Base),
			Expect:   core.ResultKindBoolean,
		},
		{
			Name:     "construct",
			Category: core.CategoryConstruct,
			Method:   http.MethodPost,
			Text: fmt.Sprintf(
				"CONSTRUCT { ?s ?p ?o } WHERE { ?s a <%sEntity> ; ?p ?o } LIMIT 100",
				Base,
			),
			Expect: core.ResultKindGraph,
		},
		{
			Name:     "insert_data",
			Category: core.CategoryInsert,
			Method:   http.MethodPost,
			Text:     insert,
			Expect:   core.ResultKindEmpty,
			Reset:    reset,
		},
		{
			Name:     "delete_data",
			Category: core.CategoryDelete,
			Method:   http.MethodPost,
			Text:     fmt.Sprintf("DELETE DATA { GRAPH <%s> { %s } }", Graph, benchmarkTriples),
			Expect:   core.ResultKindEmpty,
			Prepare:  insert,
			Reset:    reset,
		},
		{
			Name:     "update",
			Category: core.CategoryUpdate,
			Method:   http.MethodPost,
			Text: fmt.Sprintf(`WITH <%s>
DELETE { ?s <%sbenchmarkValue> ?old }
INSERT { ?s <%sbenchmarkValue> ?new }
WHERE { ?s <%sbenchmarkValue> ?old . BIND(?old + 1 AS ?new) }`,
				Graph, Base, Base, Base),
			Expect:  core.ResultKindEmpty,
			Prepare: insert,
			Reset:   reset,
		},
	}
}

// Select returns the operations with the given names in catalog order. An
// empty selection returns every operation.
func Select(ops []*core.Operation, names []string) ([]*core.Operation, error) {
	if len(names) == 0 {
		return ops, nil
	}

	byName := make(map[string]*core.Operation, len(ops))
	for _, op := range ops {
		byName[op.Name] = op
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if _, ok := byName[n]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, n)
		}
		wanted[n] = true
	}

	var out []*core.Operation
	for _, op := range ops {
		if wanted[op.Name] {
			out = append(out, op)
		}
	}

	return out, nil
}

func writeTriples() string {
	var sb strings.Builder
	for i := 0; i < benchmarkEntities; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "<%sbenchmark/entity/%d> <%sbenchmarkValue> %d .", Base, i, Base, i)
	}
	return sb.String()
}
