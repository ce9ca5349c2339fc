package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kndndrj/sparqlbench/catalog"
	"github.com/kndndrj/sparqlbench/core"
)

func TestDefault(t *testing.T) {
	r := require.New(t)

	ops := catalog.Default()
	r.Len(ops, 8)

	names := make(map[string]bool)
	for _, op := range ops {
		r.False(names[op.Name], "duplicate operation %q", op.Name)
		names[op.Name] = true

		r.NotEmpty(op.Text)
		r.Equal(op.Category.IsWrite(), op.IsUpdate(), op.Name)

		// every write leaves the baseline behind it
		if op.Category.IsWrite() {
			r.NotEmpty(op.Reset, op.Name)
		} else {
			r.Empty(op.Reset, op.Name)
			r.Empty(op.Prepare, op.Name)
		}
	}

	byName := func(name string) *core.Operation {
		for _, op := range ops {
			if op.Name == name {
				return op
			}
		}
		t.Fatalf("missing %q", name)
		return nil
	}

	// deleting and updating need the benchmark triples to exist
	r.NotEmpty(byName("delete_data").Prepare)
	r.NotEmpty(byName("update").Prepare)
	r.Empty(byName("insert_data").Prepare)

	r.Equal(core.ResultKindBoolean, byName("ask").Expect)
	r.Equal(core.ResultKindGraph, byName("construct").Expect)
	r.Equal(core.ResultKindTable, byName("select_simple").Expect)
}

func TestDefault_IsFresh(t *testing.T) {
	first := catalog.Default()
	first[0].Text = "changed"

	assert.NotEqual(t, "changed", catalog.Default()[0].Text)
}

func TestSelect(t *testing.T) {
	r := require.New(t)

	ops := catalog.Default()

	all, err := catalog.Select(ops, nil)
	r.NoError(err)
	r.Len(all, len(ops))

	some, err := catalog.Select(ops, []string{"update", " ask"})
	r.NoError(err)
	r.Len(some, 2)
	// catalog order is kept
	r.Equal("ask", some[0].Name)
	r.Equal("update", some[1].Name)

	_, err = catalog.Select(ops, []string{"nope"})
	r.ErrorIs(err, catalog.ErrUnknownOperation)
}

func TestTriples(t *testing.T) {
	r := require.New(t)

	// 5 triples per entity, the first one has no predecessor
	r.Len(catalog.Triples(10, 0), 49)
	r.Len(catalog.Triples(10, 5), 50)

	triples := catalog.Triples(2, 0)
	r.Contains(triples, `<http://example.org/entity/1> <http://example.org/relatedTo> <http://example.org/entity/0> .`)
	r.Contains(triples, `<http://example.org/entity/1> <http://example.org/value> "1"^^<http://www.w3.org/2001/XMLSchema#integer> .`)

	update := catalog.SeedUpdate(2, 0)
	r.True(strings.HasPrefix(update, "INSERT DATA { GRAPH <http://example.org/benchmark> {"))
	for _, triple := range triples {
		r.Contains(update, triple)
	}
	r.Equal("CLEAR SILENT GRAPH <http://example.org/benchmark>", catalog.ClearUpdate())
}
