package core

import "strings"

// ResultKind is the shape of the response an operation expects.
type ResultKind int

const (
	ResultKindEmpty ResultKind = iota
	ResultKindBoolean
	ResultKindTable
	ResultKindGraph
)

func ResultKindFromString(s string) ResultKind {
	switch strings.ToLower(s) {
	case ResultKindBoolean.String():
		return ResultKindBoolean
	case ResultKindTable.String():
		return ResultKindTable
	case ResultKindGraph.String():
		return ResultKindGraph
	default:
		return ResultKindEmpty
	}
}

func (k ResultKind) String() string {
	switch k {
	case ResultKindBoolean:
		return "boolean"
	case ResultKindTable:
		return "table"
	case ResultKindGraph:
		return "graph"
	default:
		return "empty"
	}
}

// Accept returns the media type requested for the response.
func (k ResultKind) Accept() string {
	switch k {
	case ResultKindGraph:
		return "text/turtle"
	case ResultKindBoolean, ResultKindTable:
		return "application/sparql-results+json"
	default:
		return ""
	}
}

// Category is the SPARQL form of an operation.
type Category string

const (
	CategorySelect    Category = "SELECT"
	CategoryAsk       Category = "ASK"
	CategoryConstruct Category = "CONSTRUCT"
	CategoryInsert    Category = "INSERT"
	CategoryDelete    Category = "DELETE"
	CategoryUpdate    Category = "UPDATE"
)

// IsWrite reports whether the category mutates the database.
func (c Category) IsWrite() bool {
	switch c {
	case CategoryInsert, CategoryDelete, CategoryUpdate:
		return true
	default:
		return false
	}
}

// Operation is a single named request definition.
type Operation struct {
	// Name is unique within a catalog
	Name     string
	Category Category
	// Method is either GET or POST. Updates are always POSTed.
	Method string
	// Text is the query or update sent to the endpoint
	Text   string
	Expect ResultKind

	// Prepare is an update run once before the operation is measured
	Prepare string
	// Reset is an update run once after the operation is measured and
	// brings the database back to its baseline
	Reset string
}

// IsUpdate reports whether the operation is sent as a SPARQL update.
func (o *Operation) IsUpdate() bool {
	return o.Expect == ResultKindEmpty
}

type (
	// Row and Header describe tabular output
	Row    []any
	Header []string

	// Formatter converts header and rows to bytes
	Formatter interface {
		Format(header Header, rows []Row) ([]byte, error)
	}
)
