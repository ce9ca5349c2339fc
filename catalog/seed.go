package catalog

import (
	"fmt"
	"strings"
)

// Triples returns the N-Triples of the seed data set: entities start to
// start+n-1, each with a type, a label, an integer value, a category and,
// except for the first entity, a link to its predecessor.
func Triples(n, start int) []string {
	triples := make([]string, 0, n*5)

	for i := start; i < start+n; i++ {
		subject := fmt.Sprintf("<%sentity/%d>", Base, i)
		triples = append(triples,
			fmt.Sprintf("%s <%s> <%sEntity> .", subject, rdfType, Base),
			fmt.Sprintf(`%s <%s> "Entity %d" .`, subject, rdfsLabel, i),
			fmt.Sprintf(`%s <%svalue> "%d"^^<%s> .`, subject, Base, i, xsdInteger),
			fmt.Sprintf("%s <%scategory> <%scategory/%d> .", subject, Base, Base, i%10),
		)
		if i > 0 {
			triples = append(triples, fmt.Sprintf("%s <%srelatedTo> <%sentity/%d> .", subject, Base, Base, i-1))
		}
	}

	return triples
}

// SeedUpdate returns an INSERT DATA update loading the seed data set into
// the benchmark graph.
func SeedUpdate(n, start int) string {
	return fmt.Sprintf("INSERT DATA { GRAPH <%s> { %s } }", Graph, strings.Join(Triples(n, start), " "))
}

// ClearUpdate removes the benchmark graph.
func ClearUpdate() string {
	return fmt.Sprintf("CLEAR SILENT GRAPH <%s>", Graph)
}
