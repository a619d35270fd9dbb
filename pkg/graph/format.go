package graph

import (
	"fmt"
	"strings"
)

// FormatTriplet renders a triplet as the single-quoted key/value block used
// by the file-output collaborators. This is a display form, not a wire
// format; key order is fixed and string values are single-quoted.
func FormatTriplet(t RelationshipTriplet) string {
	var b strings.Builder

	b.WriteString("{")
	fmt.Fprintf(&b, "'subject': '%s', ", t.Subject)
	fmt.Fprintf(&b, "'subject_qid': '%s', ", t.SubjectQID)
	fmt.Fprintf(&b, "'predicate': '%s', ", t.Predicate)
	fmt.Fprintf(&b, "'predicate_pid': '%s', ", t.PredicatePID)
	fmt.Fprintf(&b, "'object': '%s', ", t.Object)
	fmt.Fprintf(&b, "'object_qid': '%s', ", t.ObjectQID)
	fmt.Fprintf(&b, "'subject_in_degree': %d, ", t.SubjectInDegree)
	fmt.Fprintf(&b, "'object_in_degree': %d", t.ObjectInDegree)
	b.WriteString("}")

	return b.String()
}

// FormatTriplets renders one block per triplet, one per line, preserving
// pipeline order.
func FormatTriplets(triplets []RelationshipTriplet) []string {
	lines := make([]string, 0, len(triplets))
	for _, t := range triplets {
		lines = append(lines, FormatTriplet(t))
	}
	return lines
}
