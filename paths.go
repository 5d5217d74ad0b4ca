package reshape

import "github.com/sanity-io/reshape/internal/tree"

// Paths returns every path of doc in depth-first order, parents before their
// children. Object keys are visited in sorted order and array elements by
// index, so the result is stable for an unchanged document. The document
// root itself is not included.
func Paths(doc interface{}) []string {
	var paths []string
	tree.Walk(doc, func(path string, _ interface{}) {
		paths = append(paths, path)
	})
	return paths
}
