package cache

import (
	"fmt"
	"strings"
)

// Cache keys are partitioned into namespaces by the leading path segment.
// A write to a collection invalidates its whole namespace, entity and
// list keys alike, so a mutation is never followed by a stale read.
const (
	NamespaceUsers    = "/users"
	NamespacePosts    = "/posts"
	NamespaceComments = "/comments"
)

// EntityKey derives the key for a single-entity read: "<ns>/<id>".
// Identifiers are unique per collection, so keys cannot collide.
func EntityKey(namespace string, id int64) string {
	return fmt.Sprintf("%s/%d", namespace, id)
}

// RelationKey derives the key for a read scoped to a parent entity,
// e.g. all posts of one user: "<ns>/user/<id>". The relation segment
// keeps it disjoint from the entity keys of the same namespace.
func RelationKey(namespace, relation string, id int64) string {
	return fmt.Sprintf("%s/%s/%d", namespace, relation, id)
}

// ListKey derives the key for a collection read from the normalized
// parameter tuple. The serialization order is fixed here, never taken
// from the request, so the same logical query always lands on the same
// key no matter how the caller spelled it. Extra filters must already be
// formatted as "name=value" and are appended in the caller's declared
// order, which is itself fixed per call site.
func ListKey(namespace string, page, limit int64, search, sortBy, order string, filters ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s?page=%d&limit=%d&search=%s&sortBy=%s&order=%s", namespace, page, limit, search, sortBy, order)
	for _, f := range filters {
		b.WriteByte('&')
		b.WriteString(f)
	}
	return b.String()
}
