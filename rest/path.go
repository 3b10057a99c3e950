package rest

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrTokenMismatch is returned when resource names and identifiers
// cannot be paired into a path.
var ErrTokenMismatch = errors.New("resource and id counts do not pair")

// ResourcePath builds a relative path from tokens laid out as all
// resource names first, then all identifiers. The first ceil(N/2)
// tokens are resources and the rest are ids; they are zipped pairwise
// and, when N is odd, the last resource closes the path without an id.
//
//	ResourcePath("users")                   // users
//	ResourcePath("users", "4")              // users/4
//	ResourcePath("users", "posts", "4")     // users/4/posts
//	ResourcePath("users", "posts", "4", "5") // users/4/posts/5
//
// Tokens are used verbatim. No escaping is applied.
func ResourcePath(tokens ...string) string {
	half := (len(tokens) + 1) / 2

	// The split always pairs, so the error is unreachable.
	p, _ := Interleave(tokens[:half], tokens[half:])

	return p
}

// Interleave joins resources and ids as resource/id/resource/id...
// Resources may outnumber ids by at most one, in which case the final
// resource has no id.
func Interleave(resources, ids []string) (string, error) {
	if len(ids) > len(resources) || len(resources) > len(ids)+1 {
		return "", fmt.Errorf("%d resources, %d ids: %w", len(resources), len(ids), ErrTokenMismatch)
	}

	parts := make([]string, 0, len(resources)+len(ids))
	for i, id := range ids {
		parts = append(parts, resources[i], id)
	}
	if len(resources) > len(ids) {
		parts = append(parts, resources[len(resources)-1])
	}

	return strings.Join(parts, "/"), nil
}

// ListRequest describes a collection read: the resources and ids that
// lead to the collection, and an optional raw query string. An empty
// Query means no query.
type ListRequest struct {
	Resources []string
	IDs       []string
	Query     string
}

// Path returns the relative path, with "?Query" appended when set.
func (lr ListRequest) Path() (string, error) {
	p, err := Interleave(lr.Resources, lr.IDs)
	if err != nil {
		return "", err
	}

	return withQuery(p, lr.Query), nil
}

// ParseListArgs reads a positional argument list as a [ListRequest]:
//
//   - exactly two arguments are a resource and a query;
//   - an odd count carries no query, and every argument is a path token;
//   - any other even count ends with the query, and the rest are path tokens.
//
// Path tokens follow the [ResourcePath] layout. Two arguments are never
// read as a resource and an id; use [ListRequest] directly for that.
func ParseListArgs(args ...string) ListRequest {
	switch {
	case len(args) == 2:
		return ListRequest{Resources: slices.Clone(args[:1]), Query: args[1]}
	case len(args)%2 == 1:
		return splitTokens(args)
	case len(args) == 0:
		return ListRequest{}
	}

	lr := splitTokens(args[:len(args)-1])
	lr.Query = args[len(args)-1]

	return lr
}

// splitTokens separates a ResourcePath-style token list into resources and ids.
func splitTokens(tokens []string) ListRequest {
	half := (len(tokens) + 1) / 2

	return ListRequest{
		Resources: slices.Clone(tokens[:half]),
		IDs:       slices.Clone(tokens[half:]),
	}
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}

	return path + "?" + query
}
