package rest

import (
	"context"
	"net/http"
	"slices"

	"github.com/adamwoolhether/brckt/pending"
)

// verbFn sends one request for a literal relative path.
type verbFn func(ctx context.Context, path string, body any) (any, error)

// tokenFn sends one request for the path built from tokens.
type tokenFn func(ctx context.Context, body any, tokens ...string) (any, error)

func (c *Client) verb(method string) verbFn {
	return func(ctx context.Context, path string, body any) (any, error) {
		return c.send(ctx, method, path, body)
	}
}

// restify turns a verb on paths into a verb on resource/id tokens.
func restify(verb verbFn) tokenFn {
	return func(ctx context.Context, body any, tokens ...string) (any, error) {
		return verb(ctx, ResourcePath(tokens...), body)
	}
}

// bind pre-binds leading tokens. Every call gets its own token slice.
func bind(fn tokenFn, leading []string) tokenFn {
	leading = slices.Clone(leading)

	return func(ctx context.Context, body any, tokens ...string) (any, error) {
		return fn(ctx, body, slices.Concat(leading, tokens)...)
	}
}

// GetFn fetches one object below its bound resources.
type GetFn func(ctx context.Context, ids ...string) (any, error)

// ListFn fetches a collection below its bound resources. An empty
// query sends none.
type ListFn func(ctx context.Context, query string, ids ...string) (any, error)

// CreateFn POSTs body below its bound resources.
type CreateFn func(ctx context.Context, body any, ids ...string) (any, error)

// UpdateFn PUTs body below its bound resources.
type UpdateFn func(ctx context.Context, body any, ids ...string) (any, error)

// RemoveFn DELETEs one object below its bound resources.
type RemoveFn func(ctx context.Context, ids ...string) (any, error)

// BuildGetFn binds resources and returns a function awaiting the ids.
//
//	getUserPost := c.BuildGetFn("users", "posts")
//	post, err := getUserPost(ctx, "4", "5") // GET users/4/posts/5
func (c *Client) BuildGetFn(resources ...string) GetFn {
	fn := bind(restify(c.verb(http.MethodGet)), resources)

	return func(ctx context.Context, ids ...string) (any, error) {
		return fn(ctx, nil, ids...)
	}
}

// BuildListFn binds resources and returns a function awaiting the
// ids of every resource but the last, plus an optional query.
//
//	listUserPosts := c.BuildListFn("users", "posts")
//	posts, err := listUserPosts(ctx, "read=true", "4") // GET users/4/posts?read=true
func (c *Client) BuildListFn(resources ...string) ListFn {
	bound := slices.Clone(resources)

	return func(ctx context.Context, query string, ids ...string) (any, error) {
		return c.List(ctx, ListRequest{
			Resources: bound,
			IDs:       ids,
			Query:     query,
		})
	}
}

// BuildCreateFn binds resources and returns a function awaiting the
// body and ids.
//
//	createUserPost := c.BuildCreateFn("users", "posts")
//	created, err := createUserPost(ctx, post, "4") // POST users/4/posts
func (c *Client) BuildCreateFn(resources ...string) CreateFn {
	return CreateFn(bind(restify(c.verb(http.MethodPost)), resources))
}

// BuildUpdateFn binds resources and returns a function awaiting the
// body and ids.
func (c *Client) BuildUpdateFn(resources ...string) UpdateFn {
	return UpdateFn(bind(restify(c.verb(http.MethodPut)), resources))
}

// BuildRemoveFn binds resources and returns a function awaiting the ids.
func (c *Client) BuildRemoveFn(resources ...string) RemoveFn {
	fn := bind(restify(c.verb(http.MethodDelete)), resources)

	return func(ctx context.Context, ids ...string) (any, error) {
		return fn(ctx, nil, ids...)
	}
}

// Async runs f in the background.
func (f GetFn) Async(ctx context.Context, ids ...string) *pending.Result {
	ids = slices.Clone(ids)
	return pending.Go(ctx, func(ctx context.Context) (any, error) {
		return f(ctx, ids...)
	})
}

// Async runs f in the background.
func (f ListFn) Async(ctx context.Context, query string, ids ...string) *pending.Result {
	ids = slices.Clone(ids)
	return pending.Go(ctx, func(ctx context.Context) (any, error) {
		return f(ctx, query, ids...)
	})
}

// Async runs f in the background.
func (f CreateFn) Async(ctx context.Context, body any, ids ...string) *pending.Result {
	ids = slices.Clone(ids)
	return pending.Go(ctx, func(ctx context.Context) (any, error) {
		return f(ctx, body, ids...)
	})
}

// Async runs f in the background.
func (f UpdateFn) Async(ctx context.Context, body any, ids ...string) *pending.Result {
	ids = slices.Clone(ids)
	return pending.Go(ctx, func(ctx context.Context) (any, error) {
		return f(ctx, body, ids...)
	})
}

// Async runs f in the background.
func (f RemoveFn) Async(ctx context.Context, ids ...string) *pending.Result {
	ids = slices.Clone(ids)
	return pending.Go(ctx, func(ctx context.Context) (any, error) {
		return f(ctx, ids...)
	})
}
