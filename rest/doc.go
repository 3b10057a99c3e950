// Package rest turns resource names and ids into RESTful request paths
// and hands out reusable request functions bound to a base URL and a
// fixed header set.
//
// # Paths
//
// Path tokens list every resource name first, then every id. They are
// zipped pairwise; an odd count leaves the last resource without an id:
//
//	rest.ResourcePath("users", "posts", "4", "5") // users/4/posts/5
//	rest.ResourcePath("users", "posts", "4")      // users/4/posts
//
// # Building a Client
//
//	c, err := rest.New("https://api.example.com/v1", map[string]string{
//		"Accept":        "application/json",
//		"Authorization": "SSWS token",
//	})
//
// # Bound Functions
//
// Build functions bind the resource names once and take ids per call:
//
//	getUserPost := c.BuildGetFn("users", "posts")
//	a, err := getUserPost(ctx, "4", "5")
//	b, err := getUserPost(ctx, "4", "6")
//
//	listUserPosts := c.BuildListFn("users", "posts")
//	unread, err := listUserPosts(ctx, "read=false", "4")
//
// Tokens and queries are placed into the URI verbatim. Escape anything
// that is not URL-safe before passing it in ([net/url.PathEscape] for ids,
// [net/url.Values.Encode] for queries). A URI that does not parse fails
// before any request is sent, and an unescaped '#' starts a fragment
// that is never sent to the server.
//
// Direct functions take the whole token list per call ([Client.GetObject],
// [Client.ListObjects], [Client.CreateObject], [Client.UpdateObject],
// [Client.RemoveObject]), and raw verbs take a literal path
// ([Client.Get], [Client.Post], [Client.Put], [Client.Delete]).
//
// # Results
//
// Every call returns the decoded JSON body. A response outside 200-299
// fails with a [client.UnexpectedStatusError] carrying the status code
// and body; a failure before any response is returned as the transport
// reported it. Each bound function has an Async method returning a
// [pending.Result].
package rest
