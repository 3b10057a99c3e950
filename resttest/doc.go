// Package resttest provides a fake JSON API for testing code built on
// the rest package.
//
// Expectations are registered per method and request URI and are
// consumed as requests arrive:
//
//	srv := resttest.NewServer(t, resttest.WithRequiredHeaders(map[string]string{
//		"Authorization": "SSWS token",
//	}))
//	srv.Expect(http.MethodGet, "/api/users/4/posts/5").Reply(http.StatusOK, true)
//
//	c, _ := rest.New(srv.URL()+"/api", headers)
//	// ... exercise c ...
//	srv.AssertDone()
//
// Every request is recorded with its trace id, taken from incoming W3C
// trace headers or generated when none were sent.
package resttest
