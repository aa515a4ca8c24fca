// Package csrf protects HTML forms and state-changing API calls with
// stateless signed tokens from package signer.
//
// Protector.Middleware does two things:
//
//   - For safe methods (GET, HEAD, OPTIONS, TRACE) it makes sure the client
//     carries a signed binding cookie holding a random id, and exposes a
//     token issuer to handlers through the request context. Handlers call
//     Token(r) and embed the result in a hidden form field or a meta tag.
//   - For every other method it requires a token (X-CSRF-Token header or
//     _token form field by default) that validates against the binding id
//     and any extra payload supplied by a PayloadFunc.
//
// Tokens are bound to the binding id, so a token harvested by one client
// cannot be replayed by another. Nothing is stored on the server.
//
// # Usage
//
//	p, err := csrf.New(secret, csrf.WithValidity(2*time.Hour))
//	if err != nil {
//	    return err
//	}
//	r := chi.NewRouter()
//	r.Use(p.Middleware)
//	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
//	    tok, _ := csrf.Token(r)
//	    fmt.Fprintf(w, `<input type="hidden" name="_token" value="%s">`, html.EscapeString(tok))
//	})
//
// # Error Handling
//
// Rejected requests are passed to the ErrorHandler with one of
// ErrTokenMissing, ErrTokenInvalid, ErrMalformedToken or ErrBindingMissing.
// StatusCode maps them to 403, except ErrMalformedToken which maps to 400.
package csrf
