// Package requestid tags every request with a correlation id so the log
// records of one form submission, including csrf rejections, can be grouped.
//
// A client-supplied X-Request-ID header is reused when it is short and made of
// [A-Za-z0-9_-]; otherwise a UUID v4 is minted from an entropy.Source. The id
// is echoed in the response header and stored in the request context.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LogExtractor))
//	r.Use(requestid.New(nil).Middleware)
package requestid
