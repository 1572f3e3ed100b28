// Package middleware provides HTTP middleware components for the scoop service.
package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression returns a middleware that gzips responses for clients that accept it.
// Streaming endpoints such as server-sent events must be listed in excludedPaths.
func Compression(excludedPaths ...string) gin.HandlerFunc {
	if len(excludedPaths) == 0 {
		return gzip.Gzip(gzip.DefaultCompression)
	}
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths(excludedPaths))
}
