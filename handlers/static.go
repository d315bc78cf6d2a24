package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// SPAFallback serves the single-page app for every route the API does not
// claim: existing files under staticDir are served verbatim, anything
// else gets index.html so client-side routing can take over.
func SPAFallback(staticDir string) gin.HandlerFunc {
	root, err := filepath.Abs(staticDir)
	if err != nil {
		root = staticDir
	}

	return func(c *gin.Context) {
		requested := filepath.Join(root, filepath.Clean("/"+c.Request.URL.Path))
		if !strings.HasPrefix(requested, root) {
			c.String(http.StatusBadRequest, "invalid path")
			return
		}
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}
		c.File(filepath.Join(root, "index.html"))
	}
}
