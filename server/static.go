package server

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// StaticFileServer serves files from dir. Paths that name no file fall back to
// fallbackPath so a browser client can own its routes.
func StaticFileServer(dir string, fallbackPath string) (http.Handler, error) {
	if info, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("static directory %s: %w", dir, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("static directory %s: not a directory", dir)
	}

	root := http.Dir(dir)
	fs := http.FileServer(root)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f, err := root.Open(path.Clean("/" + r.URL.Path)); err == nil {
			f.Close()
			fs.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, fallbackPath))
	}), nil
}
