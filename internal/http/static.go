package http

import (
	"bytes"
	"embed"
	"io/fs"
	stdhttp "net/http"
	"time"
)

//go:embed static
var staticFiles embed.FS

var staticFS = mustSub(staticFiles, "static")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

func staticHandler() stdhttp.Handler {
	return stdhttp.StripPrefix("/static/", stdhttp.FileServer(stdhttp.FS(staticFS)))
}

func faviconHandler(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	favicon, err := fs.ReadFile(staticFS, "favicon.svg")
	if err != nil || len(favicon) == 0 {
		w.WriteHeader(stdhttp.StatusNotFound)
		return
	}

	reader := bytes.NewReader(favicon)
	w.Header().Set("Content-Type", "image/svg+xml")
	stdhttp.ServeContent(w, r, "favicon.svg", time.Time{}, reader)
}
