package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
)

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// compressedContentTypes are the response types worth compressing.
var compressedContentTypes = []string{"application/json", "text/plain"}

// withGZip decompresses gzip request bodies and compresses responses for
// clients that accept it.
func withGZip(next http.Handler) http.Handler {
	return withGZipRequest(middleware.Compress(5, compressedContentTypes...)(next))
}

func withGZipRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !strings.Contains(req.Header.Get("Content-Encoding"), "gzip") || req.Body == nil {
			next.ServeHTTP(w, req)
			return
		}

		gzipReader := gzipReaderPool.Get().(*gzip.Reader)
		if err := gzipReader.Reset(req.Body); err != nil {
			gzipReaderPool.Put(gzipReader)
			writeError(w, req, ErrMalformedBody)
			return
		}

		req.Body = &wrappedReadCloser{
			Reader: gzipReader,
			OnClose: func() {
				gzipReader.Close()
				gzipReaderPool.Put(gzipReader)
			},
		}
		req.Header.Del("Content-Encoding")
		req.ContentLength = -1

		next.ServeHTTP(w, req)
	})
}

type wrappedReadCloser struct {
	io.Reader
	OnClose func()
}

func (w *wrappedReadCloser) Close() error {
	if w.OnClose != nil {
		w.OnClose()
		w.OnClose = nil
	}
	return nil
}
