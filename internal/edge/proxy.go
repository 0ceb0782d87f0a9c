package edge

import (
	"log"
	"net/http"
	"net/http/httputil"
)

// NewProxy builds the reverse proxy that forwards rewritten requests to the
// internal backend. Headers (including Authorization), method, body and
// query string all pass through verbatim; only the URL changes.
func NewProxy(rw *Rewriter) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Director: func(req *http.Request) {
			target, err := rw.Rewrite(req.URL.Path, req.URL.RawQuery)
			if err != nil {
				// An unresolvable target surfaces as a transport
				// failure downstream, same as any unreachable host.
				log.Printf("REWRITE_FAILED: path=%s error=%v", req.URL.Path, err)
				req.URL.Scheme = "http"
				req.URL.Host = "invalid.invalid"
				return
			}
			req.URL = target
			req.Host = target.Host
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Printf("PROXY_FAILED: path=%s error=%v", r.URL.Path, err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"backend unreachable"}`))
		},
	}
}
