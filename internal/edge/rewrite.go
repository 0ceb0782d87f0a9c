package edge

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/STAR-173/prms-admin-gateway/internal/config"
)

// Rewriter translates public-facing API paths into the internal backend's
// versioned path space. Stateless: every request re-evaluates the rule, and
// the backend base is re-read from the environment each time so a deployed
// artifact can be re-pointed without a rebuild.
type Rewriter struct {
	prefix     string
	version    string
	defaultURL string
}

func NewRewriter(prefix, version, defaultURL string) *Rewriter {
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return &Rewriter{
		prefix:     strings.TrimRight(prefix, "/"),
		version:    strings.Trim(version, "/"),
		defaultURL: defaultURL,
	}
}

// Matches reports whether the path is backend-bound. Only matching requests
// are rewritten; everything else passes through untouched.
func (r *Rewriter) Matches(path string) bool {
	return path == r.prefix || strings.HasPrefix(path, r.prefix+"/")
}

// BackendBase resolves the backend origin at request time: the environment
// variable wins, then the configured default.
func (r *Rewriter) BackendBase() string {
	if v := os.Getenv(config.BackendURLEnv); v != "" {
		return v
	}
	return r.defaultURL
}

// Rewrite maps a public path and query to the full internal URL:
//
//	/api/admin/houses/list?x=1 -> <backend>/api/v1/admin/houses/list?x=1
//
// Method, body and headers are the proxy's job; this rule touches only the
// target location.
func (r *Rewriter) Rewrite(path, rawQuery string) (*url.URL, error) {
	if !r.Matches(path) {
		return nil, fmt.Errorf("path %q is not under the public prefix %q", path, r.prefix)
	}

	base, err := url.Parse(strings.TrimRight(r.BackendBase(), "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend base URL %q", r.BackendBase())
	}

	rest := strings.TrimPrefix(path, r.prefix)

	target := *base
	target.Path = base.Path + "/api/" + r.version + rest
	target.RawQuery = rawQuery
	return &target, nil
}
