package site

import (
	"errors"
	"net/http"
	"strings"
)

// Path canonicalization errors.
var (
	ErrBackslashInPath      = errors.New("site: path contains backslash")
	ErrNullByteInPath       = errors.New("site: path contains null byte")
	ErrInvalidPercentEscape = errors.New("site: invalid percent escape")
	ErrPathEscapesRoot      = errors.New("site: path escapes root")
)

// CanonicalPath normalizes a request path: it adds the leading slash,
// collapses repeated slashes, resolves "." and ".." segments and drops the
// trailing slash. Paths that cannot be served safely are rejected.
func CanonicalPath(p string) (string, error) {
	if strings.Contains(p, `\`) {
		return "", ErrBackslashInPath
	}
	if strings.Contains(p, "\x00") || strings.Contains(strings.ToUpper(p), "%00") {
		return "", ErrNullByteInPath
	}
	if err := validEscapes(p); err != nil {
		return "", err
	}

	segments := make([]string, 0, strings.Count(p, "/")+1)
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segments) == 0 {
				return "", ErrPathEscapesRoot
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, seg)
		}
	}
	return "/" + strings.Join(segments, "/"), nil
}

func validEscapes(p string) error {
	for i := 0; i < len(p); i++ {
		if p[i] != '%' {
			continue
		}
		if i+2 >= len(p) || !isHex(p[i+1]) || !isHex(p[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// canonicalize redirects requests for non-canonical paths to their
// canonical form and answers 400 for paths CanonicalPath rejects.
func canonicalize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.EscapedPath()
		p, err := CanonicalPath(raw)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if p != raw {
			target := p
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusPermanentRedirect)
			return
		}
		next.ServeHTTP(w, r)
	})
}
