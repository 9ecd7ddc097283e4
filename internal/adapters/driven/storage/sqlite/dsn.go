package sqlite

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

const (
	readOnlyParams  = "mode=ro&_pragma=busy_timeout(5000)"
	readWriteParams = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
)

// fileDSN builds a SQLite URI for path with the given raw query.
// The path is percent-encoded, so names containing '?', '#' or '%'
// reach SQLite unchanged.
func fileDSN(path, rawQuery string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving database path: %w", err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: rawQuery}
	return u.String(), nil
}
