package assets

import (
	"net/url"
	"strings"
)

// PublicURL joins base with the public object layout. Path segments are
// escaped individually.
func PublicURL(base, bucket, path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.TrimRight(base, "/") + PublicPathPrefix + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}

// ParsePublicURL resolves a public object URL back to its bucket and path.
func ParsePublicURL(raw string) (bucket, path string, err error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", ErrUnsupportedURL
	}
	idx := strings.Index(parsed.EscapedPath(), PublicPathPrefix)
	if idx == -1 {
		return "", "", ErrUnsupportedURL
	}
	rest := parsed.EscapedPath()[idx+len(PublicPathPrefix):]
	escapedBucket, escapedPath, _ := strings.Cut(rest, "/")
	if escapedBucket == "" || escapedPath == "" {
		return "", "", ErrUnsupportedURL
	}
	if bucket, err = url.PathUnescape(escapedBucket); err != nil {
		return "", "", ErrUnsupportedURL
	}
	if path, err = url.PathUnescape(escapedPath); err != nil {
		return "", "", ErrUnsupportedURL
	}
	return bucket, path, nil
}

// cleanPath rejects empty, absolute and parent-relative object paths.
func cleanPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" || strings.HasPrefix(path, "/") || strings.Contains(path, "\\") {
		return "", ErrInvalidPath
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return "", ErrInvalidPath
		}
	}
	return path, nil
}
