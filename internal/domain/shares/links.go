package shares

import (
	"net/url"
	"strings"
)

const sharedPath = "shared"

// BuildLink arma {base}/shared/{token}. Query y fragment del base quedan al
// final, así un base como https://app/#/inicio sigue funcionando.
func BuildLink(baseURL, token string) string {
	base := strings.TrimSpace(baseURL)
	suffix := "/" + sharedPath + "/"

	u, err := url.Parse(base)
	if err != nil || u.Opaque != "" {
		return strings.TrimRight(base, "/") + suffix + url.PathEscape(token)
	}

	rawPath := strings.TrimRight(u.EscapedPath(), "/") + suffix + url.PathEscape(token)
	u.Path = strings.TrimRight(u.Path, "/") + suffix + token
	u.RawPath = rawPath
	return u.String()
}

// ExtractToken acepta el código pegado tal cual o un link completo
// (toma el último segmento del path; si el path no trae nada, el del fragment).
func ExtractToken(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if !strings.Contains(input, "/") {
		if tok, err := url.PathUnescape(input); err == nil {
			return tok
		}
		return input
	}

	escaped := input
	if u, err := url.Parse(input); err == nil && u.Opaque == "" {
		escaped = u.EscapedPath()
		if lastSegment(escaped) == "" && u.Fragment != "" {
			escaped = u.EscapedFragment()
		}
	}

	seg := lastSegment(escaped)
	// {base}/shared/ sin token
	if seg == sharedPath && prevSegment(escaped) != sharedPath {
		return ""
	}
	tok, err := url.PathUnescape(seg)
	if err != nil {
		return seg
	}
	return tok
}

func lastSegment(p string) string {
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

func prevSegment(p string) string {
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return lastSegment(p[:i])
	}
	return ""
}
