package bind

import "strings"

// TranslatePath rewrites brace-delimited path template parameters to
// the leading-colon syntax most routers match on:
//
//	/users/{id}/posts/{postId} → /users/:id/posts/:postId
//
// The rewrite is purely textual. Parameter names are not checked for
// well-formedness, literal characters and segment boundaries are
// preserved, and a segment may contain several parameters. Templates
// without braces (including malformed ones missing a closing brace)
// pass through unchanged; if they are wrong, the router's matcher is
// where that surfaces.
func TranslatePath(template string) string {
	if !strings.ContainsRune(template, '{') {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '{' {
			b.WriteByte(c)
			continue
		}
		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			b.WriteString(template[i:])
			break
		}
		b.WriteByte(':')
		b.WriteString(template[i+1 : i+end])
		i += end
	}

	return b.String()
}
