package pathutil

// Join concatenates a base path and an entry name with exactly one '/'
// between them, never two. A trailing '/' on base is preserved by
// appending name directly rather than inserting a second separator.
// Unlike filepath.Join, it performs no cleaning: the result is the literal
// byte concatenation spec.md §9 requires, so callers get back exactly the
// path they asked for (no "." collapsing, no symlink resolution).
func Join(base, name string) string {
	if base == "" {
		return name
	}
	if base[len(base)-1] == '/' {
		return base + name
	}
	return base + "/" + name
}
