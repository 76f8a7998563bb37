package graph

// Diff returns the elements of a that are not in b, deduplicated, in the
// order they first appear in a. The result is never nil.
func Diff(a, b []string) []string {
	exclude := make(map[string]struct{}, len(b))
	for _, x := range b {
		exclude[x] = struct{}{}
	}

	out := make([]string, 0)
	for _, x := range a {
		if _, skip := exclude[x]; skip {
			continue
		}
		exclude[x] = struct{}{}
		out = append(out, x)
	}
	return out
}
