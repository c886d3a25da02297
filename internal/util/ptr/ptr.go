// Package ptr provides helpers for optional config values.
package ptr

// Int returns a pointer to the given int value.
func Int(i int) *int { return &i }

// Deref returns *p, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
