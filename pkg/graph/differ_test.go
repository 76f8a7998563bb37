package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want []string
	}{
		{"following minus followers", []string{"u2", "u3", "u4"}, []string{"u1", "u2", "u3"}, []string{"u4"}},
		{"disjoint keeps order", []string{"c", "a", "b"}, []string{"x"}, []string{"c", "a", "b"}},
		{"subset", []string{"a"}, []string{"a", "b"}, []string{}},
		{"empty a", nil, []string{"a"}, []string{}},
		{"empty b", []string{"a", "b"}, nil, []string{"a", "b"}},
		{"duplicates in a", []string{"a", "b", "a", "c", "b"}, []string{"c"}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.a, tt.b)
			assert.Equal(t, tt.want, got)
			for _, x := range got {
				assert.NotContains(t, tt.b, x)
				assert.Contains(t, tt.a, x)
			}
		})
	}
}
