package pathshort

import (
	"reflect"
	"testing"
)

func TestShorten(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		siblings []string
		want     string
	}{
		{
			name:     "no siblings keeps leaf",
			target:   "/home/user/projects/alpha",
			siblings: nil,
			want:     "alpha",
		},
		{
			name:     "disjoint paths keep leaf",
			target:   "/a/b/c",
			siblings: []string{"/d/e/f"},
			want:     "c",
		},
		{
			name:     "leaf collision grows by one segment",
			target:   "/home/user/projects/alpha",
			siblings: []string{"/home/user/work/alpha"},
			want:     "projects/alpha",
		},
		{
			name:     "deep suffix collision grows to full path",
			target:   "/a/b/c",
			siblings: []string{"/d/b/c"},
			want:     "a/b/c",
		},
		{
			name:     "shorter path exhausts to its full form",
			target:   "/b/c",
			siblings: []string{"/a/b/c"},
			want:     "b/c",
		},
		{
			name:     "deeply nested diverges early",
			target:   "/x/y/z/w/dir",
			siblings: []string{"/x/y/q/w/dir"},
			want:     "z/w/dir",
		},
		{
			name:     "identical paths both keep leaf",
			target:   "/home/user/projects/alpha",
			siblings: []string{"/home/user/projects/alpha"},
			want:     "alpha",
		},
		{
			name:     "identical plus distinct sibling",
			target:   "/a/b/dir",
			siblings: []string{"/a/b/dir", "/c/d/dir"},
			want:     "b/dir",
		},
		{
			name:     "multiple siblings pick first unique suffix",
			target:   "/p/q/r/s",
			siblings: []string{"/x/q/r/s", "/p/z/r/s"},
			want:     "p/q/r/s",
		},
		{
			name:     "root target stays root",
			target:   "/",
			siblings: []string{"/home/user"},
			want:     "/",
		},
		{
			name:     "trailing separator ignored",
			target:   "/a/b/c/",
			siblings: nil,
			want:     "c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shorten(tt.target, tt.siblings, false)
			if got != tt.want {
				t.Errorf("Shorten(%q, %v) = %q, want %q",
					tt.target, tt.siblings, got, tt.want)
			}
		})
	}
}

func TestShortenPairwiseSymmetry(t *testing.T) {
	// Both windows of a colliding pair must receive suffixes that differ.
	a := "/home/user/projects/alpha"
	b := "/home/user/work/alpha"

	shortA := Shorten(a, []string{b}, false)
	shortB := Shorten(b, []string{a}, false)

	if shortA == shortB {
		t.Errorf("colliding directories produced the same name %q", shortA)
	}
	if shortA != "projects/alpha" {
		t.Errorf("first window: got %q, want %q", shortA, "projects/alpha")
	}
	if shortB != "work/alpha" {
		t.Errorf("second window: got %q, want %q", shortB, "work/alpha")
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/a/b/c", []string{"a", "b", "c"}},
		{"a/b", []string{"a", "b"}},
		{"/", nil},
		{"", nil},
		{"/single", []string{"single"}},
	}

	for _, tt := range tests {
		got := Split(tt.path)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Split(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestApplyTilde(t *testing.T) {
	tests := []struct {
		name string
		path string
		home string
		want string
	}{
		{"home itself", "/home/user", "/home/user", "~"},
		{"under home", "/home/user/projects", "/home/user", "~/projects"},
		{"outside home", "/etc/nginx", "/home/user", "/etc/nginx"},
		{"prefix but not a segment", "/home/username/x", "/home/user", "/home/username/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyTilde(tt.path, tt.home)
			if got != tt.want {
				t.Errorf("ApplyTilde(%q, %q) = %q, want %q", tt.path, tt.home, got, tt.want)
			}
		})
	}
}
