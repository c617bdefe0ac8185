package title

import "testing"

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"star wars", "star wars", 1.0},
		{"abc", "xyz", 0.0},
		{"", "", 1.0},
		{"abcd", "abc", 0.75},
	}

	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); got != tt.want {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarity_Range(t *testing.T) {
	pairs := [][2]string{
		{"matrix", "matrix reloaded"},
		{"star wars a", "star wars the"},
		{"fast and furious", "fast and furiouser"},
	}
	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %v, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestClusterKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Star Wars - A New Hope.mkv", "star wars a"},
		{"The.Matrix.1999.1080p.mkv", "the matrix"},
		{"Amélie.Poulain.avi", "amelie poulain"},
		{"One.mp4", "one"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ClusterKey(tt.input); got != tt.want {
				t.Errorf("ClusterKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
