package title

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Breaking.Bad.S01E02.mp4", "Breaking Bad S01E02"},
		{"Die.Hard.1988.1080p.x264.mkv", "Die Hard"},
		{"The.Matrix.1999.TRUEFRENCH.[TagTeam].mkv", "The Matrix"},
		{"Mad_Max-Fury_Road.mp4", "Mad Max Fury Road"},
		{"Star Wars - A New Hope.mkv", "Star Wars - A New Hope"},
		{"Movie.Name.(2012).BluRay.x265.avi", "Movie Name"},
		{"  Already   Clean  ", "Already Clean"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Clean(tt.input)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Star Wars - A New Hope.mkv", "Star Wars A New Hope"},
		{"Leon: The Professional.mp4", "Leon The Professional"},
		{"Amelie_Poulain.2001.VOSTFR.avi", "Amelie Poulain"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"the.matrix.1999.mkv", "The Matrix"},
		{"BREAKING_BAD.mkv", "Breaking Bad"},
		{"le.fabuleux.destin.mp4", "Le Fabuleux Destin"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Format(tt.input)
			if got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Die.Hard.1988.mp4", "die_hard"},
		{"Amélie.mp4", "amelie"},
		{"The Matrix: Reloaded.mkv", "the_matrix_reloaded"},
		{"L'Étranger.avi", "l_etranger"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Slug(tt.input)
			if got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestYear(t *testing.T) {
	y, ok := Year("Die.Hard.1988.mp4")
	if !ok || y != 1988 {
		t.Errorf("Year = %d, %v; want 1988, true", y, ok)
	}

	if _, ok := Year("Matrix.mkv"); ok {
		t.Error("Year should not match a filename without a year token")
	}

	// 4-digit numbers outside 19xx/20xx are not years
	if _, ok := Year("Movie.3000.mkv"); ok {
		t.Error("Year should not match 3000")
	}
}

func TestGenre(t *testing.T) {
	g, ok := Genre("Film.Title.[Comedie].2010.mkv")
	if !ok || g != "Comédie" {
		t.Errorf("Genre = %q, %v; want Comédie, true", g, ok)
	}

	if _, ok := Genre("Plain.Title.mkv"); ok {
		t.Error("Genre should not match without a genre token")
	}
}

func TestStripDiacritics(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Amélie", "Amelie"},
		{"Les Misérables", "Les Miserables"},
		{"naïve façade", "naive facade"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := StripDiacritics(tt.input); got != tt.want {
			t.Errorf("StripDiacritics(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
