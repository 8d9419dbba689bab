package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGuessDelimiter(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"comma separated", "age,income,city", ","},
		{"semicolon separated", "age;income;city", ";"},
		{"tab separated", "age\tincome\tcity", "\t"},
		{"pipe separated", "age|income|city", "|"},
		{"comma wins on tie with later delimiter", "a,b;c,d,e", ","},
		{"no delimiter defaults to comma", "age", ","},
		{"empty line defaults to comma", "", ","},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GuessDelimiter(tt.line)
			if got != tt.want {
				t.Errorf("GuessDelimiter(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsHeaderLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"all names", "age,income,city", true},
		{"all numbers", "34,52000,3", false},
		{"majority numeric", "34,52000,chicago", false},
		{"majority non-numeric", "age,income,3", true},
		{"floats are numeric", "1.5,2.25,3.75", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsHeaderLine(tt.line)
			if got != tt.want {
				t.Errorf("IsHeaderLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "housing.csv", "price,sqft,rooms\n100000,900,3\n")
	writeFile(t, dir, "transit.CSV", "line;ridership;year\nred;12000;2020\n")
	writeFile(t, dir, "headerless.csv", "1,2,3\n4,5,6\n")
	writeFile(t, dir, "notes.txt", "not a data file\n")

	headers := Discover(dir)

	if len(headers) != 2 {
		t.Fatalf("Discover() found %d files, want 2: %v", len(headers), headers)
	}

	wantHousing := []string{"price", "sqft", "rooms"}
	if !equalSlices(headers["housing.csv"], wantHousing) {
		t.Errorf("housing.csv columns = %v, want %v", headers["housing.csv"], wantHousing)
	}

	wantTransit := []string{"line", "ridership", "year"}
	if !equalSlices(headers["transit.CSV"], wantTransit) {
		t.Errorf("transit.CSV columns = %v, want %v", headers["transit.CSV"], wantTransit)
	}

	if _, ok := headers["headerless.csv"]; ok {
		t.Error("headerless.csv should be skipped, its first line is numeric")
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	headers := Discover(filepath.Join(t.TempDir(), "nope"))
	if len(headers) != 0 {
		t.Errorf("Discover() on missing dir = %v, want empty", headers)
	}
}

func TestFormatIndexes(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got := FormatIndexes(map[string][]string{})
		if got != "No data files have been uploaded yet." {
			t.Errorf("FormatIndexes(empty) = %q", got)
		}
	})

	t.Run("sorted by file name", func(t *testing.T) {
		got := FormatIndexes(map[string][]string{
			"b.csv": {"x", "y"},
			"a.csv": {"age", "income"},
		})
		if !strings.Contains(got, "**a.csv**: age, income") {
			t.Errorf("missing a.csv listing in %q", got)
		}
		if strings.Index(got, "a.csv") > strings.Index(got, "b.csv") {
			t.Errorf("listing not sorted: %q", got)
		}
	})
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func equalSlices(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
