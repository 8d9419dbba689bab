// Package schema discovers the column layout of uploaded tabular files.
// The schema map is ephemeral: every request re-scans the upload directory,
// so newly uploaded files are visible immediately.
package schema

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// delimiters in priority order; ties go to the earlier candidate.
var delimiters = []string{",", ";", "\t", "|"}

var headerTokenSplit = regexp.MustCompile(`[\s,;]+`)

// GuessDelimiter picks the delimiter with the highest count in the line.
func GuessDelimiter(line string) string {
	guessed := ","
	maxCount := 0
	for _, d := range delimiters {
		if count := strings.Count(line, d); count > maxCount {
			maxCount = count
			guessed = d
		}
	}
	return guessed
}

// IsHeaderLine reports whether a line looks like a column header: more than
// half of its tokens fail to parse as a number.
func IsHeaderLine(line string) bool {
	tokens := headerTokenSplit.Split(strings.TrimSpace(line), -1)
	nonNumeric := 0
	total := 0
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		total++
		if _, err := strconv.ParseFloat(tok, 64); err != nil {
			nonNumeric++
		}
	}
	return nonNumeric > total/2
}

func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", nil
}

// Discover scans dir for CSV files and maps each usable file name to its
// column headers. Files whose first line fails the header heuristic are
// silently omitted; an unreadable or empty directory yields an empty map,
// which callers treat as "no data uploaded yet".
func Discover(dir string) map[string][]string {
	headers := map[string][]string{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return headers
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ".csv" {
			continue
		}

		line, err := readFirstLine(filepath.Join(dir, entry.Name()))
		if err != nil || line == "" {
			continue
		}
		if !IsHeaderLine(line) {
			continue
		}

		cols := strings.Split(strings.TrimRight(line, "\r"), GuessDelimiter(line))
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}
		headers[entry.Name()] = cols
	}

	return headers
}

// CSVPath resolves the analysis input path for a discovered file name.
func CSVPath(dir, name string) string {
	return filepath.Join(dir, name)
}

// FormatIndexes renders a schema map as the listing shown to users when
// they ask which indexes are available.
func FormatIndexes(headers map[string][]string) string {
	if len(headers) == 0 {
		return "No data files have been uploaded yet."
	}

	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("The uploaded data files contain the following indexes:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "\n**%s**: %s\n", name, strings.Join(headers[name], ", "))
	}
	return b.String()
}
