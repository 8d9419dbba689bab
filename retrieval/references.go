package retrieval

import "strings"

// DedupReferences collapses context snippets into a list of distinct
// source references. The fingerprint is the text before the first period,
// after normalizing the "U.S." abbreviation so its periods don't truncate
// the sentence. Order-preserving; first occurrence wins.
func DedupReferences(snippets []string) []string {
	seen := map[string]bool{}
	var references []string

	for _, snippet := range snippets {
		normalized := strings.ReplaceAll(snippet, "U.S.", "US")
		sentence := normalized
		if idx := strings.Index(normalized, "."); idx >= 0 {
			sentence = normalized[:idx]
		}
		sentence = strings.TrimSpace(sentence)
		if sentence == "" || seen[sentence] {
			continue
		}
		seen[sentence] = true
		references = append(references, sentence)
	}

	return references
}
