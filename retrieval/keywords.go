package retrieval

import (
	"encoding/json"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxKeywordMatches caps how many keywords are fed into a search query.
const maxKeywordMatches = 3

var (
	jsonStructure = regexp.MustCompile(`[{\[\]}]`)
	punctuation   = regexp.MustCompile("[.,/#!$%^&*;:{}=\\-_`~()]")
	whitespace    = regexp.MustCompile(`\s+`)
)

// Keywords is the configured keyword list matched against user messages
// before retrieval.
type Keywords struct {
	list []string
}

// LoadKeywords reads a JSON string array from path. A missing file or an
// empty list yields an empty matcher, not an error.
func LoadKeywords(path string) (*Keywords, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Keywords{}, nil
	}
	if err != nil {
		return nil, err
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return &Keywords{list: list}, nil
}

// Match ranks the keyword list by relevance to the sentence and returns
// the top three. Relevance counts shared words, with a fuzzy fallback per
// word so misspellings still register. Keywords with no relevance at all
// are not returned.
func (k *Keywords) Match(sentence string) []string {
	if len(k.list) == 0 {
		return nil
	}

	processed := jsonStructure.ReplaceAllString(sentence, "")
	processed = punctuation.ReplaceAllString(processed, "")
	processed = strings.ToLower(processed)
	sentenceWords := whitespace.Split(strings.TrimSpace(processed), -1)

	type ranked struct {
		keyword string
		score   int
	}
	scores := make([]ranked, 0, len(k.list))
	for _, keyword := range k.list {
		scores = append(scores, ranked{keyword, relevance(keyword, sentenceWords)})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	var matched []string
	for _, r := range scores {
		if r.score == 0 || len(matched) == maxKeywordMatches {
			break
		}
		matched = append(matched, r.keyword)
	}
	return matched
}

func relevance(keyword string, sentenceWords []string) int {
	score := 0
	for _, word := range strings.Fields(strings.ToLower(keyword)) {
		exact := false
		for _, sw := range sentenceWords {
			if sw == word {
				exact = true
				break
			}
		}
		if exact {
			score += 2
		} else if len(fuzzy.Find(word, sentenceWords)) > 0 {
			score++
		}
	}
	return score
}
