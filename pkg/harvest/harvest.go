package harvest

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/japaniel/verbpractice/pkg/content"
)

// Article is the readable part of a fetched page.
type Article struct {
	Title string
	Text  string
}

// Extract cleans an HTML page with CleanPage and pulls the main article
// text out of it.
func Extract(html []byte, pageURL string) (Article, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return Article{}, fmt.Errorf("parse url: %w", err)
	}
	article, err := readability.FromReader(bytes.NewReader(CleanPage(html)), u)
	if err != nil {
		return Article{}, fmt.Errorf("extract article: %w", err)
	}
	return Article{Title: article.Title, Text: article.TextContent}, nil
}

// SplitSentences splits English text on ., ! and ? followed by whitespace,
// and on line breaks. Surrounding whitespace is trimmed and runs of inner
// whitespace collapse to one space.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.Join(strings.Fields(current.String()), " ")
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		if r == '\n' {
			flush()
			continue
		}
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// "3.5" or "e.g.x" are not boundaries.
			if i+1 == len(runes) || isSpace(runes[i+1]) {
				flush()
			}
		}
	}
	flush()
	return sentences
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Match is a sentence proposed as an example for one verb.
type Match struct {
	BaseForm string
	Sentence string
}

// FindExamples returns, per verb, up to limit sentences that contain the
// verb's base, past or participle form as a whole word, ignoring case.
// Sentences already saved as user examples are skipped. Results follow the
// order of verbs, then the order of sentences. limit <= 0 means no cap.
func FindExamples(sentences []string, verbs []content.VerbRecord, limit int) []Match {
	var out []Match
	for _, v := range verbs {
		re := formsPattern(v)
		if re == nil {
			continue
		}
		known := make(map[string]bool, len(v.UserExamples))
		for _, s := range v.UserExamples {
			known[s] = true
		}

		n := 0
		for _, s := range sentences {
			if limit > 0 && n >= limit {
				break
			}
			if known[s] || !re.MatchString(s) {
				continue
			}
			known[s] = true
			out = append(out, Match{BaseForm: v.BaseForm, Sentence: s})
			n++
		}
	}
	return out
}

func formsPattern(v content.VerbRecord) *regexp.Regexp {
	seen := map[string]bool{}
	var forms []string
	for _, f := range []string{v.BaseForm, v.PastForm, v.ParticipleForm} {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		forms = append(forms, regexp.QuoteMeta(f))
	}
	if len(forms) == 0 {
		return nil
	}
	// Longest first so "gone" is tried before "go".
	sort.Slice(forms, func(i, j int) bool { return len(forms[i]) > len(forms[j]) })
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(forms, "|") + `)\b`)
}
