package narrative

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"norya.com/report/types"
	"norya.com/report/vocab"
)

var headingPattern = regexp.MustCompile(`^\*\*([^*]+)\*\*\s*:?\s*(.*)$`)

// maxHeadingRest is the empirical cut between "heading with a short tail" and
// "measurement line that starts with a bold parameter name". Tunable, see the
// adversarial cases in the tests.
const maxHeadingRest = 80

// Splitter breaks a raw narrative into ordered (title, body) blocks. A line
// counts as a heading when its leading token is bold-wrapped and the title is
// either a known section synonym or contains a section keyword followed by a
// short remainder. Text before the first heading is dropped.
type Splitter struct {
	lang vocab.Language
}

func NewSplitter(lang vocab.Language) *Splitter {
	return &Splitter{lang: lang}
}

func (s *Splitter) Split(text string) []types.SectionBlock {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var blocks []types.SectionBlock
	var title string
	var body []string
	open := false

	flush := func() {
		blocks = append(blocks, types.SectionBlock{
			Title: title,
			Body:  strings.TrimSpace(strings.Join(body, "\n")),
		})
	}

	for _, line := range strings.Split(text, "\n") {
		if !s.isHeading(line) {
			if open {
				body = append(body, line)
			}
			continue
		}
		if open {
			flush()
		}
		match := headingPattern.FindStringSubmatch(strings.TrimSpace(line))
		title = strings.TrimSpace(match[1])
		body = nil
		if rest := strings.TrimSpace(match[2]); rest != "" {
			body = []string{rest}
		}
		open = true
	}
	if open {
		flush()
	}
	return blocks
}

func (s *Splitter) isHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "**") {
		return false
	}
	match := headingPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return false
	}
	title := normalizeTitle(match[1])
	if _, ok := s.lang.SectionTitles[title]; ok {
		return true
	}
	for _, keyword := range s.lang.SectionKeywords {
		if strings.Contains(title, keyword.Fragment) {
			// A long remainder after the title means this is most likely a
			// measurement line, not a heading.
			return utf8.RuneCountInString(strings.TrimSpace(match[2])) < maxHeadingRest
		}
	}
	return false
}

func normalizeTitle(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	title = strings.TrimSuffix(title, ":")
	return strings.TrimSpace(title)
}
