package content

import (
	"regexp"
	"strings"
)

const wordsPerMinute = 200

var wordRE = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)?`)

func WordCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return len(wordRE.FindAllString(s, -1))
}

type Stats struct {
	Blocks           int               `json:"blocks"`
	BlockCounts      map[BlockType]int `json:"block_counts"`
	WordCount        int               `json:"word_count"`
	QuestionCount    int               `json:"question_count"`
	EstimatedMinutes int               `json:"estimated_minutes"`
}

// DocumentStats summarises a document for listings and reading-time hints.
func DocumentStats(doc Document) Stats {
	st := Stats{Blocks: len(doc.Blocks), BlockCounts: map[BlockType]int{}}
	for _, b := range doc.Blocks {
		st.BlockCounts[b.Type]++
		switch p := b.Data.(type) {
		case Heading:
			st.WordCount += WordCount(p.Text)
		case Text:
			st.WordCount += WordCount(p.Text)
		case Alert:
			st.WordCount += WordCount(p.Text)
		case Image:
			st.WordCount += WordCount(p.Alt)
		case Checklist:
			for _, it := range p.Items {
				st.WordCount += WordCount(it.Text)
			}
		case Table:
			st.WordCount += WordCount(strings.Join(p.Headers, " "))
			for _, r := range p.Rows {
				st.WordCount += WordCount(strings.Join(r, " "))
			}
		case Accordion:
			for _, it := range p.Items {
				st.WordCount += WordCount(it.Title + " " + it.Content)
			}
		case Timeline:
			for _, ev := range p.Events {
				st.WordCount += WordCount(ev.Text)
			}
		case Quiz:
			st.QuestionCount += len(p.Questions)
			for _, q := range p.Questions {
				st.WordCount += WordCount(q.Question + " " + strings.Join(q.Options, " "))
			}
		}
	}
	if st.Blocks > 0 {
		st.EstimatedMinutes = (st.WordCount + wordsPerMinute - 1) / wordsPerMinute
		if st.EstimatedMinutes < 1 {
			st.EstimatedMinutes = 1
		}
	}
	return st
}
