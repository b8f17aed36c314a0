// Package render maps lesson content to presentation-neutral nodes, one per
// block, in document order.
package render

import (
	"fmt"
	"strings"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/content"
)

type Node struct {
	Kind  content.BlockType `json:"kind"`
	Index int               `json:"index"`
	Key   string            `json:"key"`
	Props any               `json:"props"`
}

type Options struct {
	// RevealAnswers includes the correct option of each quiz question.
	RevealAnswers bool
}

type renderFunc func(index int, b content.Block, opts Options) any

var renderers = map[content.BlockType]renderFunc{
	content.TypeHeading:   heading,
	content.TypeText:      text,
	content.TypeVideo:     video,
	content.TypeImage:     image,
	content.TypeCode:      code,
	content.TypeChecklist: checklist,
	content.TypeAlert:     alert,
	content.TypeEmbed:     embed,
	content.TypeAudio:     audio,
	content.TypeTable:     table,
	content.TypeAccordion: accordion,
	content.TypeTimeline:  timeline,
	content.TypeQuiz:      quiz,
}

func init() {
	for _, t := range content.BlockTypes {
		if renderers[t] == nil {
			panic(fmt.Sprintf("render: no renderer for block type %q", t))
		}
	}
}

// Render produces the student view of doc: quiz answers are withheld.
func Render(doc content.Document) []Node {
	return RenderWith(doc, Options{})
}

// RenderWith maps each block to a node. Blocks of unknown type produce no
// node; blocks with missing data produce nodes with empty fields.
func RenderWith(doc content.Document, opts Options) []Node {
	nodes := make([]Node, 0, len(doc.Blocks))
	for i, b := range doc.Blocks {
		fn := renderers[b.Type]
		if fn == nil {
			continue
		}
		nodes = append(nodes, Node{Kind: b.Type, Index: i, Key: key(i, b), Props: fn(i, b, opts)})
	}
	return nodes
}

// RenderRaw renders content JSON in any accepted shape.
func RenderRaw(raw []byte, opts Options) []Node {
	return RenderWith(content.Normalize(raw), opts)
}

func key(i int, b content.Block) string {
	if b.ID == nil || *b.ID == "" {
		return fmt.Sprintf("block-%d", i)
	}
	return fmt.Sprintf("block-%d-%s", i, *b.ID)
}

type HeadingProps struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type TextProps struct {
	Text string `json:"text"`
}

type VideoProps struct {
	Provider string `json:"provider"`
	Src      string `json:"src"`
}

type ImageProps struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type CodeProps struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

type ChecklistProps struct {
	Items []content.ChecklistItem `json:"items"`
}

type AlertProps struct {
	Style string `json:"style"`
	Text  string `json:"text"`
}

// EmbedProps carries either a framed source or raw HTML, never both.
type EmbedProps struct {
	Src    string `json:"src,omitempty"`
	Height int    `json:"height,omitempty"`
	HTML   string `json:"html,omitempty"`
}

type AudioProps struct {
	Src string `json:"src"`
}

// TableProps is a rectangular grid: headers and every row are padded with
// blanks to Columns.
type TableProps struct {
	Columns int        `json:"columns"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

type AccordionProps struct {
	Items []content.AccordionItem `json:"items"`
}

type TimelineProps struct {
	Events []content.TimelineEvent `json:"events"`
}

type QuizQuestionProps struct {
	Name        string   `json:"name"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex *int     `json:"answerIndex,omitempty"`
}

type QuizProps struct {
	Questions []QuizQuestionProps `json:"questions"`
}

func heading(_ int, b content.Block, _ Options) any {
	p, ok := b.Data.(content.Heading)
	if !ok {
		p.Level = content.DefaultHeadingLevel
	}
	return HeadingProps{Level: content.ClampLevel(p.Level), Text: p.Text}
}

func text(_ int, b content.Block, _ Options) any {
	p, _ := b.Data.(content.Text)
	return TextProps{Text: p.Text}
}

const youTubeEmbedBase = "https://www.youtube.com/embed/"

func video(_ int, b content.Block, _ Options) any {
	p, _ := b.Data.(content.Video)
	switch {
	case p.Provider == content.ProviderVimeo || p.URL != "":
		return VideoProps{Provider: providerOr(p.Provider), Src: p.URL}
	case p.VideoID == "":
		return VideoProps{Provider: content.ProviderYouTube}
	case strings.Contains(p.VideoID, "://"):
		// legacy rows stored a full media url where the id belongs
		return VideoProps{Provider: content.ProviderYouTube, Src: p.VideoID}
	default:
		return VideoProps{Provider: content.ProviderYouTube, Src: youTubeEmbedBase + p.VideoID}
	}
}

func providerOr(p string) string {
	if p == "" {
		return content.ProviderYouTube
	}
	return p
}

func image(_ int, b content.Block, _ Options) any {
	p, _ := b.Data.(content.Image)
	return ImageProps{Src: p.Src, Alt: p.Alt}
}

func code(_ int, b content.Block, _ Options) any {
	p, _ := b.Data.(content.Code)
	return CodeProps{Language: p.Language, Code: p.Code}
}

func checklist(_ int, b content.Block, _ Options) any {
	p, _ := b.Data.(content.Checklist)
	return ChecklistProps{Items: append([]content.ChecklistItem{}, p.Items...)}
}

func alert(_ int, b content.Block, _ Options) any {
	p, _ := b.Data.(content.Alert)
	return AlertProps{Style: content.NormalizeAlertStyle(p.Style), Text: p.Text}
}

func embed(_ int, b content.Block, _ Options) any {
	p, _ := b.Data.(content.Embed)
	if p.Legacy() {
		return EmbedProps{HTML: p.EmbedHTML}
	}
	h := p.Height
	if h <= 0 {
		h = content.DefaultEmbedHeight
	}
	return EmbedProps{Src: p.Src, Height: h}
}

func audio(_ int, b content.Block, _ Options) any {
	p, _ := b.Data.(content.Audio)
	return AudioProps{Src: p.Src}
}

func table(_ int, b content.Block, _ Options) any {
	p, _ := b.Data.(content.Table)
	cols := len(p.Headers)
	for _, r := range p.Rows {
		cols = max(cols, len(r))
	}
	rows := make([][]string, len(p.Rows))
	for i, r := range p.Rows {
		rows[i] = pad(r, cols)
	}
	return TableProps{Columns: cols, Headers: pad(p.Headers, cols), Rows: rows}
}

func pad(in []string, n int) []string {
	out := make([]string, n)
	copy(out, in)
	return out
}

func accordion(_ int, b content.Block, _ Options) any {
	p, _ := b.Data.(content.Accordion)
	return AccordionProps{Items: append([]content.AccordionItem{}, p.Items...)}
}

func timeline(_ int, b content.Block, _ Options) any {
	p, _ := b.Data.(content.Timeline)
	return TimelineProps{Events: append([]content.TimelineEvent{}, p.Events...)}
}

func quiz(index int, b content.Block, opts Options) any {
	p, _ := b.Data.(content.Quiz)
	qs := make([]QuizQuestionProps, 0, len(p.Questions))
	for qi, q := range p.Questions {
		q = content.NormalizeQuestion(q)
		qp := QuizQuestionProps{
			Name:     fmt.Sprintf("quiz-%d-%d", index, qi),
			Question: q.Question,
			Options:  append([]string{}, q.Options...),
		}
		if opts.RevealAnswers {
			ans := q.AnswerIndex
			qp.AnswerIndex = &ans
		}
		qs = append(qs, qp)
	}
	return QuizProps{Questions: qs}
}
