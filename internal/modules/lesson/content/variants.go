package content

import (
	"fmt"
	"strings"
)

type variant struct {
	fields []string
	// exclusive lists the fields cleared when the key is set.
	exclusive map[string][]string
	empty     func() Payload
	decode    func(m map[string]any) Payload
}

var variants = map[BlockType]variant{
	TypeHeading: {
		fields: []string{"level", "text"},
		empty:  func() Payload { return Heading{Level: DefaultHeadingLevel} },
		decode: func(m map[string]any) Payload {
			return Heading{Level: ClampLevel(intFromAny(m["level"], DefaultHeadingLevel)), Text: stringFromAny(m["text"])}
		},
	},
	TypeText: {
		fields: []string{"text"},
		empty:  func() Payload { return Text{} },
		decode: func(m map[string]any) Payload {
			return Text{Text: stringFromAny(firstPresent(m, "text", "content"))}
		},
	},
	TypeVideo: {
		fields: []string{"provider", "videoId", "url"},
		empty:  func() Payload { return Video{Provider: ProviderYouTube} },
		decode: decodeVideo,
	},
	TypeImage: {
		fields: []string{"src", "alt"},
		empty:  func() Payload { return Image{} },
		decode: func(m map[string]any) Payload {
			return Image{Src: stringFromAny(firstPresent(m, "src", "url")), Alt: stringFromAny(m["alt"])}
		},
	},
	TypeCode: {
		fields: []string{"language", "code"},
		empty:  func() Payload { return Code{Language: "javascript"} },
		decode: func(m map[string]any) Payload {
			lang := stringFromAny(m["language"])
			if strings.TrimSpace(lang) == "" {
				lang = "javascript"
			}
			return Code{Language: lang, Code: stringFromAny(m["code"])}
		},
	},
	TypeChecklist: {
		fields: []string{"items"},
		empty:  func() Payload { return Checklist{Items: []ChecklistItem{}} },
		decode: func(m map[string]any) Payload {
			raw := mapsFromAny(m["items"])
			items := make([]ChecklistItem, 0, len(raw))
			for _, it := range raw {
				items = append(items, ChecklistItem{Text: stringFromAny(it["text"]), Checked: boolFromAny(it["checked"])})
			}
			return Checklist{Items: items}
		},
	},
	TypeAlert: {
		fields: []string{"style", "text"},
		empty:  func() Payload { return Alert{Style: AlertInfo} },
		decode: func(m map[string]any) Payload {
			return Alert{Style: NormalizeAlertStyle(stringFromAny(m["style"])), Text: stringFromAny(m["text"])}
		},
	},
	TypeEmbed: {
		fields: []string{"src", "height", "embedHtml"},
		exclusive: map[string][]string{
			"embedHtml": {"src", "height"},
			"src":       {"embedHtml"},
			"height":    {"embedHtml"},
		},
		empty:  func() Payload { return Embed{Height: DefaultEmbedHeight} },
		decode: decodeEmbed,
	},
	TypeAudio: {
		fields: []string{"src"},
		empty:  func() Payload { return Audio{} },
		decode: func(m map[string]any) Payload {
			return Audio{Src: stringFromAny(firstPresent(m, "src", "url"))}
		},
	},
	TypeTable: {
		fields: []string{"headers", "rows"},
		empty:  func() Payload { return Table{Headers: []string{""}, Rows: [][]string{{""}}} },
		decode: func(m map[string]any) Payload {
			t := Table{Headers: stringsFromAny(m["headers"]), Rows: stringMatrixFromAny(m["rows"])}
			if t.Headers == nil {
				t.Headers = []string{}
			}
			if t.Rows == nil {
				t.Rows = [][]string{}
			}
			return t
		},
	},
	TypeAccordion: {
		fields: []string{"items"},
		empty:  func() Payload { return Accordion{Items: []AccordionItem{{}}} },
		decode: func(m map[string]any) Payload {
			raw := mapsFromAny(m["items"])
			items := make([]AccordionItem, 0, len(raw))
			for _, it := range raw {
				items = append(items, AccordionItem{
					Title:   stringFromAny(it["title"]),
					Content: stringFromAny(firstPresent(it, "content", "text")),
				})
			}
			return Accordion{Items: items}
		},
	},
	TypeTimeline: {
		fields: []string{"events"},
		empty:  func() Payload { return Timeline{Events: []TimelineEvent{{}}} },
		decode: func(m map[string]any) Payload {
			raw := mapsFromAny(m["events"])
			events := make([]TimelineEvent, 0, len(raw))
			for _, it := range raw {
				events = append(events, TimelineEvent{Date: stringFromAny(it["date"]), Text: stringFromAny(it["text"])})
			}
			return Timeline{Events: events}
		},
	},
	TypeQuiz: {
		fields: []string{"questions"},
		empty: func() Payload {
			return Quiz{Questions: []QuizQuestion{NewQuizQuestion()}}
		},
		decode: func(m map[string]any) Payload {
			raw := mapsFromAny(m["questions"])
			qs := make([]QuizQuestion, 0, len(raw))
			for _, it := range raw {
				q := QuizQuestion{
					Question:    stringFromAny(it["question"]),
					Options:     stringsFromAny(it["options"]),
					AnswerIndex: intFromAny(firstPresent(it, "answerIndex", "answer_index", "answer"), 0),
				}
				qs = append(qs, NormalizeQuestion(q))
			}
			return Quiz{Questions: qs}
		},
	},
}

func init() {
	for _, t := range BlockTypes {
		v, ok := variants[t]
		if !ok || v.empty == nil || v.decode == nil {
			panic(fmt.Sprintf("content: block type %q has no variant definition", t))
		}
	}
}

// CreateDefault returns a new block of type t with its canonical empty payload.
func CreateDefault(t BlockType) (Block, error) {
	v, ok := variants[t]
	if !ok {
		return Block{}, &SchemaMismatchError{Op: "createDefault", Type: t}
	}
	return Block{Type: t, Data: v.empty()}, nil
}

func declares(t BlockType, field string) bool {
	for _, f := range variants[t].fields {
		if f == field {
			return true
		}
	}
	return false
}

// DecodePayload builds a normalized payload for t from generic JSON data.
func DecodePayload(t BlockType, m map[string]any) Payload {
	v, ok := variants[t]
	if !ok {
		if m == nil {
			m = map[string]any{}
		}
		return Unknown{Type: t, Raw: m}
	}
	if m == nil {
		m = map[string]any{}
	}
	return v.decode(m)
}

// MergeField shallow-merges {key: value} into p and returns the resulting
// payload. p itself is never modified.
func MergeField(p Payload, key string, value any) (Payload, error) {
	t := p.Kind()
	v, ok := variants[t]
	if !ok || !declares(t, key) {
		return p, &SchemaMismatchError{Op: "updateBlockData", Type: t, Field: key}
	}
	jv, err := jsonValue(value)
	if err != nil {
		return p, fmt.Errorf("updateBlockData %s.%s: %w", t, key, err)
	}
	m := payloadMap(p)
	for _, drop := range v.exclusive[key] {
		delete(m, drop)
	}
	m[key] = jv
	if t == TypeVideo {
		retargetVideo(m, key)
	}
	return v.decode(m), nil
}

// retargetVideo keeps provider in step with the source field just written:
// a url makes the block a vimeo link, a videoId makes it a youtube id.
func retargetVideo(m map[string]any, key string) {
	switch key {
	case "url":
		if strings.TrimSpace(stringFromAny(m["url"])) == "" {
			return
		}
		m["provider"] = ProviderVimeo
		delete(m, "videoId")
	case "videoId":
		if strings.TrimSpace(stringFromAny(m["videoId"])) == "" {
			return
		}
		m["provider"] = ProviderYouTube
		delete(m, "url")
	}
}

// DefaultHeadingLevel applies when a heading carries no level at all.
const DefaultHeadingLevel = 2

// ClampLevel forces level into 1..6. An explicit 0 counts as out of range.
func ClampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 6:
		return 6
	default:
		return level
	}
}

func NormalizeAlertStyle(s string) string {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case AlertInfo, AlertSuccess, AlertWarning, AlertDanger:
		return s
	default:
		return AlertInfo
	}
}

func NewQuizQuestion() QuizQuestion {
	return QuizQuestion{Options: []string{""}}
}

// NormalizeQuestion guarantees at least one option and an answer index that
// addresses one of them.
func NormalizeQuestion(q QuizQuestion) QuizQuestion {
	if len(q.Options) == 0 {
		q.Options = []string{""}
	}
	if q.AnswerIndex < 0 {
		q.AnswerIndex = 0
	}
	if q.AnswerIndex >= len(q.Options) {
		q.AnswerIndex = len(q.Options) - 1
	}
	return q
}

func decodeVideo(m map[string]any) Payload {
	provider := strings.ToLower(strings.TrimSpace(stringFromAny(m["provider"])))
	id := strings.TrimSpace(stringFromAny(firstPresent(m, "videoId", "video_id")))
	url := strings.TrimSpace(stringFromAny(m["url"]))
	if provider == "" && url != "" && IsVimeoURL(url) {
		provider = ProviderVimeo
	}
	if provider == ProviderVimeo {
		return Video{Provider: ProviderVimeo, URL: url}
	}
	if id == "" && url != "" {
		id = ExtractVideoID(url)
	}
	return Video{Provider: ProviderYouTube, VideoID: id}
}

func decodeEmbed(m map[string]any) Payload {
	html := stringFromAny(firstPresent(m, "embedHtml", "embed_html", "html"))
	if html != "" {
		return Embed{EmbedHTML: html}
	}
	h := intFromAny(m["height"], DefaultEmbedHeight)
	if h <= 0 {
		h = DefaultEmbedHeight
	}
	return Embed{Src: stringFromAny(m["src"]), Height: h}
}

// ClonePayload deep-copies the collection fields of p.
func ClonePayload(p Payload) Payload {
	switch t := p.(type) {
	case Checklist:
		t.Items = append([]ChecklistItem(nil), t.Items...)
		if t.Items == nil {
			t.Items = []ChecklistItem{}
		}
		return t
	case Table:
		headers := append([]string{}, t.Headers...)
		rows := make([][]string, len(t.Rows))
		for i, r := range t.Rows {
			rows[i] = append([]string{}, r...)
		}
		return Table{Headers: headers, Rows: rows}
	case Accordion:
		return Accordion{Items: append([]AccordionItem{}, t.Items...)}
	case Timeline:
		return Timeline{Events: append([]TimelineEvent{}, t.Events...)}
	case Quiz:
		qs := make([]QuizQuestion, len(t.Questions))
		for i, q := range t.Questions {
			q.Options = append([]string{}, q.Options...)
			qs[i] = q
		}
		return Quiz{Questions: qs}
	case Unknown:
		return Unknown{Type: t.Type, Raw: payloadMap(t)}
	default:
		return p
	}
}
