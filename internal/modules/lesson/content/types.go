package content

import (
	"bytes"
	"encoding/json"
	"strings"
)

type BlockType string

const (
	TypeHeading   BlockType = "heading"
	TypeText      BlockType = "text"
	TypeVideo     BlockType = "video"
	TypeImage     BlockType = "image"
	TypeCode      BlockType = "code"
	TypeChecklist BlockType = "checklist"
	TypeAlert     BlockType = "alert"
	TypeEmbed     BlockType = "embed"
	TypeAudio     BlockType = "audio"
	TypeTable     BlockType = "table"
	TypeAccordion BlockType = "accordion"
	TypeTimeline  BlockType = "timeline"
	TypeQuiz      BlockType = "quiz"
)

// BlockTypes lists every known block type in authoring-menu order.
var BlockTypes = []BlockType{
	TypeHeading,
	TypeText,
	TypeVideo,
	TypeImage,
	TypeCode,
	TypeChecklist,
	TypeAlert,
	TypeEmbed,
	TypeAudio,
	TypeTable,
	TypeAccordion,
	TypeTimeline,
	TypeQuiz,
}

func ParseBlockType(s string) BlockType {
	return BlockType(strings.ToLower(strings.TrimSpace(s)))
}

// Payload is the variant-specific data of a block. Implementations are plain
// value types; edits always produce a new payload.
type Payload interface {
	Kind() BlockType
}

type Block struct {
	ID   *string   `json:"id"`
	Type BlockType `json:"type"`
	Data Payload   `json:"data"`
}

type Document struct {
	Blocks []Block `json:"blocks"`
}

func (d Document) Len() int { return len(d.Blocks) }

// Clone returns a document whose block slice and payloads share nothing with d.
func (d Document) Clone() Document {
	out := Document{Blocks: make([]Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		out.Blocks[i] = b.Clone()
	}
	return out
}

func (b Block) Clone() Block {
	out := Block{Type: b.Type, Data: ClonePayload(b.Data)}
	if b.ID != nil {
		id := *b.ID
		out.ID = &id
	}
	return out
}

func (d Document) MarshalJSON() ([]byte, error) {
	blocks := d.Blocks
	if blocks == nil {
		blocks = []Block{}
	}
	return json.Marshal(struct {
		Blocks []Block `json:"blocks"`
	}{Blocks: blocks})
}

// UnmarshalJSON accepts canonical and legacy content alike.
func (d *Document) UnmarshalJSON(raw []byte) error {
	*d = Normalize(raw)
	return nil
}

func (b *Block) UnmarshalJSON(raw []byte) error {
	var m map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return err
	}
	blk, ok := blockFromMap(m)
	if !ok {
		return &SchemaMismatchError{Op: "decode", Type: BlockType(stringFromAny(m["type"]))}
	}
	*b = blk
	return nil
}

type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type Text struct {
	Text string `json:"text"`
}

const (
	ProviderYouTube = "youtube"
	ProviderVimeo   = "vimeo"
)

type Video struct {
	Provider string `json:"provider"`
	VideoID  string `json:"videoId"`
	URL      string `json:"url,omitempty"`
}

type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type Code struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

type ChecklistItem struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

type Checklist struct {
	Items []ChecklistItem `json:"items"`
}

const (
	AlertInfo    = "info"
	AlertSuccess = "success"
	AlertWarning = "warning"
	AlertDanger  = "danger"
)

type Alert struct {
	Style string `json:"style"`
	Text  string `json:"text"`
}

const DefaultEmbedHeight = 400

// Embed has two shapes: structured (Src, Height) and raw HTML. A non-empty
// EmbedHTML selects the raw shape and the structured fields are dropped.
type Embed struct {
	Src       string
	Height    int
	EmbedHTML string
}

func (e Embed) Legacy() bool { return e.EmbedHTML != "" }

func (e Embed) MarshalJSON() ([]byte, error) {
	if e.Legacy() {
		return json.Marshal(map[string]any{"embedHtml": e.EmbedHTML})
	}
	return json.Marshal(map[string]any{"src": e.Src, "height": e.Height})
}

type Audio struct {
	Src string `json:"src"`
}

type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

type AccordionItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Accordion struct {
	Items []AccordionItem `json:"items"`
}

type TimelineEvent struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

type Timeline struct {
	Events []TimelineEvent `json:"events"`
}

type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
}

type Quiz struct {
	Questions []QuizQuestion `json:"questions"`
}

// Unknown preserves blocks whose type is not recognised so they survive a
// load/save round trip. Renderers skip them.
type Unknown struct {
	Type BlockType
	Raw  map[string]any
}

func (u Unknown) MarshalJSON() ([]byte, error) {
	if u.Raw == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(u.Raw)
}

func (Heading) Kind() BlockType   { return TypeHeading }
func (Text) Kind() BlockType      { return TypeText }
func (Video) Kind() BlockType     { return TypeVideo }
func (Image) Kind() BlockType     { return TypeImage }
func (Code) Kind() BlockType      { return TypeCode }
func (Checklist) Kind() BlockType { return TypeChecklist }
func (Alert) Kind() BlockType     { return TypeAlert }
func (Embed) Kind() BlockType     { return TypeEmbed }
func (Audio) Kind() BlockType     { return TypeAudio }
func (Table) Kind() BlockType     { return TypeTable }
func (Accordion) Kind() BlockType { return TypeAccordion }
func (Timeline) Kind() BlockType  { return TypeTimeline }
func (Quiz) Kind() BlockType      { return TypeQuiz }
func (u Unknown) Kind() BlockType { return u.Type }
