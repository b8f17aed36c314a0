package content

import "strings"

// legacy sub-blocks carry their main value under "value"; this maps it onto
// the canonical field of each variant.
var legacyValueField = map[BlockType]string{
	TypeHeading: "text",
	TypeText:    "text",
	TypeAlert:   "text",
	TypeCode:    "code",
	TypeVideo:   "url",
	TypeImage:   "src",
	TypeAudio:   "src",
	TypeEmbed:   "embedHtml",
}

// Normalize converts raw content JSON in any supported shape into a
// canonical Document. Unparseable input yields an empty document.
func Normalize(raw []byte) Document {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return emptyDocument()
	}
	v, err := decodeAny(raw)
	if err != nil {
		return emptyDocument()
	}
	return NormalizeValue(v)
}

// NormalizeValue is Normalize for content that has already been decoded into
// generic JSON values.
func NormalizeValue(v any) Document {
	switch t := v.(type) {
	case Document:
		return t.Clone()
	case *Document:
		if t == nil {
			return emptyDocument()
		}
		return t.Clone()
	case string:
		// content columns sometimes hold the document as a JSON string
		return Normalize([]byte(t))
	case []byte:
		return Normalize(t)
	case map[string]any:
		return normalizeMap(t, 0)
	default:
		return emptyDocument()
	}
}

func normalizeMap(m map[string]any, depth int) Document {
	if depth > 4 {
		return emptyDocument()
	}
	if arr, ok := m["blocks"].([]any); ok {
		return Document{Blocks: blocksFromList(arr)}
	}
	if inner, ok := m["content"].(map[string]any); ok {
		return normalizeMap(inner, depth+1)
	}
	switch ParseBlockType(stringFromAny(m["type"])) {
	case TypeText:
		return single(TypeText, map[string]any{"text": firstPresent(m, "value", "text", "content")})
	case TypeVideo:
		data := map[string]any{
			"provider": m["provider"],
			"videoId":  firstPresent(m, "videoId", "video_id"),
			"url":      firstPresent(m, "url", "value"),
		}
		return single(TypeVideo, data)
	case TypeQuiz:
		qs := firstPresent(m, "questions", "value")
		if _, ok := qs.([]any); !ok && m["question"] != nil {
			qs = []any{m}
		}
		return single(TypeQuiz, map[string]any{"questions": qs})
	}
	return emptyDocument()
}

func blocksFromList(arr []any) []Block {
	blocks := make([]Block, 0, len(arr))
	for _, it := range arr {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		decode := blockFromMap
		if _, legacy := m["block_type"]; legacy {
			decode = legacyBlockFromMap
		}
		if b, ok := decode(m); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func blockFromMap(m map[string]any) (Block, bool) {
	t := ParseBlockType(stringFromAny(m["type"]))
	if t == "" {
		return Block{}, false
	}
	data, ok := m["data"].(map[string]any)
	if !ok {
		// flat blocks keep their fields next to id and type
		data = make(map[string]any, len(m))
		for k, v := range m {
			if k == "id" || k == "type" || k == "data" {
				continue
			}
			data[k] = v
		}
	}
	return Block{ID: idFromAny(m["id"]), Type: t, Data: DecodePayload(t, data)}, true
}

func legacyBlockFromMap(m map[string]any) (Block, bool) {
	t := ParseBlockType(stringFromAny(m["block_type"]))
	if t == "" {
		return Block{}, false
	}
	data := make(map[string]any, len(m))
	for k, v := range m {
		if k == "block_type" || k == "id" {
			continue
		}
		data[k] = v
	}
	if val, ok := data["value"]; ok {
		if field := legacyValueField[t]; field != "" {
			if _, set := data[field]; !set {
				data[field] = val
			}
		}
		delete(data, "value")
	}
	return Block{ID: idFromAny(m["id"]), Type: t, Data: DecodePayload(t, data)}, true
}

func single(t BlockType, data map[string]any) Document {
	return Document{Blocks: []Block{{Type: t, Data: DecodePayload(t, data)}}}
}

func idFromAny(v any) *string {
	s := strings.TrimSpace(stringFromAny(v))
	if s == "" {
		return nil
	}
	return &s
}

func emptyDocument() Document { return Document{Blocks: []Block{}} }
