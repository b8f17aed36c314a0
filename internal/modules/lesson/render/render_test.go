package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/builder"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/content"
)

func TestRenderEmpty(t *testing.T) {
	assert.Empty(t, Render(content.Document{}))
	assert.Empty(t, Render(content.Document{Blocks: []content.Block{}}))
	assert.Empty(t, RenderRaw([]byte(`{"blocks":[]}`), Options{}))
	assert.Empty(t, RenderRaw([]byte(`{}`), Options{}))
	assert.Empty(t, RenderRaw([]byte(`not json`), Options{}))
	assert.NotNil(t, Render(content.Document{}))
}

func TestRenderLegacyMixedText(t *testing.T) {
	nodes := RenderRaw([]byte(`{"type":"mixed","blocks":[{"block_type":"text","value":"hi"}]}`), Options{})
	require.Len(t, nodes, 1)
	assert.Equal(t, content.TypeText, nodes[0].Kind)
	assert.Equal(t, TextProps{Text: "hi"}, nodes[0].Props)
}

func TestRenderOneNodePerBlockInOrder(t *testing.T) {
	s := builder.New(content.Document{})
	for _, typ := range content.BlockTypes {
		require.NoError(t, s.AddBlock(typ))
	}
	require.NoError(t, s.MoveBlock(3, -1))
	require.NoError(t, s.AddItem(5))
	require.NoError(t, s.RemoveBlock(0))

	doc := s.Document()
	nodes := Render(doc)
	require.Len(t, nodes, len(doc.Blocks))
	for i, n := range nodes {
		assert.Equal(t, doc.Blocks[i].Type, n.Kind)
		assert.Equal(t, i, n.Index)
	}
}

func TestRenderSkipsUnknown(t *testing.T) {
	nodes := RenderRaw([]byte(`{"blocks":[
		{"type":"carousel","data":{}},
		{"id":"t1","type":"text","data":{"text":"x"}}
	]}`), Options{})
	require.Len(t, nodes, 1)
	assert.Equal(t, 1, nodes[0].Index)
	assert.Equal(t, "block-1-t1", nodes[0].Key)
}

func TestRenderMalformedDataDegrades(t *testing.T) {
	doc := content.Document{Blocks: []content.Block{
		{Type: content.TypeHeading, Data: content.Text{Text: "wrong payload"}},
		{Type: content.TypeTable},
		{Type: content.TypeQuiz, Data: content.Quiz{Questions: []content.QuizQuestion{{Question: "q"}}}},
	}}
	nodes := RenderWith(doc, Options{RevealAnswers: true})
	require.Len(t, nodes, 3)
	assert.Equal(t, HeadingProps{Level: 2}, nodes[0].Props)
	assert.Equal(t, TableProps{Columns: 0, Headers: []string{}, Rows: [][]string{}}, nodes[1].Props)
	q := nodes[2].Props.(QuizProps).Questions[0]
	assert.Equal(t, []string{""}, q.Options)
	require.NotNil(t, q.AnswerIndex)
	assert.Equal(t, 0, *q.AnswerIndex)
}

func TestRenderVideo(t *testing.T) {
	nodes := RenderRaw([]byte(`{"blocks":[
		{"type":"video","data":{"provider":"youtube","videoId":"abc"}},
		{"type":"video","data":{"provider":"vimeo","url":"https://vimeo.com/1"}},
		{"type":"video","data":{"provider":"youtube","videoId":""}},
		{"type":"video","data":{"url":"https://cdn.example.com/a.mp4"}}
	]}`), Options{})
	require.Len(t, nodes, 4)
	assert.Equal(t, VideoProps{Provider: "youtube", Src: "https://www.youtube.com/embed/abc"}, nodes[0].Props)
	assert.Equal(t, VideoProps{Provider: "vimeo", Src: "https://vimeo.com/1"}, nodes[1].Props)
	assert.Equal(t, VideoProps{Provider: "youtube"}, nodes[2].Props)
	assert.Equal(t, VideoProps{Provider: "youtube", Src: "https://cdn.example.com/a.mp4"}, nodes[3].Props)
}

func TestRenderTablePadsShortRows(t *testing.T) {
	nodes := RenderRaw([]byte(`{"blocks":[{"type":"table","data":{"headers":["A",""],"rows":[["x"],["1","2","3"]]}}]}`), Options{})
	require.Len(t, nodes, 1)
	assert.Equal(t, TableProps{
		Columns: 3,
		Headers: []string{"A", "", ""},
		Rows:    [][]string{{"x", "", ""}, {"1", "2", "3"}},
	}, nodes[0].Props)
}

func TestRenderQuizAnswers(t *testing.T) {
	raw := []byte(`{"blocks":[{"type":"text","data":{}},{"type":"quiz","data":{"questions":[
		{"question":"2+2?","options":["3","4"],"answerIndex":1}]}}]}`)

	student := RenderRaw(raw, Options{})
	q := student[1].Props.(QuizProps).Questions[0]
	assert.Nil(t, q.AnswerIndex)
	assert.Equal(t, "quiz-1-0", q.Name)

	out, err := json.Marshal(student[1])
	require.NoError(t, err)
	assert.NotContains(t, string(out), "answerIndex")

	teacher := RenderRaw(raw, Options{RevealAnswers: true})
	q = teacher[1].Props.(QuizProps).Questions[0]
	require.NotNil(t, q.AnswerIndex)
	assert.Equal(t, 1, *q.AnswerIndex)
}

func TestRenderEmbedShapes(t *testing.T) {
	nodes := RenderRaw([]byte(`{"blocks":[
		{"type":"embed","data":{"src":"https://x","height":0}},
		{"type":"embed","data":{"embedHtml":"<iframe></iframe>"}}
	]}`), Options{})
	assert.Equal(t, EmbedProps{Src: "https://x", Height: 400}, nodes[0].Props)
	assert.Equal(t, EmbedProps{HTML: "<iframe></iframe>"}, nodes[1].Props)
}

func TestRenderDoesNotAliasDocument(t *testing.T) {
	doc := content.Normalize([]byte(`{"blocks":[{"type":"checklist","data":{"items":[{"text":"a"}]}}]}`))
	nodes := Render(doc)
	nodes[0].Props.(ChecklistProps).Items[0].Text = "b"
	assert.Equal(t, "a", doc.Blocks[0].Data.(content.Checklist).Items[0].Text)
}

func TestTerminal(t *testing.T) {
	nodes := RenderRaw([]byte(`{"blocks":[
		{"type":"heading","data":{"level":1,"text":"Intro"}},
		{"type":"checklist","data":{"items":[{"text":"read","checked":true}]}},
		{"type":"table","data":{"headers":["A"],"rows":[["x"]]}},
		{"type":"quiz","data":{"questions":[{"question":"ok?","options":["yes","no"]}]}}
	]}`), Options{RevealAnswers: true})
	out := Terminal(nodes, 60)
	assert.Contains(t, out, "# Intro")
	assert.Contains(t, out, "[x] read")
	assert.Contains(t, out, "(*) yes")
	assert.Contains(t, out, "( ) no")
}
