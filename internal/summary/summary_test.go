package summary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	answer   string
	err      error
	requests []openai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}

	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.answer}},
		},
	}, nil
}

func TestOpenAISummarizer_Disabled(t *testing.T) {
	s := NewOpenAISummarizer("", "gpt-4o-mini")

	verdict, err := s.Summarize(context.Background(), "title", "text")
	require.NoError(t, err)
	assert.Equal(t, Verdict{Relevant: true}, verdict)
}

func TestOpenAISummarizer_Relevant(t *testing.T) {
	chat := &fakeChat{answer: "```json\n{\"is_ad_update\": true, \"is_relevant_to_japan\": true, \"summary_ja\": \" 新機能が追加されました。\\n対象は全広告主です。 \"}\n```"}
	s := &OpenAISummarizer{client: chat, model: "m", enabled: true}

	verdict, err := s.Summarize(context.Background(), "New bidding", "Smart bidding text")
	require.NoError(t, err)

	assert.True(t, verdict.Relevant)
	assert.Equal(t, "新機能が追加されました。\n対象は全広告主です。", verdict.Summary)

	require.Len(t, chat.requests, 1)
	assert.Equal(t, "m", chat.requests[0].Model)
	assert.Contains(t, chat.requests[0].Messages[0].Content, "Article Title: New bidding")
	assert.Contains(t, chat.requests[0].Messages[0].Content, "Smart bidding text")
}

func TestOpenAISummarizer_NotRelevant(t *testing.T) {
	for _, answer := range []string{
		`{"is_ad_update": false, "is_relevant_to_japan": true, "summary_ja": "x"}`,
		`{"is_ad_update": true, "is_relevant_to_japan": false, "summary_ja": "x"}`,
	} {
		s := &OpenAISummarizer{client: &fakeChat{answer: answer}, enabled: true}

		verdict, err := s.Summarize(context.Background(), "t", "c")
		require.NoError(t, err)
		assert.False(t, verdict.Relevant)
	}
}

func TestOpenAISummarizer_Errors(t *testing.T) {
	s := &OpenAISummarizer{client: &fakeChat{err: errors.New("boom")}, enabled: true}
	_, err := s.Summarize(context.Background(), "t", "c")
	assert.ErrorContains(t, err, "boom")

	s = &OpenAISummarizer{client: &fakeChat{answer: "I cannot help"}, enabled: true}
	_, err = s.Summarize(context.Background(), "t", "c")
	assert.Error(t, err)
}

func TestExtractor_StripsFeedHTML(t *testing.T) {
	e := NewExtractor(nil)

	text, err := e.Extract(context.Background(), model.Item{
		Content: "<p>Smart bidding is <b>now</b> available &amp; free.</p><script>alert(1)</script>",
	})
	require.NoError(t, err)

	assert.Equal(t, "Smart bidding is now available & free.", text)
}

func TestExtractor_Truncates(t *testing.T) {
	e := NewExtractor(nil)

	text, err := e.Extract(context.Background(), model.Item{Content: strings.Repeat("あ", MaxContentRunes+50)})
	require.NoError(t, err)

	assert.Equal(t, MaxContentRunes, len([]rune(text)))
}

func TestExtractor_FallsBackToArticlePage(t *testing.T) {
	const page = `<html><head><title>Release notes</title></head><body>
<article><h1>Release notes</h1>
<p>Performance Max campaigns now support brand exclusions for all advertisers in Japan.
This change rolls out gradually over the next weeks and requires no action.</p>
<p>Advertisers can review the new settings in the campaign view, where exclusions are listed per account.</p>
</article></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	e := NewExtractor(srv.Client())

	text, err := e.Extract(context.Background(), model.Item{Link: srv.URL + "/post"})
	require.NoError(t, err)

	assert.Contains(t, text, "brand exclusions")
}

func TestExtractor_ArticleFetchFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewExtractor(srv.Client()).Extract(context.Background(), model.Item{Link: srv.URL})
	assert.Error(t, err)
}
