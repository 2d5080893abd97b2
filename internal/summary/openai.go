package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// Verdict - ответ модели по одной статье
type Verdict struct {
	// Статья про обновление рекламной платформы и касается японского рынка
	Relevant bool
	Summary  string
}

const promptTemplate = `You are an expert Ad Tech analyst. Analyze the following article title and content.

Article Title: %s
Article Content Snippet: %s

Tasks:
1. Determine if this article is announcing a Feature Update, Policy Change, or New Functionality for an advertising platform (Google Ads, Yahoo Ads, Meta, etc.).
2. Determine if this update is relevant to the Japanese market (or is a global update applicable to Japan).
3. If YES to both, generate a concise 3-line summary in Japanese.

Output Format (JSON):
{
    "is_ad_update": true/false,
    "is_relevant_to_japan": true/false,
    "summary_ja": "string (3 lines max)"
}

Only return the JSON.`

// Клиент openai, сужен до одного метода, чтобы подменять его в тестах
type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type OpenAISummarizer struct {
	client chatClient
	model  string
	// Без ключа summarizer выключен и пропускает все статьи без summary
	enabled bool
	mu      sync.Mutex
}

func NewOpenAISummarizer(apiKey string, model string) *OpenAISummarizer {
	s := &OpenAISummarizer{
		client:  openai.NewClient(apiKey),
		model:   model,
		enabled: apiKey != "",
	}

	log.Printf("[INFO] openai summarizer enabled: %v", s.enabled)

	return s
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, title string, text string) (Verdict, error) {
	// Запросы к модели идут по одному, чтобы не упираться в лимиты
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return Verdict{Relevant: true}, nil
	}

	request := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(promptTemplate, title, truncate(text, 2*MaxContentRunes)),
			},
		},
		MaxTokens:   512,
		Temperature: 0.2,
	}

	resp, err := s.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return Verdict{}, fmt.Errorf("openai completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Verdict{}, errors.New("openai completion: empty choices")
	}

	return parseVerdict(resp.Choices[0].Message.Content)
}

type rawVerdict struct {
	IsAdUpdate        bool   `json:"is_ad_update"`
	IsRelevantToJapan bool   `json:"is_relevant_to_japan"`
	SummaryJA         string `json:"summary_ja"`
}

// Модель иногда заворачивает json в ```json ... ```, вырезаем объект по скобкам
func parseVerdict(content string) (Verdict, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return Verdict{}, fmt.Errorf("no json object in model answer: %q", content)
	}

	var raw rawVerdict
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return Verdict{}, fmt.Errorf("decode model answer: %w", err)
	}

	if !raw.IsAdUpdate || !raw.IsRelevantToJapan {
		return Verdict{}, nil
	}

	return Verdict{
		Relevant: true,
		Summary:  strings.TrimSpace(raw.SummaryJA),
	}, nil
}
