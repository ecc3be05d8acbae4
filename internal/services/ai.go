package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

// ParsedJob holds the fields extracted from a pasted job posting.
type ParsedJob struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	JobURL   string   `json:"job_url"`
	CtcMin   *float64 `json:"ctc_min"`
	CtcMax   *float64 `json:"ctc_max"`
	Notes    string   `json:"notes"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// ParseJobPosting extracts structured job fields from free job-posting text
// using OpenAI GPT.
func (s *AIService) ParseJobPosting(ctx context.Context, text string) (*ParsedJob, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a job-posting parser. Extract the fields below from the posting text.

Posting:
%s

Return ONLY a JSON object in this exact shape:
{
  "title": "job title",
  "company": "company name",
  "location": "location, or empty string",
  "job_url": "application URL if present, or empty string",
  "ctc_min": lower bound of the yearly compensation as a number, or null,
  "ctc_max": upper bound of the yearly compensation as a number, or null,
  "notes": "one-line summary of notable requirements"
}

Rules:
- Use null for compensation bounds that are not stated, never 0.
- Do not invent values; leave strings empty when the posting is silent.
- Return JSON only, no explanation.`, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var parsed ParsedJob
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return &parsed, nil
}
