package llmprovider

import (
	"context"
	"errors"
	"net/http"

	"content-review-tutor/pkg/gemini"
	"content-review-tutor/pkg/openai"
)

// OpenAIAdapter adapts pkg/openai to the Provider interface. It serves every
// OpenAI-compatible service, so the name is configurable.
type OpenAIAdapter struct {
	name   string
	client openai.IOpenAI
}

// NewOpenAIAdapter creates a new OpenAI-compatible adapter
func NewOpenAIAdapter(name string, client openai.IOpenAI) *OpenAIAdapter {
	return &OpenAIAdapter{name: name, client: client}
}

// GenerateContent implements Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	msgs := make([]openai.Message, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = openai.Message{Role: m.Role, Content: m.Content}
	}

	resp, err := a.client.GenerateContent(ctx, &openai.Request{
		Model:       req.Model,
		Messages:    msgs,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, a.classify(err)
	}

	model := resp.Model
	if model == "" {
		model = a.client.Model()
	}
	return &Response{
		Content:      resp.Content,
		ProviderName: a.name,
		ModelName:    model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *OpenAIAdapter) classify(err error) error {
	var apiErr *openai.APIError
	switch {
	case errors.As(err, &apiErr):
		return classifyStatus(a.name, apiErr.StatusCode, apiErr.Message)
	case errors.Is(err, openai.ErrEmptyCompletion):
		return &UpstreamRejectedError{Provider: a.name, StatusCode: http.StatusOK, Detail: "empty completion"}
	default:
		return unavailable(a.name, err)
	}
}

// Name returns provider name
func (a *OpenAIAdapter) Name() string {
	return a.name
}

// Model returns model name
func (a *OpenAIAdapter) Model() string {
	return a.client.Model()
}

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	system, contents := convertToGeminiContents(req.Messages)

	resp, err := a.client.GenerateContent(ctx, &gemini.Request{
		Model:             req.Model,
		SystemInstruction: system,
		Contents:          contents,
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	})
	if err != nil {
		return nil, a.classify(err)
	}

	return &Response{
		Content:      resp.Text,
		ProviderName: "gemini",
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *GeminiAdapter) classify(err error) error {
	var apiErr *gemini.APIError
	switch {
	case errors.As(err, &apiErr):
		return classifyStatus("gemini", apiErr.StatusCode, apiErr.Message)
	case errors.Is(err, gemini.ErrEmptyCompletion):
		return &UpstreamRejectedError{Provider: "gemini", StatusCode: http.StatusOK, Detail: "empty completion"}
	default:
		return unavailable("gemini", err)
	}
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

// convertToGeminiContents moves the leading system messages into the system
// instruction. Later system messages are sent as user turns so their position
// in the conversation is kept.
func convertToGeminiContents(msgs []Message) (string, []gemini.Content) {
	var system string
	i := 0
	for ; i < len(msgs) && msgs[i].Role == RoleSystem; i++ {
		if system != "" {
			system += "\n\n"
		}
		system += msgs[i].Content
	}

	contents := make([]gemini.Content, 0, len(msgs)-i)
	for _, m := range msgs[i:] {
		role := gemini.RoleUser
		if m.Role == RoleAssistant {
			role = gemini.RoleModel
		}
		contents = append(contents, gemini.Content{Role: role, Text: m.Content})
	}
	return system, contents
}
