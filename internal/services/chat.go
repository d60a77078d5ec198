package services

import (
	"context"
	"fmt"

	"github.com/duskfall/mstro/internal/api"
	"github.com/duskfall/mstro/internal/shared"
)

// ChatService wraps the LLM helper endpoints. Each operation is a thin POST
// returning the generated text.
type ChatService struct {
	client Client
}

// NewChatService creates a ChatService.
func NewChatService(client Client) *ChatService {
	return &ChatService{client: client}
}

type chatResponse struct {
	Result string `json:"result"`
}

func (s *ChatService) post(ctx context.Context, path string, in any) (string, error) {
	var resp chatResponse
	if err := s.client.PostJSON(ctx, path, in, &resp); err != nil {
		return "", err
	}
	if resp.Result == "" {
		return "", fmt.Errorf("%w: empty result", shared.ErrMalformedEntity)
	}
	return resp.Result, nil
}

// Enhance rewrites a rough prompt into a richer one.
func (s *ChatService) Enhance(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt", shared.ErrMissingArgument)
	}
	return s.post(ctx, api.ChatEnhance(), map[string]string{"prompt": prompt})
}

// Translate translates text into the target language.
func (s *ChatService) Translate(ctx context.Context, text, language string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("%w: text", shared.ErrMissingArgument)
	}
	if language == "" {
		return "", fmt.Errorf("%w: language", shared.ErrMissingArgument)
	}
	return s.post(ctx, api.ChatTranslate(), map[string]string{"text": text, "language": language})
}

// GenerateTitle suggests a title for the given lyrics.
func (s *ChatService) GenerateTitle(ctx context.Context, lyrics string) (string, error) {
	if lyrics == "" {
		return "", fmt.Errorf("%w: lyrics", shared.ErrMissingArgument)
	}
	return s.post(ctx, api.ChatTitle(), map[string]string{"lyrics": lyrics})
}

// GenerateLyrics writes lyrics from a prompt.
func (s *ChatService) GenerateLyrics(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt", shared.ErrMissingArgument)
	}
	return s.post(ctx, api.ChatLyrics(), map[string]string{"prompt": prompt})
}
