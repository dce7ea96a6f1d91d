package ai

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sproutly/sprout-backend/internal/reqctx"
	"google.golang.org/genai"
)

// Client is the LLM surface the engine, recommender, and celebrator depend
// on. The production implementation is Gemini; tests substitute fakes.
type Client interface {
	// GenerateJSON runs one prompt and returns the raw model text, which is
	// requested as application/json.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

type geminiClient struct {
	model string
}

func NewGeminiClient(model string) Client {
	if model == "" {
		model = os.Getenv("GEMINI_CHAT_MODEL")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &geminiClient{model: model}
}

func (c *geminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	rid := reqctx.RID(ctx)
	start := time.Now()
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		log.Printf("[chat] rid=%s stage=client_init err=%v", rid, err)
		return "", err
	}

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	temp := float32(0.6)
	config := &genai.GenerateContentConfig{
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
	log.Printf("[chat] rid=%s stage=gemini_start model=%s", rid, c.model)
	res, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		log.Printf("[chat] rid=%s stage=gemini_fail model=%s err=%v", rid, c.model, err)
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	rawText := res.Text()
	log.Printf("[chat] rid=%s stage=gemini_done model=%s len=%d tookMs=%d", rid, c.model, len(rawText), time.Since(start).Milliseconds())
	return rawText, nil
}
