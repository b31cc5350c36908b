package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/acroforms/formrank/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

const describePrompt = `Describe this image in one short paragraph. ` +
	`Focus on what kind of document or photo it is and any readable text. ` +
	`Context about the file: `

// VisionDescriber implements ai.VisionDescriber using OpenAI-compatible
// multimodal chat APIs.
type VisionDescriber struct {
	client *openai.LLM
	logger *slog.Logger
}

// newVisionDescriber is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newVisionDescriber(config *ai.Config) (*VisionDescriber, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.VisionHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.VisionModel),
	)
	if err != nil {
		return nil, err
	}

	return &VisionDescriber{
		client: client,
		logger: slog.Default().With("component", "openai-describer"),
	}, nil
}

// NewVisionDescriber creates a new vision describer using the provided
// configuration.
//
// Returns ai.VisionDescriber interface to enforce abstraction.
func NewVisionDescriber(config *ai.Config) (ai.VisionDescriber, error) {
	return newVisionDescriber(config)
}

// Describe analyzes an image and returns a short textual description.
func (d *VisionDescriber) Describe(ctx context.Context, image []byte, mimeType, contextText string) (string, error) {
	d.logger.Debug("describing image", "bytes", len(image), "mimeType", mimeType)

	content := []llms.MessageContent{
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(mimeType, image),
				llms.TextPart(describePrompt + contextText),
			},
		},
	}

	resp, err := d.client.GenerateContent(ctx, content)
	if err != nil {
		d.logger.Error("failed to describe image", "err", err)
		return "", err
	}

	if len(resp.Choices) == 0 {
		d.logger.Warn("vision model returned no choices")
		return "", nil
	}

	return strings.TrimSpace(resp.Choices[0].Content), nil
}
