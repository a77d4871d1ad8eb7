package generator

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/social-content-agent/internal/models"
	"google.golang.org/genai"
)

const DefaultImageModel = "imagen-4.0-generate-001"

// ImagenClient renders images through the unified genai SDK; the
// generative-ai-go client used for text has no Imagen endpoint.
type ImagenClient struct {
	client *genai.Client
	model  string
}

func NewImagenClient(ctx context.Context, apiKey, model string) (*ImagenClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = DefaultImageModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &ImagenClient{client: client, model: model}, nil
}

// ImageConfig is the per-call request configuration: a single JPEG in the given ratio.
func ImageConfig(ratio models.AspectRatio) *genai.GenerateImagesConfig {
	return &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/jpeg",
		AspectRatio:    string(ratio),
	}
}

func (c *ImagenClient) GenerateImage(ctx context.Context, prompt string, ratio models.AspectRatio) ([]byte, error) {
	resp, err := c.client.Models.GenerateImages(ctx, c.model, prompt, ImageConfig(ratio))
	if err != nil {
		return nil, fmt.Errorf("imagen generate (%s) failed: %w", ratio, err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, fmt.Errorf("imagen returned no image for %s", ratio)
	}
	data := resp.GeneratedImages[0].Image.ImageBytes
	if len(data) == 0 {
		return nil, fmt.Errorf("imagen returned an empty image for %s", ratio)
	}
	return data, nil
}
