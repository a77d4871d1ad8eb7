package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	DefaultPostsModel       = "gemini-2.5-pro"
	DefaultImagePromptModel = "gemini-2.5-flash"
)

// GeminiClient serves both text requests: the free-form image prompt and the
// schema-constrained posts.
type GeminiClient struct {
	client      *genai.Client
	promptModel *genai.GenerativeModel
	postsModel  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, postsModel, imagePromptModel string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if postsModel == "" {
		postsModel = DefaultPostsModel
	}
	if imagePromptModel == "" {
		imagePromptModel = DefaultImagePromptModel
	}

	posts := client.GenerativeModel(postsModel)
	posts.ResponseMIMEType = "application/json"
	posts.ResponseSchema = PostsSchema()

	return &GeminiClient{
		client:      client,
		promptModel: client.GenerativeModel(imagePromptModel),
		postsModel:  posts,
	}, nil
}

func (g *GeminiClient) Close() {
	g.client.Close()
}

func (g *GeminiClient) GenerateImagePrompt(ctx context.Context, prompt string) (string, error) {
	resp, err := g.promptModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate image prompt: %w", err)
	}
	return responseText(resp)
}

func (g *GeminiClient) GeneratePosts(ctx context.Context, prompt string) (string, error) {
	resp, err := g.postsModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate posts: %w", err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text in response")
	}
	return sb.String(), nil
}
