package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/social-content-agent/internal/logging"
	"github.com/BerylCAtieno/social-content-agent/internal/models"
	"github.com/BerylCAtieno/social-content-agent/internal/publish"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyIdea        = errors.New("empty idea")
	ErrInvalidTone      = errors.New("invalid tone")
	ErrGenerationFailed = errors.New("generation failed")
)

// TextModel produces the image prompt and the JSON posts document.
type TextModel interface {
	GenerateImagePrompt(ctx context.Context, prompt string) (string, error)
	GeneratePosts(ctx context.Context, prompt string) (string, error)
}

// ImageModel renders one JPEG for a prompt at the given aspect ratio.
type ImageModel interface {
	GenerateImage(ctx context.Context, prompt string, ratio models.AspectRatio) ([]byte, error)
}

type Generator struct {
	text     TextModel
	images   ImageModel
	validate *validator.Validate
	logger   logging.Logger
}

func New(text TextModel, images ImageModel, logger logging.Logger) (*Generator, error) {
	if text == nil || images == nil {
		return nil, errors.New("text and image models are required")
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Generator{
		text:     text,
		images:   images,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}, nil
}

// Generate runs one full cycle: the posts request runs alongside the image
// prompt request, whose result fans out into one image request per platform.
// Any failing branch fails the whole cycle and no partial state is returned.
func (g *Generator) Generate(ctx context.Context, idea string, tone models.Tone) (models.AppState, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return models.AppState{}, ErrEmptyIdea
	}
	resolved, ok := models.ParseTone(string(tone))
	if !ok {
		return models.AppState{}, fmt.Errorf("%w: %q", ErrInvalidTone, tone)
	}
	tone = resolved

	start := time.Now()
	log := g.logger.WithFields(logging.Fields{"tone": tone, "idea_len": len(idea)})
	log.Info("Starting generation cycle")

	var (
		rawPosts string
		images   = make([][]byte, len(models.Platforms))
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		out, err := g.text.GeneratePosts(egCtx, BuildPostsPrompt(idea, tone))
		if err != nil {
			return fmt.Errorf("posts: %w", err)
		}
		rawPosts = out
		return nil
	})
	eg.Go(func() error {
		imagePrompt, err := g.text.GenerateImagePrompt(egCtx, BuildImagePrompt(idea))
		if err != nil {
			return fmt.Errorf("image prompt: %w", err)
		}
		imagePrompt = strings.TrimSpace(imagePrompt)
		log.WithField("image_prompt", imagePrompt).Debug("Image prompt ready")

		ig, igCtx := errgroup.WithContext(egCtx)
		for i, p := range models.Platforms {
			ig.Go(func() error {
				data, err := g.images.GenerateImage(igCtx, imagePrompt, p.AspectRatio)
				if err != nil {
					return fmt.Errorf("%s image: %w", p.Key, err)
				}
				if len(data) == 0 {
					return fmt.Errorf("%s image: empty payload", p.Key)
				}
				images[i] = data
				return nil
			})
		}
		return ig.Wait()
	})

	if err := eg.Wait(); err != nil {
		log.WithError(err).Error("Generation cycle failed")
		return models.AppState{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	text, err := g.ParsePosts(rawPosts)
	if err != nil {
		log.WithError(err).Error("Generated posts did not match schema")
		return models.AppState{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	state := models.AppState{
		LinkedIn: &models.SocialPost[models.LinkedinText]{
			Text:     text.LinkedIn,
			ImageURL: publish.ImageDataURL(images[0]),
		},
		Twitter: &models.SocialPost[models.TwitterText]{
			Text:     text.Twitter,
			ImageURL: publish.ImageDataURL(images[1]),
		},
		Instagram: &models.SocialPost[models.InstagramText]{
			Text:     text.Instagram,
			ImageURL: publish.ImageDataURL(images[2]),
		},
	}

	log.WithField("duration_ms", time.Since(start).Milliseconds()).Info("Generation cycle completed")
	return state, nil
}

// ParsePosts decodes the text model's JSON and checks every required field.
func (g *Generator) ParsePosts(raw string) (models.GeneratedText, error) {
	var out models.GeneratedText
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &out); err != nil {
		return models.GeneratedText{}, fmt.Errorf("failed to parse posts JSON: %w", err)
	}
	if err := g.validate.Struct(out); err != nil {
		return models.GeneratedText{}, fmt.Errorf("posts JSON missing fields: %w", err)
	}
	return out, nil
}

// stripCodeFence tolerates a ```json fenced body.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
