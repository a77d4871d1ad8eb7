package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/social-content-agent/internal/config"
	"github.com/BerylCAtieno/social-content-agent/internal/generator"
	"github.com/BerylCAtieno/social-content-agent/internal/logging"
	"github.com/BerylCAtieno/social-content-agent/internal/models"
	"github.com/BerylCAtieno/social-content-agent/internal/publish"
	"github.com/BerylCAtieno/social-content-agent/internal/web"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var (
	idea     string
	tone     string
	outDir   string
	copyPost string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate posts and images for an idea",
	Long: `Generate one post per platform for the given idea and tone.

Images are written to --out using the platform file names
(linkedin_image.jpeg, twitter___x_image.jpeg, instagram_image.jpeg).
Use --copy to put one platform's formatted text on the clipboard.`,
	RunE: runGenerate,
}

var tonesCmd = &cobra.Command{
	Use:   "tones",
	Short: "List the available tones",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range models.Tones {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
	},
}

func init() {
	generateCmd.Flags().StringVarP(&idea, "idea", "i", "", "Idea to write about")
	generateCmd.Flags().StringVarP(&tone, "tone", "t", string(models.DefaultTone), "Tone of the posts")
	generateCmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory for the generated images")
	generateCmd.Flags().StringVar(&copyPost, "copy", "", "Copy this platform's text to the clipboard (linkedin, twitter, instagram)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(idea) == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), web.MsgEmptyIdea)
		return generator.ErrEmptyIdea
	}
	t, ok := models.ParseTone(tone)
	if !ok {
		return fmt.Errorf("unknown tone %q, run `contentgen tones`", tone)
	}
	var copyTarget models.Platform
	if copyPost != "" {
		if copyTarget, ok = models.PlatformByKey(copyPost); !ok {
			return fmt.Errorf("unknown platform %q", copyPost)
		}
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	logger := logging.NewLoggerWithService("contentgen", level)
	config.LoadEnv(logger)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		generationTimeout(cmd.Flags().Changed("timeout"), timeout, cfg.GenerationTimeout))
	defer cancel()

	geminiClient, err := generator.NewGeminiClient(ctx, cfg.APIKey, cfg.PostsModel, cfg.ImagePromptModel)
	if err != nil {
		return err
	}
	defer geminiClient.Close()

	imagenClient, err := generator.NewImagenClient(ctx, cfg.APIKey, cfg.ImageModel)
	if err != nil {
		return err
	}

	gen, err := generator.New(geminiClient, imagenClient, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Generando... Esto puede tardar un momento. ✨")

	state, err := gen.Generate(ctx, idea, t)
	if err != nil {
		logger.WithError(err).Debug("Generation failed")
		fmt.Fprintln(cmd.ErrOrStderr(), web.MsgGenerationFailed)
		return generator.ErrGenerationFailed
	}

	cards := publish.Cards(state)
	paths, err := publish.WriteImages(outDir, cards)
	if err != nil {
		return err
	}

	for i, c := range cards {
		fmt.Fprintf(out, "\n== %s (%s) ==\n", c.Platform.Name, c.Platform.AspectRatio)
		fmt.Fprintln(out, publish.FormattedText(c))
		fmt.Fprintf(out, "\nImagen: %s\n", paths[i])
		fmt.Fprintf(out, "%s: %s\n", publish.PublishLabel(c.Platform), publish.PublishURL(c))
	}

	if copyPost != "" {
		card, _ := publish.CardFor(state, copyTarget)
		if err := clipboard.WriteAll(publish.FormattedText(card)); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), web.MsgPrepareFailed)
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintf(out, "\n✅ ¡Texto de %s copiado!\n", copyTarget.Name)
	}
	return nil
}

// generationTimeout prefers an explicit --timeout over the configured one.
func generationTimeout(flagSet bool, flagValue, configured time.Duration) time.Duration {
	if flagSet || configured <= 0 {
		return flagValue
	}
	return configured
}
