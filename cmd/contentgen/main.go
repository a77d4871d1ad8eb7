// Package main implements contentgen, a terminal front end for the social
// content generator.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	apiKey  string
	timeout time.Duration
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "contentgen",
	Short: "Generate LinkedIn, Twitter/X and Instagram posts with matching images",
	Long: `contentgen turns a short idea and a tone into three ready-to-publish social
posts plus one generated image per platform, using Gemini and Imagen.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (or set GEMINI_API_KEY env)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Generation timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(tonesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
