package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	"github.com/BerylCAtieno/social-content-agent/internal/models"
	"github.com/BerylCAtieno/social-content-agent/internal/web"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	jar, _ := cookiejar.New(nil)
	return &TestClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 3 * time.Minute,
			Jar:     jar,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the server")
	testType := flag.String("test", "all", "Test type: all, health, page, empty, generate, custom")
	idea := flag.String("idea", "", "Idea for content generation (for custom test)")
	tone := flag.String("tone", string(models.DefaultTone), "Tone for content generation")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("Social Content Agent - Test Suite")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	switch *testType {
	case "all":
		client.runAllTests()
	case "health":
		client.testHealthCheck()
	case "page":
		client.testIndexPage()
	case "empty":
		client.testEmptyIdea()
	case "generate":
		client.testGeneration()
	case "custom":
		if *idea == "" {
			printError("Idea is required for custom test. Use -idea flag")
			os.Exit(1)
		}
		client.testCustomGeneration(*idea, *tone)
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, page, empty, generate, custom")
		os.Exit(1)
	}
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Index Page", tc.testIndexPage},
		{"Empty Idea", tc.testEmptyIdea},
		{"Content Generation", tc.testGeneration},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	url := fmt.Sprintf("%s/health", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testIndexPage() bool {
	printTestHeader("Testing Index Page")

	url := tc.baseURL + "/"
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}
	for _, want := range []string{`name="idea"`, `name="tone"`, "Generar Contenido"} {
		if !strings.Contains(string(body), want) {
			printError(fmt.Sprintf("Page is missing %q", want))
			return false
		}
	}

	printSuccess("Index page renders the input form")
	return true
}

func (tc *TestClient) testEmptyIdea() bool {
	printTestHeader("Testing Empty Idea Rejection")

	status, body, err := tc.postGenerate(web.GenerateRequest{Idea: "  ", Tone: string(models.DefaultTone)})
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusBadRequest {
		printError(fmt.Sprintf("Expected status 400, got %d", status))
		return false
	}

	var errResp web.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error != web.MsgEmptyIdea {
		printError(fmt.Sprintf("Unexpected error body: %s", string(body)))
		return false
	}

	printSuccess("Empty idea rejected without calling the provider")
	return true
}

func (tc *TestClient) testGeneration() bool {
	idea := "Lanzamiento de una nueva app de fitness que usa IA para crear planes de entrenamiento personalizados."
	return tc.testCustomGeneration(idea, string(models.ToneInspiring))
}

func (tc *TestClient) testCustomGeneration(idea, tone string) bool {
	printTestHeader("Testing Content Generation")
	fmt.Printf("%sIdea:%s %s\n", colorCyan, colorReset, idea)
	fmt.Printf("%sTone:%s %s\n\n", colorCyan, colorReset, tone)

	start := time.Now()
	status, body, err := tc.postGenerate(web.GenerateRequest{Idea: idea, Tone: tone})
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var out web.GenerateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if len(out.Cards) != len(models.Platforms) {
		printError(fmt.Sprintf("Expected %d cards, got %d", len(models.Platforms), len(out.Cards)))
		return false
	}

	for i, card := range out.Cards {
		want := models.Platforms[i]
		if card.Key != want.Key || card.AspectRatio != want.AspectRatio {
			printError(fmt.Sprintf("Card %d: expected %s %s, got %s %s", i, want.Key, want.AspectRatio, card.Key, card.AspectRatio))
			return false
		}
		if !strings.HasPrefix(card.ImageURL, "data:image/jpeg;base64,") {
			printError(fmt.Sprintf("%s: image is not a JPEG data URL", card.Platform))
			return false
		}
		if !tc.checkDownload(card) {
			return false
		}
	}

	printSuccess(fmt.Sprintf("Generated %d cards in %s", len(out.Cards), time.Since(start).Round(time.Millisecond)))

	for _, card := range out.Cards {
		fmt.Printf("\n%s%s%s (%s)\n", colorGreen, card.Platform, colorReset, card.AspectRatio)
		fmt.Println(strings.Repeat("=", 80))
		fmt.Println(card.FormattedText)
		fmt.Println(strings.Repeat("=", 80))
		fmt.Printf("%sPublish:%s %s\n", colorPurple, colorReset, card.PublishURL)
	}
	return true
}

func (tc *TestClient) checkDownload(card web.CardResponse) bool {
	url := fmt.Sprintf("%s/api/posts/%s/image", tc.baseURL, card.Key)
	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Download failed: %v", err))
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	disposition := resp.Header.Get("Content-Disposition")
	if resp.StatusCode != http.StatusOK || !strings.Contains(disposition, card.DownloadFilename) {
		printError(fmt.Sprintf("%s: unexpected download response %d %q", card.Platform, resp.StatusCode, disposition))
		return false
	}
	return true
}

func (tc *TestClient) postGenerate(req web.GenerateRequest) (int, []byte, error) {
	jsonData, _ := json.MarshalIndent(req, "", "  ")
	fmt.Printf("POST %s/api/generate\n", tc.baseURL)
	fmt.Printf("%sRequest:%s\n%s\n\n", colorYellow, colorReset, string(jsonData))

	resp, err := tc.client.Post(tc.baseURL+"/api/generate", "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}
