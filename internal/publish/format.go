package publish

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/BerylCAtieno/social-content-agent/internal/models"
)

const (
	linkedinComposeURL  = "https://www.linkedin.com/post/new/"
	twitterIntentURL    = "https://twitter.com/intent/tweet?text="
	instagramComposeURL = "https://www.instagram.com/create/select/"

	jpegMIME = "image/jpeg"
)

var unsafeFilenameChars = regexp.MustCompile(`(?i)[^a-z0-9]`)

// Card is the flattened view of one platform's post, as rendered and exported.
type Card struct {
	Platform models.Platform
	Headline string
	Hook     string
	Body     string
	Caption  string
	Hashtags string
	ImageURL string
}

// Cards flattens the state into card order, skipping absent platforms.
func Cards(state models.AppState) []Card {
	var cards []Card
	if p := state.LinkedIn; p != nil {
		cards = append(cards, Card{
			Platform: models.LinkedIn,
			Headline: p.Text.Headline,
			Body:     p.Text.Body,
			Hashtags: p.Text.Hashtags,
			ImageURL: p.ImageURL,
		})
	}
	if p := state.Twitter; p != nil {
		cards = append(cards, Card{
			Platform: models.Twitter,
			Hook:     p.Text.Hook,
			Body:     p.Text.Body,
			Hashtags: p.Text.Hashtags,
			ImageURL: p.ImageURL,
		})
	}
	if p := state.Instagram; p != nil {
		cards = append(cards, Card{
			Platform: models.Instagram,
			Hook:     p.Text.Hook,
			Caption:  p.Text.Caption,
			Hashtags: p.Text.Hashtags,
			ImageURL: p.ImageURL,
		})
	}
	return cards
}

// CardFor returns the card of a single platform, if present in state.
func CardFor(state models.AppState, platform models.Platform) (Card, bool) {
	for _, c := range Cards(state) {
		if c.Platform.Key == platform.Key {
			return c, true
		}
	}
	return Card{}, false
}

func FormatLinkedIn(t models.LinkedinText) string {
	return fmt.Sprintf("%s\n\n%s\n\n%s", t.Headline, t.Body, t.Hashtags)
}

func FormatTwitter(t models.TwitterText) string {
	return fmt.Sprintf("%s\n\n%s\n\n%s", t.Hook, t.Body, t.Hashtags)
}

// FormatInstagram separates caption and hashtags with a column of dots so the
// tags fold below the "more" cut.
func FormatInstagram(t models.InstagramText) string {
	return fmt.Sprintf("%s\n\n%s\n\n.\n.\n.\n\n%s", t.Hook, t.Caption, t.Hashtags)
}

// FormattedText is the clipboard text of a card.
func FormattedText(c Card) string {
	switch c.Platform.Key {
	case models.LinkedIn.Key:
		return FormatLinkedIn(models.LinkedinText{Headline: c.Headline, Body: c.Body, Hashtags: c.Hashtags})
	case models.Twitter.Key:
		return FormatTwitter(models.TwitterText{Hook: c.Hook, Body: c.Body, Hashtags: c.Hashtags})
	case models.Instagram.Key:
		return FormatInstagram(models.InstagramText{Hook: c.Hook, Caption: c.Caption, Hashtags: c.Hashtags})
	default:
		return ""
	}
}

// PublishURL is the platform's "new post" page. Twitter gets a prefilled intent.
func PublishURL(c Card) string {
	switch c.Platform.Key {
	case models.LinkedIn.Key:
		return linkedinComposeURL
	case models.Twitter.Key:
		text := fmt.Sprintf("%s\n\n%s\n\n%s", c.Hook, c.Body, c.Hashtags)
		return twitterIntentURL + EncodeURIComponent(text)
	case models.Instagram.Key:
		return instagramComposeURL
	default:
		return "#"
	}
}

// PublishLabel uses the first word of the platform name, so "Twitter / X" reads "Publicar en Twitter".
func PublishLabel(p models.Platform) string {
	name, _, _ := strings.Cut(p.Name, " ")
	return "Publicar en " + name
}

func DownloadFilename(p models.Platform) string {
	safe := strings.ToLower(unsafeFilenameChars.ReplaceAllString(p.Name, "_"))
	return safe + "_image.jpeg"
}

var uriComponentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s the way browsers do for a URI component:
// spaces become %20 and the marks !'()* stay literal.
func EncodeURIComponent(s string) string {
	return uriComponentFixups.Replace(url.QueryEscape(s))
}

func ImageDataURL(jpeg []byte) string {
	return "data:" + jpegMIME + ";base64," + base64.StdEncoding.EncodeToString(jpeg)
}

var ErrInvalidDataURL = errors.New("invalid data url")

// DecodeDataURL returns the payload and MIME type of a base64 data URL.
func DecodeDataURL(dataURL string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, "", ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrInvalidDataURL
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, "", fmt.Errorf("%w: not base64 encoded", ErrInvalidDataURL)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return data, mime, nil
}
