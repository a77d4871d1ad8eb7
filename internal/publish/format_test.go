package publish

import (
	"testing"

	"github.com/BerylCAtieno/social-content-agent/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() models.AppState {
	return models.AppState{
		LinkedIn: &models.SocialPost[models.LinkedinText]{
			Text:     models.LinkedinText{Headline: "Titular", Body: "Cuerpo", Hashtags: "#a #b"},
			ImageURL: "data:image/jpeg;base64,AAA=",
		},
		Twitter: &models.SocialPost[models.TwitterText]{
			Text:     models.TwitterText{Hook: "¡Boom!", Body: "Directo & claro", Hashtags: "#ia"},
			ImageURL: "data:image/jpeg;base64,BBB=",
		},
		Instagram: &models.SocialPost[models.InstagramText]{
			Text:     models.InstagramText{Hook: "✨📸", Caption: "Historia", Hashtags: "#foto #vida"},
			ImageURL: "data:image/jpeg;base64,CCC=",
		},
	}
}

func TestFormattedTextPerPlatform(t *testing.T) {
	cards := Cards(sampleState())
	require.Len(t, cards, 3)

	assert.Equal(t, "Titular\n\nCuerpo\n\n#a #b", FormattedText(cards[0]))
	assert.Equal(t, "¡Boom!\n\nDirecto & claro\n\n#ia", FormattedText(cards[1]))
	assert.Equal(t, "✨📸\n\nHistoria\n\n.\n.\n.\n\n#foto #vida", FormattedText(cards[2]))
}

func TestFormattedTextIsDeterministic(t *testing.T) {
	c, ok := CardFor(sampleState(), models.Instagram)
	require.True(t, ok)
	assert.Equal(t, FormattedText(c), FormattedText(c))
	assert.Equal(t, "", FormattedText(Card{}))
}

func TestCardsSkipsAbsentPlatforms(t *testing.T) {
	state := sampleState()
	state.Twitter = nil

	cards := Cards(state)
	require.Len(t, cards, 2)
	assert.Equal(t, "linkedin", cards[0].Platform.Key)
	assert.Equal(t, "instagram", cards[1].Platform.Key)

	_, ok := CardFor(state, models.Twitter)
	assert.False(t, ok)
	assert.Empty(t, Cards(models.AppState{}))
}

func TestPublishURL(t *testing.T) {
	state := sampleState()
	li, _ := CardFor(state, models.LinkedIn)
	tw, _ := CardFor(state, models.Twitter)
	ig, _ := CardFor(state, models.Instagram)

	assert.Equal(t, "https://www.linkedin.com/post/new/", PublishURL(li))
	assert.Equal(t, "https://www.instagram.com/create/select/", PublishURL(ig))
	assert.Equal(t,
		"https://twitter.com/intent/tweet?text=%C2%A1Boom!%0A%0ADirecto%20%26%20claro%0A%0A%23ia",
		PublishURL(tw))
	assert.Equal(t, "#", PublishURL(Card{}))
}

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hola mundo", "hola%20mundo"},
		{"a+b", "a%2Bb"},
		{"(it's)*!~", "(it's)*!~"},
		{"x/y?z=1", "x%2Fy%3Fz%3D1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EncodeURIComponent(tt.in), tt.in)
	}
}

func TestDownloadFilename(t *testing.T) {
	assert.Equal(t, "linkedin_image.jpeg", DownloadFilename(models.LinkedIn))
	assert.Equal(t, "twitter___x_image.jpeg", DownloadFilename(models.Twitter))
	assert.Equal(t, "instagram_image.jpeg", DownloadFilename(models.Instagram))
}

func TestPublishLabel(t *testing.T) {
	assert.Equal(t, "Publicar en LinkedIn", PublishLabel(models.LinkedIn))
	assert.Equal(t, "Publicar en Twitter", PublishLabel(models.Twitter))
}

func TestDataURLRoundTrip(t *testing.T) {
	raw := []byte{0xff, 0xd8, 0xff, 0xe0}
	u := ImageDataURL(raw)
	assert.Equal(t, "data:image/jpeg;base64,/9j/4A==", u)

	data, mime, err := DecodeDataURL(u)
	require.NoError(t, err)
	assert.Equal(t, raw, data)
	assert.Equal(t, "image/jpeg", mime)
}

func TestDecodeDataURLRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "http://x", "data:image/jpeg,abc", "data:image/jpeg;base64", "data:image/jpeg;base64,***"} {
		_, _, err := DecodeDataURL(in)
		assert.ErrorIs(t, err, ErrInvalidDataURL, in)
	}
}
