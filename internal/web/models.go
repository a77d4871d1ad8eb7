package web

import (
	"html/template"

	"github.com/BerylCAtieno/social-content-agent/internal/models"
	"github.com/BerylCAtieno/social-content-agent/internal/publish"
)

// User-facing messages.
const (
	MsgEmptyIdea        = "Por favor, introduce una idea."
	MsgInvalidTone      = "Por favor, elige un tono válido."
	MsgGenerationFailed = "Ocurrió un error al generar el contenido. Por favor, inténtalo de nuevo."
	MsgPrepareFailed    = "Error al preparar el contenido. Revisa la consola para más detalles."
	MsgPrepared         = "✅ ¡Texto Copiado e Imagen Descargada!"
)

type GenerateRequest struct {
	Idea string `json:"idea" form:"idea"`
	Tone string `json:"tone" form:"tone"`
}

type CardResponse struct {
	Platform         string             `json:"platform"`
	Key              string             `json:"key"`
	AspectRatio      models.AspectRatio `json:"aspectRatio"`
	Headline         string             `json:"headline,omitempty"`
	Hook             string             `json:"hook,omitempty"`
	Body             string             `json:"body,omitempty"`
	Caption          string             `json:"caption,omitempty"`
	Hashtags         string             `json:"hashtags"`
	ImageURL         string             `json:"imageUrl"`
	FormattedText    string             `json:"formattedText"`
	PublishURL       string             `json:"publishUrl"`
	DownloadFilename string             `json:"downloadFilename"`
}

type GenerateResponse struct {
	Cards []CardResponse `json:"cards"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// cardView is what the HTML template renders for one platform.
type cardView struct {
	CardResponse
	Image        template.URL
	PublishLabel string
	ImageLabel   string
}

type pageData struct {
	Idea          string
	Tone          string
	Tones         []models.Tone
	Error         string
	Cards         []cardView
	PreparedLabel string
	PrepareError  string
}

func toCardResponse(c publish.Card) CardResponse {
	return CardResponse{
		Platform:         c.Platform.Name,
		Key:              c.Platform.Key,
		AspectRatio:      c.Platform.AspectRatio,
		Headline:         c.Headline,
		Hook:             c.Hook,
		Body:             c.Body,
		Caption:          c.Caption,
		Hashtags:         c.Hashtags,
		ImageURL:         c.ImageURL,
		FormattedText:    publish.FormattedText(c),
		PublishURL:       publish.PublishURL(c),
		DownloadFilename: publish.DownloadFilename(c.Platform),
	}
}

func cardResponses(state models.AppState) []CardResponse {
	cards := publish.Cards(state)
	out := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardResponse(c))
	}
	return out
}

func cardViews(state models.AppState) []cardView {
	var views []cardView
	for _, c := range publish.Cards(state) {
		views = append(views, cardView{
			CardResponse: toCardResponse(c),
			// Data URLs are produced by the generator, never taken from user input.
			Image:        template.URL(c.ImageURL),
			PublishLabel: publish.PublishLabel(c.Platform),
			ImageLabel:   "Imagen generada para " + c.Platform.Name,
		})
	}
	return views
}
