package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/BerylCAtieno/social-content-agent/internal/generator"
	"github.com/BerylCAtieno/social-content-agent/internal/models"
	"github.com/BerylCAtieno/social-content-agent/internal/publish"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorStub struct {
	calls  int
	tones  []models.Tone
	err    error
	before func()
}

func (g *generatorStub) Generate(_ context.Context, idea string, tone models.Tone) (models.AppState, error) {
	g.calls++
	g.tones = append(g.tones, tone)
	if g.before != nil {
		g.before()
	}
	if g.err != nil {
		return models.AppState{}, g.err
	}
	return models.AppState{
		LinkedIn: &models.SocialPost[models.LinkedinText]{
			Text:     models.LinkedinText{Headline: "Titular " + idea, Body: "Cuerpo", Hashtags: "#a"},
			ImageURL: publish.ImageDataURL([]byte("li")),
		},
		Twitter: &models.SocialPost[models.TwitterText]{
			Text:     models.TwitterText{Hook: "Gancho", Body: "Directo", Hashtags: "#x"},
			ImageURL: publish.ImageDataURL([]byte("tw")),
		},
		Instagram: &models.SocialPost[models.InstagramText]{
			Text:     models.InstagramText{Hook: "✨", Caption: "Historia", Hashtags: "#ig"},
			ImageURL: publish.ImageDataURL([]byte("ig")),
		},
	}, nil
}

type harness struct {
	router  *gin.Engine
	handler *Handler
	gen     *generatorStub
	metrics *Metrics
	cookies []*http.Cookie
}

func setup(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	gen := &generatorStub{}
	metrics := NewMetrics(prometheus.NewRegistry())
	h := NewHandler(gen, nil, metrics, time.Minute)
	h.Register(router)
	return &harness{router: router, handler: h, gen: gen, metrics: metrics}
}

func (hs *harness) do(method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range hs.cookies {
		req.AddCookie(c)
	}
	resp := httptest.NewRecorder()
	hs.router.ServeHTTP(resp, req)
	if cookies := resp.Result().Cookies(); len(cookies) > 0 {
		hs.cookies = cookies
	}
	return resp
}

func (hs *harness) postJSON(t *testing.T, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return hs.do(http.MethodPost, "/api/generate", body, "application/json")
}

func (hs *harness) listCards(t *testing.T) []CardResponse {
	t.Helper()
	resp := hs.do(http.MethodGet, "/api/posts", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	var out GenerateResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out.Cards
}

func TestIndexRendersFormAndIssuesSession(t *testing.T) {
	hs := setup(t)
	resp := hs.do(http.MethodGet, "/", nil, "")

	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, "Generador de Contenido para Redes Sociales")
	assert.Contains(t, body, "<option selected>Profesional</option>")
	for _, tone := range models.Tones {
		assert.Contains(t, body, string(tone))
	}
	require.Len(t, hs.cookies, 1)
	assert.Equal(t, sessionCookie, hs.cookies[0].Name)
	assert.NotContains(t, body, `class="results-grid"`)
}

func TestGenerateJSONRejectsEmptyIdea(t *testing.T) {
	hs := setup(t)
	resp := hs.postJSON(t, GenerateRequest{Idea: "   ", Tone: "Casual"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), MsgEmptyIdea)
	assert.Zero(t, hs.gen.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(hs.metrics.Generations.WithLabelValues("empty_idea")))
}

func TestGenerateJSONRejectsMalformedBody(t *testing.T) {
	hs := setup(t)
	resp := hs.do(http.MethodPost, "/api/generate", []byte("{bad json"), "application/json")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Zero(t, hs.gen.calls)
}

func TestGenerateJSONRejectsUnknownTone(t *testing.T) {
	hs := setup(t)
	resp := hs.postJSON(t, GenerateRequest{Idea: "idea", Tone: "Sarcástico"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), MsgInvalidTone)
	assert.Zero(t, hs.gen.calls)
}

func TestGenerateJSONReturnsCards(t *testing.T) {
	hs := setup(t)
	resp := hs.postJSON(t, GenerateRequest{Idea: "fitness", Tone: "ingenioso"})

	require.Equal(t, http.StatusOK, resp.Code)
	var out GenerateResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	require.Len(t, out.Cards, 3)

	assert.Equal(t, []models.Tone{models.ToneWitty}, hs.gen.tones)

	li, tw, ig := out.Cards[0], out.Cards[1], out.Cards[2]
	assert.Equal(t, "LinkedIn", li.Platform)
	assert.Equal(t, models.Ratio4x3, li.AspectRatio)
	assert.Equal(t, "Titular fitness\n\nCuerpo\n\n#a", li.FormattedText)
	assert.Equal(t, "https://www.linkedin.com/post/new/", li.PublishURL)

	assert.Equal(t, "Twitter / X", tw.Platform)
	assert.Equal(t, models.Ratio16x9, tw.AspectRatio)
	assert.Equal(t, "twitter___x_image.jpeg", tw.DownloadFilename)
	assert.True(t, strings.HasPrefix(tw.PublishURL, "https://twitter.com/intent/tweet?text="))

	assert.Equal(t, models.Ratio1x1, ig.AspectRatio)
	assert.Equal(t, "✨\n\nHistoria\n\n.\n.\n.\n\n#ig", ig.FormattedText)

	assert.Len(t, hs.listCards(t), 3)
	assert.Equal(t, 1.0, testutil.ToFloat64(hs.metrics.Generations.WithLabelValues("succeeded")))
}

func TestGenerateResetsStateBeforeCycle(t *testing.T) {
	hs := setup(t)
	require.Equal(t, http.StatusOK, hs.postJSON(t, GenerateRequest{Idea: "first"}).Code)
	require.Len(t, hs.cookies, 1)
	sid := hs.cookies[0].Value

	var during models.AppState
	hs.gen.before = func() { during = hs.handler.store.get(sid) }
	hs.gen.err = fmt.Errorf("%w: quota", generator.ErrGenerationFailed)

	resp := hs.postJSON(t, GenerateRequest{Idea: "second"})

	assert.True(t, during.Empty(), "state must be cleared before the provider is called")
	assert.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Contains(t, resp.Body.String(), MsgGenerationFailed)
	assert.NotContains(t, resp.Body.String(), "quota")
	assert.Empty(t, hs.listCards(t))
}

func TestGenerateFailureIsGeneric(t *testing.T) {
	hs := setup(t)
	hs.gen.err = errors.New("json: unexpected end of input")

	resp := hs.postJSON(t, GenerateRequest{Idea: "idea"})

	assert.Equal(t, http.StatusBadGateway, resp.Code)
	var out ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, MsgGenerationFailed, out.Error)
	assert.Equal(t, 1.0, testutil.ToFloat64(hs.metrics.Generations.WithLabelValues("failed")))
}

func TestSessionsAreIsolated(t *testing.T) {
	hs := setup(t)
	require.Equal(t, http.StatusOK, hs.postJSON(t, GenerateRequest{Idea: "mine"}).Code)

	other := &harness{router: hs.router}
	resp := other.do(http.MethodGet, "/api/posts", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"cards":[]}`, resp.Body.String())
}

func TestPostTextAndImage(t *testing.T) {
	hs := setup(t)
	require.Equal(t, http.StatusOK, hs.postJSON(t, GenerateRequest{Idea: "idea"}).Code)

	text := hs.do(http.MethodGet, "/api/posts/twitter/text", nil, "")
	require.Equal(t, http.StatusOK, text.Code)
	assert.Equal(t, "Gancho\n\nDirecto\n\n#x", text.Body.String())

	img := hs.do(http.MethodGet, "/api/posts/twitter/image", nil, "")
	require.Equal(t, http.StatusOK, img.Code)
	assert.Equal(t, "image/jpeg", img.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="twitter___x_image.jpeg"`, img.Header().Get("Content-Disposition"))
	assert.Equal(t, "tw", img.Body.String())

	assert.Equal(t, 1.0, testutil.ToFloat64(hs.metrics.Prepared.WithLabelValues("twitter", "image")))
}

func TestPostEndpointsNotFound(t *testing.T) {
	hs := setup(t)

	assert.Equal(t, http.StatusNotFound, hs.do(http.MethodGet, "/api/posts/instagram/text", nil, "").Code)
	require.Equal(t, http.StatusOK, hs.postJSON(t, GenerateRequest{Idea: "idea"}).Code)
	assert.Equal(t, http.StatusNotFound, hs.do(http.MethodGet, "/api/posts/myspace/image", nil, "").Code)
}

func TestGenerateFormRendersCards(t *testing.T) {
	hs := setup(t)
	form := url.Values{"idea": {"café"}, "tone": {"Urgente"}}
	resp := hs.do(http.MethodPost, "/generate", []byte(form.Encode()), "application/x-www-form-urlencoded")

	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, `class="results-grid"`)
	assert.Contains(t, body, `data-aspect-ratio="16:9"`)
	assert.Contains(t, body, "Publicar en Twitter")
	assert.Contains(t, body, `src="data:image/jpeg;base64,`)
	assert.Contains(t, body, "<option selected>Urgente</option>")
	assert.Contains(t, body, "twitter___x_image.jpeg")
}

func TestGenerateFormEmptyIdeaShowsInlineError(t *testing.T) {
	hs := setup(t)
	form := url.Values{"idea": {""}, "tone": {"Casual"}}
	resp := hs.do(http.MethodPost, "/generate", []byte(form.Encode()), "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), MsgEmptyIdea)
	assert.NotContains(t, resp.Body.String(), `class="results-grid"`)
	assert.Zero(t, hs.gen.calls)
}

func TestGenerateFormFailureShowsGenericError(t *testing.T) {
	hs := setup(t)
	hs.gen.err = errors.New("network unreachable")
	form := url.Values{"idea": {"idea"}}
	resp := hs.do(http.MethodPost, "/generate", []byte(form.Encode()), "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Contains(t, resp.Body.String(), "Ocurrió un error al generar el contenido")
	assert.NotContains(t, resp.Body.String(), "network unreachable")
}

func TestGenerateFormEmptyIdeaKeepsPreviousCards(t *testing.T) {
	hs := setup(t)
	require.Equal(t, http.StatusOK, hs.postJSON(t, GenerateRequest{Idea: "primera"}).Code)

	form := url.Values{"idea": {"  "}, "tone": {"Casual"}}
	resp := hs.do(http.MethodPost, "/generate", []byte(form.Encode()), "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, MsgEmptyIdea)
	assert.Contains(t, body, `class="results-grid"`)
	assert.Contains(t, body, "Titular primera")
	assert.Equal(t, 1, hs.gen.calls)
	assert.Len(t, hs.listCards(t), 3)
}

func TestOverlappingCyclesKeepNewestResult(t *testing.T) {
	hs := setup(t)
	require.Equal(t, http.StatusOK, hs.postJSON(t, GenerateRequest{Idea: "vieja"}).Code)
	sid := hs.cookies[0].Value

	// A second tab starts a newer cycle while this one is still running.
	var newer bool
	hs.gen.before = func() {
		if newer {
			return
		}
		newer = true
		hs.handler.store.reset(sid)
	}

	require.Equal(t, http.StatusOK, hs.postJSON(t, GenerateRequest{Idea: "lenta"}).Code)
	assert.Empty(t, hs.listCards(t), "a superseded cycle must not overwrite the session")
}

func TestStoreDropsSupersededCycle(t *testing.T) {
	s := newStore()
	first := s.reset("sid")
	second := s.reset("sid")

	assert.False(t, s.set("sid", first, models.AppState{Twitter: &models.SocialPost[models.TwitterText]{}}))
	assert.True(t, s.get("sid").Empty())

	assert.True(t, s.set("sid", second, models.AppState{Twitter: &models.SocialPost[models.TwitterText]{}}))
	assert.False(t, s.get("sid").Empty())

	assert.False(t, s.set("unknown", 1, models.AppState{}))
}

func TestStorePrunesIdleSessions(t *testing.T) {
	s := newStore()
	now := time.Now()
	s.now = func() time.Time { return now }
	s.reset("old")

	now = now.Add(sessionTTL + time.Minute)
	s.reset("new")

	assert.Equal(t, 1, s.len())
}

func TestStoreGetExpiresIdleSession(t *testing.T) {
	s := newStore()
	now := time.Now()
	s.now = func() time.Time { return now }
	cycle := s.reset("sid")
	require.True(t, s.set("sid", cycle, models.AppState{Instagram: &models.SocialPost[models.InstagramText]{}}))

	now = now.Add(sessionTTL + time.Minute)

	assert.True(t, s.get("sid").Empty())
	assert.Equal(t, 0, s.len())
}
