package models

import "strings"

type LinkedinText struct {
	Headline string `json:"headline" validate:"required"`
	Body     string `json:"body" validate:"required"`
	Hashtags string `json:"hashtags" validate:"required"`
}

type TwitterText struct {
	Hook     string `json:"hook" validate:"required"`
	Body     string `json:"body" validate:"required"`
	Hashtags string `json:"hashtags" validate:"required"`
}

type InstagramText struct {
	Hook     string `json:"hook" validate:"required"`
	Caption  string `json:"caption" validate:"required"`
	Hashtags string `json:"hashtags" validate:"required"`
}

// PostText is implemented by the three platform payload shapes.
type PostText interface {
	LinkedinText | TwitterText | InstagramText
}

// SocialPost pairs a platform text payload with its generated image as a data URL.
type SocialPost[T PostText] struct {
	Text     T      `json:"text"`
	ImageURL string `json:"imageUrl"`
}

// GeneratedText is the shape returned by the text model.
type GeneratedText struct {
	LinkedIn  LinkedinText  `json:"linkedin" validate:"required"`
	Twitter   TwitterText   `json:"twitter" validate:"required"`
	Instagram InstagramText `json:"instagram" validate:"required"`
}

// AppState holds at most one post per platform. A generation cycle replaces it wholesale.
type AppState struct {
	LinkedIn  *SocialPost[LinkedinText]  `json:"linkedin"`
	Twitter   *SocialPost[TwitterText]   `json:"twitter"`
	Instagram *SocialPost[InstagramText] `json:"instagram"`
}

func (s AppState) Empty() bool {
	return s.LinkedIn == nil && s.Twitter == nil && s.Instagram == nil
}

type Tone string

const (
	ToneProfessional Tone = "Profesional"
	ToneWitty        Tone = "Ingenioso"
	ToneUrgent       Tone = "Urgente"
	ToneInspiring    Tone = "Inspirador"
	ToneCasual       Tone = "Casual"

	DefaultTone = ToneProfessional
)

// Tones lists the selectable tones in display order.
var Tones = []Tone{ToneProfessional, ToneWitty, ToneUrgent, ToneInspiring, ToneCasual}

func ParseTone(s string) (Tone, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultTone, true
	}
	for _, t := range Tones {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

type AspectRatio string

const (
	Ratio4x3  AspectRatio = "4:3"
	Ratio16x9 AspectRatio = "16:9"
	Ratio1x1  AspectRatio = "1:1"
)

type Platform struct {
	Key         string
	Name        string
	AspectRatio AspectRatio
}

var (
	LinkedIn  = Platform{Key: "linkedin", Name: "LinkedIn", AspectRatio: Ratio4x3}
	Twitter   = Platform{Key: "twitter", Name: "Twitter / X", AspectRatio: Ratio16x9}
	Instagram = Platform{Key: "instagram", Name: "Instagram", AspectRatio: Ratio1x1}
)

// Platforms lists the supported platforms in card order.
var Platforms = []Platform{LinkedIn, Twitter, Instagram}

func PlatformByKey(key string) (Platform, bool) {
	for _, p := range Platforms {
		if p.Key == strings.ToLower(key) {
			return p, true
		}
	}
	return Platform{}, false
}
