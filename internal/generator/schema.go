package generator

import "github.com/google/generative-ai-go/genai"

func stringObject(fields ...string) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	for _, f := range fields {
		props[f] = &genai.Schema{Type: genai.TypeString}
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   fields,
	}
}

// PostsSchema is the response schema the text model must follow: one object
// per platform, every field a required string.
func PostsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"linkedin":  stringObject("headline", "body", "hashtags"),
			"twitter":   stringObject("hook", "body", "hashtags"),
			"instagram": stringObject("hook", "caption", "hashtags"),
		},
		Required: []string{"linkedin", "twitter", "instagram"},
	}
}
