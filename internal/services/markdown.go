package services

import (
	"bytes"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// CharsPerMinute is the reading speed behind ReadingMinutes.
const CharsPerMinute = 400

type MarkdownPreview struct {
	HTML           string `json:"html"`
	Characters     int    `json:"characters"`
	ReadingMinutes int    `json:"reading_minutes"`
}

type MarkdownService interface {
	Preview(source string) (MarkdownPreview, error)
}

type markdownService struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewMarkdownService() MarkdownService {
	return &markdownService{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// ReadingMinutes is max(1, ceil(chars/400)).
func ReadingMinutes(chars int) int {
	return int(math.Max(1, math.Ceil(float64(chars)/CharsPerMinute)))
}

func (ms *markdownService) Preview(source string) (MarkdownPreview, error) {
	var buf bytes.Buffer
	if err := ms.md.Convert([]byte(source), &buf); err != nil {
		return MarkdownPreview{}, fmt.Errorf("render markdown: %w", err)
	}
	chars := utf8.RuneCountInString(source)
	return MarkdownPreview{
		HTML:           ms.policy.Sanitize(buf.String()),
		Characters:     chars,
		ReadingMinutes: ReadingMinutes(chars),
	}, nil
}
