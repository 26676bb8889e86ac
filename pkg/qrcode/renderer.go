package qrcode

import (
	"net/url"
	"strings"
)

// DefaultChartURL is the legacy remote renderer; the escaped content is
// appended to it.
const DefaultChartURL = "https://chart.googleapis.com/chart?chs=166x166&chld=L|0&cht=qr&chl="

// Render modes accepted by NewRenderer.
const (
	ModeRemote = "remote"
	ModeInline = "inline"
)

// Renderer turns content into something usable as an image source.
type Renderer interface {
	Render(content string) (string, error)
}

// ChartRenderer builds a remote image URL by appending the query-escaped
// content to a URL prefix.
type ChartRenderer struct {
	prefix string
}

// NewChartRenderer returns a ChartRenderer. An empty prefix uses DefaultChartURL.
func NewChartRenderer(prefix string) ChartRenderer {
	if prefix == "" {
		prefix = DefaultChartURL
	}
	return ChartRenderer{prefix: prefix}
}

func (r ChartRenderer) Render(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}
	return r.prefix + url.QueryEscape(content), nil
}

// InlineRenderer draws the code locally and returns a data URI.
type InlineRenderer struct {
	size int
}

func NewInlineRenderer(size int) InlineRenderer {
	return InlineRenderer{size: size}
}

func (r InlineRenderer) Render(content string) (string, error) {
	return GenerateBase64Image(content, r.size)
}

// NewRenderer selects a renderer by mode.
func NewRenderer(mode, chartURL string, size int) (Renderer, error) {
	switch mode {
	case "", ModeRemote:
		return NewChartRenderer(chartURL), nil
	case ModeInline:
		return NewInlineRenderer(size), nil
	default:
		return nil, ErrUnknownMode
	}
}
