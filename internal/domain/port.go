package domain

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=port.go -destination=../mocks/mock_port.go -package=mocks

// ChartRenderer produces the base chart SVG for a set of birth data.
type ChartRenderer interface {
	Render(ctx context.Context, data BirthData) (string, error)
}

// MarkupExtractor splits a base chart into its root viewBox and inner markup.
type MarkupExtractor interface {
	Extract(svg string) (ChartMarkup, error)
}

// ChartDecorator wraps a base chart in the styled envelope. Implementations
// must return the base chart unchanged when decoration fails.
type ChartDecorator interface {
	Decorate(ctx context.Context, base string, d Decoration) string
}

// BackgroundCatalog gives access to the configured background images.
type BackgroundCatalog interface {
	Raw(ctx context.Context) ([]byte, error)
	Lookup(ctx context.Context, id string) (Background, error)
}
