package render

import "github.com/okian/resumedash/pkg/logger"

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the image size in pixels. Non-positive values are ignored.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// WithEmptyTitle sets the title drawn on the placeholder image.
func WithEmptyTitle(title string) Option {
	return func(r *Renderer) {
		if title != "" {
			r.emptyTitle = title
		}
	}
}

// WithLogger sets a custom logger for render diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}
