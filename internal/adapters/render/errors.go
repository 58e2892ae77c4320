package render

import "errors"

// ErrNotRenderable is returned for figures that have no image form, such as tables.
var ErrNotRenderable = errors.New("figure is not renderable")
