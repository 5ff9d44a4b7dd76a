package diagram

import "errors"

// ErrDegenerateScale is returned when a diagram with zero width or height
// is asked to scale to a given width or height.
var ErrDegenerateScale = errors.New("degenerate scale: bounding box has zero extent")
