package professional

import "errors"

var ErrNotFound = errors.New("professional not found")
