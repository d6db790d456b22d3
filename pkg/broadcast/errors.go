package broadcast

import "errors"

var ErrClosed = errors.New("broadcast.closed")
