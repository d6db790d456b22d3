package guard

import "errors"

var ErrNavigation = errors.New("guard.navigation_failed")
