package notifications

import "errors"

var (
	ErrRateLimited  = errors.New("notifications.rate_limited")
	ErrStoreClosed  = errors.New("notifications.store_closed")
	ErrInvalidDraft = errors.New("notifications.invalid_draft")
	ErrActionFailed = errors.New("notifications.action_failed")
	ErrEmptySession = errors.New("notifications.empty_session")
)
