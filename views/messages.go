package views

import "strings"

var messages = map[string]string{
	"bad_request":           "The request could not be understood.",
	"unauthorized":          "Please sign in to continue.",
	"forbidden":             "You do not have access to this page.",
	"not_found":             "We could not find that page.",
	"method_not_allowed":    "That action is not allowed here.",
	"unprocessable_entity":  "Some fields need your attention.",
	"too_many_requests":     "You are going a bit fast. Try again in a moment.",
	"internal_server_error": "Something went wrong on our side.",
	"service_unavailable":   "The service is temporarily unavailable.",
	"datastar_required":     "This endpoint is only available to the live client.",
	"action_failed":         "That action could not be completed.",
	"not_dismissible":       "This notification cannot be dismissed.",
	"unknown_profile":       "Choose one of the listed accounts.",
}

// Message returns the human text for an error key. Unknown keys that look like
// sentences pass through; other keys get a generic message.
func Message(key string) string {
	if m, ok := messages[key]; ok {
		return m
	}
	if strings.Contains(key, " ") {
		return key
	}
	return messages["internal_server_error"]
}
