package errors

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// DisplayMessage extracts the user-facing message from an error's
// hints, falling back to a generic message. Used wherever a taxonomy
// error degrades into a validation message instead of a failure.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		// first non-empty hint; GetAllHints is post-order traversal
		for _, hint := range hints {
			if hint = strings.TrimSpace(hint); hint != "" {
				return hint
			}
		}
	}
	return "An unexpected error occurred"
}
