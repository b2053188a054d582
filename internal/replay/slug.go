package replay

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadSlug marks an event slug that failed validation.
var ErrBadSlug = errors.New("malformed event slug")

// ParseSlug splits an event slug of the form <projectSlug>:<eventID>.
// Validation happens before any network call so malformed input fails
// with a descriptive error instead of an upstream 404.
func ParseSlug(slug string) (project, eventID string, err error) {
	project, eventID, ok := strings.Cut(slug, ":")
	if !ok {
		return "", "", fmt.Errorf("%w: %q is not of the form <project>:<eventID>", ErrBadSlug, slug)
	}
	if project == "" {
		return "", "", fmt.Errorf("%w: %q has an empty project", ErrBadSlug, slug)
	}
	if eventID == "" {
		return "", "", fmt.Errorf("%w: %q has an empty event ID", ErrBadSlug, slug)
	}
	if strings.Contains(eventID, ":") {
		return "", "", fmt.Errorf("%w: %q has more than one separator", ErrBadSlug, slug)
	}
	return project, eventID, nil
}
