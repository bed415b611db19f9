package media

import (
	"errors"
	"slices"
	"strings"
)

// ErrVideoNotAllowed is returned when video is assigned to slide whose
// template does not support it.
var ErrVideoNotAllowed = errors.New("template does not allow video")

// Compatibility describes what media template of a slide accepts.
type Compatibility struct {
	Template     string
	VideoAllowed bool
}

// CompatibilityOf decides compatibility of template class against list of
// classes which forbid video.
func CompatibilityOf(template string, forbidden []string) Compatibility {
	template = strings.TrimSpace(template)
	return Compatibility{
		Template: template,
		VideoAllowed: !slices.ContainsFunc(forbidden, func(f string) bool {
			return strings.EqualFold(f, template)
		}),
	}
}
