package reminder

import (
	"errors"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

const singleChannelGuestSuffix = "\n\n_You have been sent this message because you are a single channel guest who might have otherwise missed this alert._"

// Diagnostic renders err for the log channel. Errors that are not about the
// event description get a generic line.
func Diagnostic(summary string, err error) string {
	var malformed *domain.MalformedDescriptionError
	switch {
	case errors.As(err, &malformed):
		return malformed.Diagnostic()
	case errors.Is(err, domain.ErrMissingDescription):
		return "Upcoming *" + summary + "* contains an undefined description"
	default:
		return "Upcoming *" + summary + "* could not be sent: " + err.Error()
	}
}
