package ledger

import (
	"fmt"
	"time"

	"github.com/jsavoy93/time-tracker/internal/domain"
)

// zeroDuration is the display fallback when a timestamp cannot be parsed.
// It is never written back to storage.
const zeroDuration = "00:00:00"

// ComputeDuration renders the elapsed time between two timestamps as
// HH:MM:SS, hours exceeding 24 as needed. A nil end means "as of now". Parse
// failures degrade to 00:00:00 for display rather than surfacing an error.
func (l *Ledger) ComputeDuration(startUTC string, endUTC *string) string {
	start, err := domain.ParseTimestamp(startUTC)
	if err != nil {
		return zeroDuration
	}

	var end time.Time
	if endUTC != nil {
		end, err = domain.ParseTimestamp(*endUTC)
		if err != nil {
			return zeroDuration
		}
	} else {
		end = l.clock.Now().UTC()
	}

	return formatDuration(end.Sub(start))
}

func formatDuration(d time.Duration) string {
	total := int64(d.Seconds())
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
