package view

import (
	"time"

	"github.com/idilsaglam/todo/internal/model"
)

const dateLayout = "Jan 2, 2006"

// FormatDate renders a server time as a short local date.
func FormatDate(ts model.Timestamp) string {
	return formatDateIn(ts, time.Local)
}

func formatDateIn(ts model.Timestamp, loc *time.Location) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(loc).Format(dateLayout)
}
