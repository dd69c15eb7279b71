package servicenow

import "fmt"

// GlideDuration renders an elapsed-seconds count in the Table API's duration
// convention: a point in time offset from the Unix epoch.
// 28800 seconds -> "1970-01-01 08:00:00".
func GlideDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60
	return fmt.Sprintf("1970-01-01 %02d:%02d:%02d", h, m, s)
}
