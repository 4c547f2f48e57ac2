// Package formatters converts transcriptions between the on-disk
// transcript formats: timestamped TXT, SubRip SRT, and versioned JSON.
package formatters

import (
	"fmt"
	"math"
)

// SecondsToHMS renders a duration as HH:MM:SS, truncating fractional
// seconds. Negative input is an error.
func SecondsToHMS(seconds float64) (string, error) {
	if seconds < 0 {
		return "", fmt.Errorf("seconds must be non-negative, got %g", seconds)
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60), nil
}

// SecondsToSRT renders a duration as HH:MM:SS,mmm. Millisecond
// rounding that lands on exactly 1000 rolls over into the seconds
// field rather than printing ",1000".
func SecondsToSRT(seconds float64) (string, error) {
	if seconds < 0 {
		return "", fmt.Errorf("seconds must be non-negative, got %g", seconds)
	}

	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	millis := int(math.Round((seconds - math.Floor(seconds)) * 1000))

	if millis == 1000 {
		millis = 0
		secs++
		if secs == 60 {
			secs = 0
			minutes++
			if minutes == 60 {
				minutes = 0
				hours++
			}
		}
	}

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis), nil
}
