package utils

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"
)

// MessageType selects the color of a console message.
type MessageType int

// The message types used across the CLI application.
const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
)

// Colors used across the CLI application.
const (
	DefaultColor = "\x1b[0m"
	StatusColor  = "\x1b[36m"
	SuccessColor = "\x1b[32m"
	ErrorColor   = "\x1b[31m"
)

var colors = map[MessageType]string{
	DefaultMessage: DefaultColor,
	SuccessMessage: SuccessColor,
	ErrorMessage:   ErrorColor,
	StatusMessage:  StatusColor,
}

// NoColor disables the escape sequences added by DecorateText. It is set
// when NO_COLOR is defined or stderr is not a terminal.
var NoColor = os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stderr.Fd()))

// DecorateText wraps s in the color of its message type.
func DecorateText(s string, msgType MessageType) string {
	c, ok := colors[msgType]
	if !ok || NoColor {
		return s
	}
	return c + s + DefaultColor
}

// FormatTime formats a duration as days, hours, minutes and seconds,
// omitting the leading zero units.
func FormatTime(d time.Duration) string {
	secs := (d % time.Minute).Seconds()
	mins := int64(d/time.Minute) % 60
	hours := int64(d/time.Hour) % 24
	days := int64(d / (24 * time.Hour))

	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", secs)
	case d < time.Hour:
		return fmt.Sprintf("%dm %.2fs", mins, secs)
	case days == 0:
		return fmt.Sprintf("%dh %dm %.2fs", hours, mins, secs)
	default:
		return fmt.Sprintf("%dd %dh %dm %.2fs", days, hours, mins, secs)
	}
}
