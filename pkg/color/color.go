package color

import (
	"fmt"
	"os"
	"strings"
)

const (
	Reset = "\033[0m"
	Bold  = "\033[1m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
	Gray    = "\033[90m"

	BrightRed     = "\033[91m"
	BrightGreen   = "\033[92m"
	BrightYellow  = "\033[93m"
	BrightBlue    = "\033[94m"
	BrightMagenta = "\033[95m"
	BrightCyan    = "\033[96m"
	BrightWhite   = "\033[97m"
)

var colorEnabled = true

func init() {
	if os.Getenv("NO_COLOR") != "" || !isTerminal() {
		colorEnabled = false
	}
}

func isTerminal() bool {
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

func EnableColor(enable bool) {
	colorEnabled = enable
}

func IsColorEnabled() bool {
	return colorEnabled
}

func Colorize(color, text string) string {
	if !colorEnabled {
		return text
	}
	return color + text + Reset
}

func RedText(text string) string {
	return Colorize(Red, text)
}

func BrightRedText(text string) string {
	return Colorize(BrightRed, text)
}

func GreenText(text string) string {
	return Colorize(Green, text)
}

func YellowText(text string) string {
	return Colorize(Yellow, text)
}

func BlueText(text string) string {
	return Colorize(Blue, text)
}

func CyanText(text string) string {
	return Colorize(Cyan, text)
}

func GrayText(text string) string {
	return Colorize(Gray, text)
}

func BoldText(text string) string {
	return Colorize(Bold, text)
}

func Error(message string) string {
	if !colorEnabled {
		return message
	}
	return BrightRedText("Error: ") + message
}

func Warning(message string) string {
	if !colorEnabled {
		return message
	}
	return YellowText("Warning: ") + message
}

func Info(message string) string {
	if !colorEnabled {
		return message
	}
	return BlueText("Info: ") + message
}

func Success(message string) string {
	if !colorEnabled {
		return message
	}
	return GreenText("Success: ") + message
}

func Highlight(text, highlight string) string {
	if !colorEnabled {
		return text
	}
	return strings.ReplaceAll(text, highlight, YellowText(highlight))
}

func Header(title string) string {
	header := fmt.Sprintf("=== %s ===", title)
	if !colorEnabled {
		return header
	}
	return CyanText(BoldText(header))
}

func Verdict(ok bool) string {
	if ok {
		return GreenText("  ok ")
	}
	return BrightRedText(BoldText(" FAIL"))
}

func Detail(text string) string {
	return GrayText(text)
}

func Count(n, total int) string {
	count := fmt.Sprintf("%d/%d", n, total)
	if !colorEnabled {
		return count
	}
	return CyanText(count)
}

func Binding(name string, value any) string {
	line := fmt.Sprintf("%s = %v", name, value)
	if !colorEnabled {
		return line
	}
	return fmt.Sprintf("%s = %s", YellowText(name), BlueText(fmt.Sprintf("%v", value)))
}
