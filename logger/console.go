package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const ansiReset = "\033[0m"

type levelStyle struct {
	short string
	color string
}

var levelStyles = map[string]levelStyle{
	"DEBUG": {"DBG", "\033[36m"},
	"INFO":  {"INF", "\033[32m"},
	"WARN":  {"WRN", "\033[33m"},
	"ERROR": {"ERR", "\033[31m"},
	"FATAL": {"FTL", "\033[35m"},
}

// consoleWriter renders lines as "HH:MM:SS [SVC][LVL] message key:value".
// The service tag is the first three letters of the service name.
func consoleWriter(w io.Writer, serviceName string, noColor bool) zerolog.ConsoleWriter {
	tag := serviceTag(serviceName, noColor)
	str := func(i interface{}) string {
		if i == nil {
			return ""
		}
		return fmt.Sprint(i)
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
		FormatLevel: func(i interface{}) string {
			return tag + levelTag(strings.ToUpper(str(i)), noColor)
		},
		FormatMessage:    str,
		FormatFieldValue: str,
		FormatFieldName: func(i interface{}) string {
			return str(i) + ":"
		},
	}
}

func serviceTag(serviceName string, noColor bool) string {
	if serviceName == "default" || len(serviceName) < 3 {
		return ""
	}
	tag := "[" + strings.ToUpper(serviceName[:3]) + "]"
	if noColor {
		return tag
	}
	return "\033[34m" + tag + ansiReset
}

func levelTag(lvl string, noColor bool) string {
	style, ok := levelStyles[lvl]
	switch {
	case !ok:
		return "[" + lvl + "]"
	case noColor:
		return "[" + style.short + "]"
	default:
		return style.color + "[" + style.short + "]" + ansiReset
	}
}
