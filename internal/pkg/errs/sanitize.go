package errs

import (
	"fmt"
	"strings"
)

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// sanitize renders a value on a single line so that error messages stay
// log-friendly even when they embed user input.
func sanitize(v any) string {
	return newlineReplacer.Replace(fmt.Sprintf("%v", v))
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, sanitize(cause.Error()))
}
