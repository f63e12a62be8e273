package service

import (
	"fmt"
	"strings"
)

const greetingKeyword = "hello"

// Greeting returns the keyword auto-reply for a plain chat message, if any.
func Greeting(text, mention string) (string, bool) {
	if !strings.EqualFold(strings.TrimSpace(text), greetingKeyword) {
		return "", false
	}

	if mention == "" {
		return "Hello!", true
	}

	return fmt.Sprintf("Hello, %s!", mention), true
}
