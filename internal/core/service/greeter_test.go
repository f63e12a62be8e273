package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGreeting(t *testing.T) {
	type TestCase struct {
		description string
		text        string
		mention     string
		want        string
		wantOK      bool
	}

	testCases := []TestCase{
		{description: "exact keyword", text: "hello", mention: "<@1>", want: "Hello, <@1>!", wantOK: true},
		{description: "case and spaces", text: "  HeLLo ", mention: "@bob", want: "Hello, @bob!", wantOK: true},
		{description: "no mention", text: "hello", want: "Hello!", wantOK: true},
		{description: "keyword inside sentence", text: "hello there", mention: "@bob"},
		{description: "other text", text: "/ping", mention: "@bob"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got, ok := Greeting(testCase.text, testCase.mention)

			assert.Equal(t, testCase.wantOK, ok)
			assert.Equal(t, testCase.want, got)
		})
	}
}
