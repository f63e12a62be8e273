package domain

import "time"

type Platform string

const (
	Discord  Platform = "discord"
	Telegram Platform = "telegram"
	Console  Platform = "console"
)

type Visibility int

const (
	Public Visibility = iota
	Private
)

func (v Visibility) String() string {
	if v == Private {
		return "private"
	}
	return "public"
}

type ParamType string

const (
	Integer ParamType = "integer"
	String  ParamType = "string"
)

// ParamSpec declares a single command parameter.
type ParamSpec struct {
	Name        string
	Description string
	Type        ParamType
	Required    bool
}

// CommandDescriptor is the static, user-facing shape of a command.
type CommandDescriptor struct {
	Name        string
	Description string
	Parameters  []ParamSpec
}

type Caller struct {
	ID        string
	Name      string
	ChannelID string
	// Mention is the platform specific way of addressing the caller in a message.
	Mention string
}

// Invocation is a single request to run a command, normalized from a transport event.
type Invocation struct {
	ID       string
	Platform Platform
	Command  string
	Caller   Caller
	// Options holds named raw values as delivered by structured transports.
	Options map[string]any
	// Text holds the free-form argument string of text based transports.
	Text       string
	Latency    time.Duration
	ReceivedAt time.Time
}

type Author string

const (
	User   Author = "user"
	System Author = "system"
)

type Prompt struct {
	Prompt string
	Author Author
	Caller string
}

type ModelResponse struct {
	Response string
	Metadata ResponseMetadata
}

type ResponseMetadata struct {
	Model            string
	CompletionTokens int
	TotalTokens      int
}

// FeatureAvailability records whether an optional feature could be enabled at startup.
type FeatureAvailability struct {
	Enabled bool
	Reason  string
}

func Available() FeatureAvailability {
	return FeatureAvailability{Enabled: true}
}

func Unavailable(reason string) FeatureAvailability {
	return FeatureAvailability{Reason: reason}
}
