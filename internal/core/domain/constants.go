package domain

import "errors"

var (
	ErrConfigMissing      = errors.New("required configuration missing")
	ErrCommandNotFound    = errors.New("command not found")
	ErrDuplicateCommand   = errors.New("command already registered")
	ErrValidation         = errors.New("invalid parameters")
	ErrForbidden          = errors.New("caller not allowed")
	ErrNotConfigured      = errors.New("feature not configured")
	ErrTimeout            = errors.New("request timed out")
	ErrUpstream           = errors.New("upstream error")
	ErrHandlerCrash       = errors.New("command handler crashed")
	ErrReplyAlreadySent   = errors.New("reply already sent")
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrEmptyPrompt        = errors.New("empty prompt")
)

const (
	// MessageLimit is the longest reply, in characters, handed to a transport.
	MessageLimit = 1800
	Ellipsis     = "…"

	EmptyCompletionText = "The model returned an empty response."
	NotConfiguredText   = "The completion command is not configured. " +
		"Set COMPLETION_API_KEY (or completion.api_key in config.toml) and restart the bot."
)

// UserMessage maps an error to a plain language message that is safe to show to callers.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCommandNotFound):
		return "Unknown command."
	case errors.Is(err, ErrValidation):
		var ve *ValidationError
		if errors.As(err, &ve) {
			return "Invalid parameters: " + ve.Error()
		}
		return "Invalid parameters."
	case errors.Is(err, ErrEmptyPrompt):
		return "Please provide a prompt."
	case errors.Is(err, ErrForbidden):
		return "You are not allowed to use this bot."
	case errors.Is(err, ErrNotConfigured):
		return NotConfiguredText
	case errors.Is(err, ErrTimeout):
		return "The request timed out, please try again."
	case errors.Is(err, ErrUpstream):
		return "The completion service returned an error, please try again later."
	default:
		return "Something went wrong while running this command."
	}
}
