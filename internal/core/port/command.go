package port

import (
	"context"

	"askbot/internal/core/domain"
)

type Command interface {
	// Descriptor returns the static name, description and parameter schema of the command.
	Descriptor() domain.CommandDescriptor
	// Respond runs the command with bound arguments and answers through the reply sink.
	Respond(ctx context.Context, inv *domain.Invocation, args domain.Args, sink ReplySink) error
}

type CommandRegistry interface {
	// Register adds a new command to the registry, failing if the name is already taken.
	Register(cmd Command) error
	// Get retrieves a registered Command based on its name or returns an error if not found.
	Get(name string) (Command, error)
	// ListCommands returns the names of all registered commands.
	ListCommands() []string
	// Descriptors returns the descriptors of all registered commands sorted by name.
	Descriptors() []domain.CommandDescriptor
}
