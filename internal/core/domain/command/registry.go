package command

import (
	"fmt"
	"sort"
	"strings"

	"askbot/internal/core/domain"
	"askbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Registry struct {
	commands map[string]port.Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]port.Command)}
}

func (r *Registry) Register(cmd port.Command) error {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	name := normalize(cmd.Descriptor().Name)
	if name == "" {
		return fmt.Errorf("%w: empty command name", domain.ErrValidation)
	}

	if _, ok := r.commands[name]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateCommand, name)
	}

	log.Info().Str("command", name).Msg("adding command to registry")
	r.commands[name] = cmd

	return nil
}

func (r *Registry) Get(name string) (port.Command, error) {
	log.Debug().Str("command", name).Msg("fetching command from registry")

	cmd, ok := r.commands[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, name)
	}

	return cmd, nil
}

func (r *Registry) ListCommands() []string {
	keys := make([]string, 0, len(r.commands))
	for k := range r.commands {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func (r *Registry) Descriptors() []domain.CommandDescriptor {
	names := r.ListCommands()
	descriptors := make([]domain.CommandDescriptor, len(names))

	for i, name := range names {
		descriptors[i] = r.commands[name].Descriptor()
	}

	return descriptors
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "/"))
}
