package service

import (
	"askbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

type Authorizer interface {
	IsAuthorized(caller domain.Caller) bool
}

// CallerAuthorizer allows callers whose user or channel ID is on the allowlist.
// An empty allowlist allows everyone.
type CallerAuthorizer struct {
	allowlist map[string]struct{}
}

func NewAuthorizer(allowed []string) *CallerAuthorizer {
	list := make(map[string]struct{}, len(allowed))
	for _, id := range allowed {
		if id != "" {
			list[id] = struct{}{}
		}
	}

	return &CallerAuthorizer{allowlist: list}
}

func (a *CallerAuthorizer) IsAuthorized(caller domain.Caller) bool {
	if len(a.allowlist) == 0 {
		return true
	}

	if _, ok := a.allowlist[caller.ID]; ok {
		return true
	}

	if _, ok := a.allowlist[caller.ChannelID]; ok && caller.ChannelID != "" {
		return true
	}

	log.Debug().Str("caller", caller.ID).Str("channel", caller.ChannelID).Msg("caller not on allowlist")

	return false
}
