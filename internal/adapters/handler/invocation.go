package handler

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

func newInvocationID() string {
	return uuid.Must(uuid.NewV4()).String()
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
