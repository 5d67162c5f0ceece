package client

import (
	evbus "github.com/asaskevich/EventBus"
)

// TopicSessionExpired is published once per failed renewal.
const TopicSessionExpired = "session:expired"

type ExpiryReason string

const (
	ReasonNoRefreshToken ExpiryReason = "no_refresh_token"
	ReasonRefreshFailed  ExpiryReason = "refresh_failed"
)

// SessionExpiredEvent tells the controller that stored credentials were
// cleared and the user has to log in again.
type SessionExpiredEvent struct {
	Reason ExpiryReason
	Err    error
}

// OnSessionExpired subscribes fn to session expiry. Handlers run
// synchronously on the goroutine whose request failed and must not
// subscribe or publish on the same bus.
func (c *HTTPClient) OnSessionExpired(fn func(SessionExpiredEvent)) error {
	return c.bus.Subscribe(TopicSessionExpired, fn)
}

func (c *HTTPClient) publishExpired(ev SessionExpiredEvent) {
	c.bus.Publish(TopicSessionExpired, ev)
}

func newBus() evbus.Bus {
	return evbus.New()
}
