package domain

import "context"

// NotifyResult summarizes one dispatcher run.
type NotifyResult struct {
	Message  string `json:"message"`
	Notified int    `json:"notified"`
}

// NotificationService dispatches the daily digest: it collects today's
// not-yet-notified events, emails them as a single digest, and marks the
// batch notified only after the send is confirmed.
//
// Dispatch is safe to call repeatedly; once a day's batch is marked, later
// calls on the same day find an empty eligible set and do nothing. Two
// overlapping calls can still both read the same batch before either marks
// it, so a duplicate digest under concurrent triggers is possible. The
// flag write itself is idempotent, but the send is not serialized.
type NotificationService interface {
	Dispatch(ctx context.Context) (*NotifyResult, error)
}
