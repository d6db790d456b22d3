// Package broadcast fans typed messages out to in-process subscribers.
//
// A Broadcaster never blocks on a slow subscriber: when a subscriber's buffer
// is full the oldest pending message is discarded, so a reader that catches up
// always sees the most recent state. Subscriptions end when their context is
// cancelled, when Close is called on them, or when the broadcaster closes.
package broadcast
