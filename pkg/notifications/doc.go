// Package notifications holds the transient notifications of a browser
// session.
//
// A Store is an ordered, in-memory collection: Add appends and returns a
// time-ordered id, Remove and Clear delete. None of them fail, and removing an
// id that is already gone is a no-op, so a toast timer and a user click can
// race to dismiss the same entry. Every mutation is published as an Event to
// subscribers, which is how the toast stream learns it must re-render.
//
// A Hub owns one Store per session id, keeps them in a bounded LRU and closes
// the stores it evicts. Hub.Add applies a per-session token bucket so a runaway
// producer cannot flood a page.
package notifications
