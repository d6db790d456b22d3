// Package toast drives the floating toast stack shown on top of a page.
//
// A Stack follows a notifications.Store. Only the first MaxVisible
// notifications of the store are toasts; the rest wait their turn and are
// visible in the dropdown (List), which has no cap. Each toast moves through
//
//	entering -> visible -> leaving -> removed
//
// Dismiss moves a toast to leaving and removes it from the store once
// ExitDelay has elapsed, so the exit transition can finish in the browser while
// the notification is still present. Toasts auto-dismiss after AutoDismiss
// unless they are errors (see WithErrorAutoDismiss) or not dismissible.
//
// Every pending timer belongs to the Stack and is stopped by Close; no timer
// callback has an effect after Close returns.
package toast
