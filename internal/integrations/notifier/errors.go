package notifier

import "errors"

var (
	// ErrDeliveryFailed is returned by the synchronous send path when the
	// sink rejects or the request cannot be made. Callers of Notify never
	// see it; it only surfaces in logs.
	ErrDeliveryFailed = errors.New("notifier: webhook delivery failed")
)
