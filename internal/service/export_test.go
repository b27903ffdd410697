package service

import "time"

// SetNow overrides the reporter's clock, for tests in the external test package.
func (r *ThrottledReporter) SetNow(now func() time.Time) {
	r.now = now
}
