// ABOUTME: Error conditions raised by schedule operations
// ABOUTME: Day lookup misses, shift range violations, and in-flight rejections
package schedule

import "errors"

// ErrDayNotFound means the referenced date has no workout slot in the plan.
// Nothing is mutated and nothing is sent.
var ErrDayNotFound = errors.New("no workout scheduled for that date")

// ErrShiftOutOfRange means a shift targeted a slot outside the week's seven
// days, such as shifting Monday up or Sunday down. Nothing is mutated and
// nothing is sent.
var ErrShiftOutOfRange = errors.New("shift target is outside the week")

// ErrBusy means another mutation of the same kind is still persisting.
// The caller should let it settle and re-trigger.
var ErrBusy = errors.New("operation already in flight")
