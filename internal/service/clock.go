package service

import "time"

// SystemClock — боевые часы. В тестах подменяются фиксированными,
// чтобы временная классификация была детерминированной.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
