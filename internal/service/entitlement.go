package service

import "context"

// StaticEntitlements reports a fixed subscription state, typically from
// configuration.
type StaticEntitlements struct {
	Pro bool
}

func (e StaticEntitlements) IsPro(context.Context) (bool, error) {
	return e.Pro, nil
}
