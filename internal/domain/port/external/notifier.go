package external

import "context"

// SMSSender dispatches a text message to a phone number. Delivery is
// best effort: the lifecycle engine logs failures and never surfaces them.
type SMSSender interface {
	Send(ctx context.Context, phoneNumber, message string) error
}
