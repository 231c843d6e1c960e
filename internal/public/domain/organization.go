package domain

import "time"

// Organization is the tenant. Subscription fields mirror the payment
// provider's view of the tenant and are overwritten wholesale by webhook
// sync.
type Organization struct {
	ID                 string
	Name               string
	Plan               string
	SubscriptionStatus string
	SubscriptionID     string
	CurrentPeriodEnd   *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
