package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionTypeForInterval(t *testing.T) {
	assert.Equal(t, SubscriptionTypeMonthly, SubscriptionTypeForInterval("month"))
	assert.Equal(t, SubscriptionTypeAnnual, SubscriptionTypeForInterval("year"))
	assert.Equal(t, SubscriptionTypeUnknown, SubscriptionTypeForInterval("week"))
	assert.Equal(t, SubscriptionTypeUnknown, SubscriptionTypeForInterval(""))
}
