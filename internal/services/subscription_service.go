package services

import (
	"errors"
	"fmt"
	"time"

	"aebox-api/internal/database"
	"aebox-api/internal/models"
	"aebox-api/pkg/logging"

	"gorm.io/gorm"
)

// ErrSubscriptionNotFound reports an operation on a username with no record.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// SubscriptionService reconciles provider lifecycle events and direct API
// calls onto the single subscription record per username.
type SubscriptionService struct {
	provider PaymentProvider
	mailer   Mailer
}

// NewSubscriptionService creates a subscription service
func NewSubscriptionService(provider PaymentProvider, mailer Mailer) *SubscriptionService {
	return &SubscriptionService{
		provider: provider,
		mailer:   mailer,
	}
}

// SubscriptionFields carries the mutable subscription attributes of a
// direct create/update call. Nil fields are left unchanged on update.
type SubscriptionFields struct {
	SubscriptionType *string
	Status           *string
	ExpiryDate       *time.Time
	DeviceID         *string
}

// IsRenewal is the renewal classification: an invoice payment for a
// username that already has a record is a renewal, everything else is not.
// A first checkout can never be a renewal.
func IsRenewal(kind EventKind, recordExists bool) bool {
	return kind == EventInvoicePaid && recordExists
}

// CreateOrUpdate upserts the record for username from a direct API call.
// Returns the stored record and whether it was newly created. Calling twice
// with the same fields leaves the record identical.
func (s *SubscriptionService) CreateOrUpdate(username string, fields SubscriptionFields) (*models.Subscription, bool, error) {
	existing, found, err := s.lookup(username)
	if err != nil {
		return nil, false, err
	}

	if !found {
		subscription := &models.Subscription{Username: username}
		applyFields(subscription, fields)
		if err := database.CreateSubscription(subscription); err != nil {
			return nil, false, fmt.Errorf("failed to create subscription: %w", err)
		}
		s.notify(username, "Your AE Box subscription is active",
			fmt.Sprintf("Hi,\n\nYour %s subscription is now active. Welcome aboard!", subscription.SubscriptionType))
		return subscription, true, nil
	}

	applyFields(existing, fields)
	if err := database.UpdateSubscription(existing); err != nil {
		return nil, false, fmt.Errorf("failed to update subscription: %w", err)
	}
	s.notify(username, "Your AE Box subscription was updated",
		"Hi,\n\nYour subscription details were updated.")
	return existing, false, nil
}

// applyFields copies the supplied fields onto the record
func applyFields(subscription *models.Subscription, fields SubscriptionFields) {
	if fields.SubscriptionType != nil {
		subscription.SubscriptionType = *fields.SubscriptionType
	}
	if fields.Status != nil {
		subscription.Status = *fields.Status
	}
	if fields.ExpiryDate != nil {
		subscription.ExpiryDate = *fields.ExpiryDate
	}
	if fields.DeviceID != nil {
		subscription.DeviceID = *fields.DeviceID
	}
}

// Delete removes the record for username
func (s *SubscriptionService) Delete(username string) error {
	rows, err := database.DeleteSubscriptionByUsername(username)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if rows == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

// HandleEvent dispatches a verified provider event. A nil return means the
// event is settled and the provider must not redeliver it; an error means
// the core state change did not land and redelivery is wanted.
func (s *SubscriptionService) HandleEvent(event *ProviderEvent) error {
	if event.CustomerID == "" {
		// Accept and drop: acknowledging spares us the provider's retry
		// storm on events we can never act on.
		logging.Infof("Event %s (%s) carries no customer, dropping", event.ID, event.Kind)
		return nil
	}

	username, err := s.provider.CustomerEmail(event.CustomerID)
	if err != nil {
		return fmt.Errorf("failed to resolve customer %s: %w", event.CustomerID, err)
	}
	if username == "" {
		logging.Infof("Customer %s has no email, dropping event %s", event.CustomerID, event.ID)
		return nil
	}

	switch event.Kind {
	case EventCheckoutCompleted:
		if event.SubscriptionID == "" {
			logging.Infof("Checkout event %s has no subscription reference, dropping", event.ID)
			return nil
		}
		detail, err := s.provider.SubscriptionDetail(event.SubscriptionID)
		if err != nil {
			return fmt.Errorf("failed to fetch subscription %s: %w", event.SubscriptionID, err)
		}
		return s.upsertFromProvider(detail, username, event.DeviceID, false)

	case EventInvoicePaid:
		if event.SubscriptionID == "" {
			logging.Infof("Invoice event %s has no subscription reference, dropping", event.ID)
			return nil
		}
		existing, found, err := s.lookup(username)
		if err != nil {
			return err
		}
		deviceID := event.DeviceID
		if deviceID == "" && found {
			deviceID = existing.DeviceID
		}
		detail, err := s.provider.SubscriptionDetail(event.SubscriptionID)
		if err != nil {
			return fmt.Errorf("failed to fetch subscription %s: %w", event.SubscriptionID, err)
		}
		return s.upsertFromProvider(detail, username, deviceID, IsRenewal(event.Kind, found))

	case EventSubscriptionUpdated:
		existing, found, err := s.lookup(username)
		if err != nil {
			return err
		}
		deviceID := ""
		if found {
			deviceID = existing.DeviceID
		}
		detail, err := s.provider.SubscriptionDetail(event.SubscriptionID)
		if err != nil {
			return fmt.Errorf("failed to fetch subscription %s: %w", event.SubscriptionID, err)
		}
		return s.upsertFromProvider(detail, username, deviceID, false)

	case EventSubscriptionDeleted:
		rows, err := database.DeleteSubscriptionByUsername(username)
		if err != nil {
			return fmt.Errorf("failed to delete subscription: %w", err)
		}
		if rows == 0 {
			logging.Infof("Subscription-deleted event %s for %s matched no record", event.ID, username)
		}
		return nil

	default:
		logging.Infof("Unhandled event kind %s (%s), acknowledging", event.Kind, event.ID)
		return nil
	}
}

// upsertFromProvider writes the authoritative record for username from a
// provider subscription detail and appends the payment audit entry. The
// audit write and the email are best-effort: their failure never fails the
// webhook response once the record itself landed.
func (s *SubscriptionService) upsertFromProvider(detail *PlanDetail, username, deviceID string, isRenewal bool) error {
	subType := models.SubscriptionTypeForInterval(detail.Interval)

	existing, found, err := s.lookup(username)
	if err != nil {
		return err
	}

	if found {
		existing.SubscriptionType = subType
		existing.Status = detail.Status
		existing.ExpiryDate = detail.CurrentPeriodEnd
		existing.DeviceID = deviceID
		if err := database.UpdateSubscription(existing); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}
	} else {
		subscription := &models.Subscription{
			Username:         username,
			SubscriptionType: subType,
			Status:           detail.Status,
			ExpiryDate:       detail.CurrentPeriodEnd,
			DeviceID:         deviceID,
		}
		if err := database.CreateSubscription(subscription); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
	}

	entry := &models.PaymentHistory{
		Username:         username,
		SubscriptionType: subType,
		PaymentDate:      time.Now(),
		Amount:           detail.Amount,
		Currency:         detail.Currency,
		TransactionID:    detail.TransactionID,
		IsRenewal:        isRenewal,
	}
	if err := database.CreatePaymentHistory(entry); err != nil {
		logging.Errorf("Failed to record payment history for %s: %v", username, err)
	}

	if isRenewal {
		s.notify(username, "Your AE Box subscription was renewed",
			fmt.Sprintf("Hi,\n\nYour %s subscription was renewed and runs until %s.",
				subType, detail.CurrentPeriodEnd.Format("2 Jan 2006")))
	} else {
		s.notify(username, "Your AE Box subscription is active",
			fmt.Sprintf("Hi,\n\nYour %s subscription is active until %s.",
				subType, detail.CurrentPeriodEnd.Format("2 Jan 2006")))
	}

	return nil
}

// lookup fetches the record for username, distinguishing absence from
// store failure
func (s *SubscriptionService) lookup(username string) (*models.Subscription, bool, error) {
	subscription, err := database.GetSubscriptionByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load subscription: %w", err)
	}
	return subscription, true, nil
}

// notify sends a best-effort email
func (s *SubscriptionService) notify(to, subject, body string) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.Send(to, subject, body); err != nil {
		logging.Errorf("Failed to send notification to %s: %v", to, err)
	}
}
