package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/launchdeck/internal/db"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
	"gorm.io/gorm/clause"
)

const stripeBodyLimit = 65536

// StripeWebhook verifies and applies billing events. The handler is mounted
// outside the session-auth group; Stripe authenticates with its signature
// header.
func (a *API) StripeWebhook(endpointSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if endpointSecret == "" {
			respondError(c, http.StatusInternalServerError, "stripe webhook secret not configured")
			return
		}

		payload, err := io.ReadAll(io.LimitReader(c.Request.Body, stripeBodyLimit))
		if err != nil {
			respondError(c, http.StatusServiceUnavailable, "failed to read request body")
			return
		}

		event, err := webhook.ConstructEventWithOptions(
			payload,
			c.GetHeader("Stripe-Signature"),
			endpointSecret,
			webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
		)
		if err != nil {
			respondError(c, http.StatusBadRequest, "signature verification failed")
			return
		}

		switch event.Type {
		case "checkout.session.completed":
			var session stripe.CheckoutSession
			if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
				respondError(c, http.StatusBadRequest, "failed to parse checkout session")
				return
			}
			if err := a.applyCheckoutCompleted(&session); err != nil {
				respondError(c, http.StatusInternalServerError, err.Error())
				return
			}

		case "customer.subscription.updated", "customer.subscription.deleted":
			var sub stripe.Subscription
			if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
				respondError(c, http.StatusBadRequest, "failed to parse subscription")
				return
			}
			if err := a.applySubscriptionState(&sub); err != nil {
				respondError(c, http.StatusInternalServerError, err.Error())
				return
			}

		default:
			// Unhandled event types are acknowledged so Stripe stops retrying.
			log.Printf("ignoring stripe event %s", event.Type)
		}

		c.JSON(http.StatusOK, gin.H{"status": "received"})
	}
}

func (a *API) applyCheckoutCompleted(session *stripe.CheckoutSession) error {
	if session.Subscription == nil || session.Customer == nil {
		return nil
	}

	record := db.Subscription{
		CustomerID:     session.Customer.ID,
		SubscriptionID: session.Subscription.ID,
		Status:         "active",
	}
	if session.ClientReferenceID != "" {
		record.UserID = parseUserRef(session.ClientReferenceID)
	}

	return a.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subscription_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"customer_id", "status", "user_id", "updated_at"}),
	}).Create(&record).Error
}

func (a *API) applySubscriptionState(sub *stripe.Subscription) error {
	record := db.Subscription{
		SubscriptionID:   sub.ID,
		Status:           string(sub.Status),
		CurrentPeriodEnd: time.Unix(sub.CurrentPeriodEnd, 0),
	}
	if sub.Customer != nil {
		record.CustomerID = sub.Customer.ID
	}
	if len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		record.Plan = sub.Items.Data[0].Price.ID
	}

	return a.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subscription_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"customer_id", "status", "plan", "current_period_end", "updated_at"}),
	}).Create(&record).Error
}

func parseUserRef(ref string) uint {
	var id uint
	for _, r := range ref {
		if r < '0' || r > '9' {
			return 0
		}
		id = id*10 + uint(r-'0')
	}
	return id
}
