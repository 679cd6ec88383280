// Package billing abstrae la API de suscripciones (Stripe).
//
// La máquina de estados de billing vive en el proveedor; acá solo se consulta
// y se actualizan flags puntuales (cancel_at_period_end).
package billing

import (
	"context"
	"errors"
)

// ErrNoPendingCancel indica que el customer no tiene ninguna suscripción
// activa/trialing con cancelación programada.
var ErrNoPendingCancel = errors.New("billing: no pending-cancel subscription")

// Subscription es la vista mínima que la consola necesita.
type Subscription struct {
	ID                string
	Status            string // "active" | "trialing" | ...
	CancelAtPeriodEnd bool
}

// Customer es el resultado de un alta de customer + suscripción.
type Customer struct {
	CustomerID     string
	SubscriptionID string
}

// NewCustomerParams son los datos del alta (metadata viaja al dashboard).
type NewCustomerParams struct {
	Email      string
	Name       string
	SiteKey    string
	SiteName   string
	OwnerPhone string
}

// Billing es la interfaz contra el proveedor de suscripciones.
type Billing interface {
	// CreateCustomerWithSubscription da de alta el customer y su suscripción
	// al plan configurado.
	CreateCustomerWithSubscription(ctx context.Context, p NewCustomerParams) (*Customer, error)

	// FindPendingCancellation busca la primera suscripción del customer en
	// estado active|trialing con cancel_at_period_end. ErrNoPendingCancel si
	// no hay ninguna.
	FindPendingCancellation(ctx context.Context, customerID string) (*Subscription, error)

	// ResumeSubscription desprograma la cancelación (cancel_at_period_end=false).
	ResumeSubscription(ctx context.Context, subscriptionID string) error
}
