// Package storage defines the persistence surface consumed by the API
// layer. The postgres subpackage provides the production implementation;
// handler tests substitute in-memory stubs.
package storage

import (
	"context"

	"github.com/planora/server/internal/domain/catering"
	"github.com/planora/server/internal/domain/coupons"
	"github.com/planora/server/internal/domain/decorations"
	"github.com/planora/server/internal/domain/escrow"
	"github.com/planora/server/internal/domain/events"
	"github.com/planora/server/internal/domain/guests"
	"github.com/planora/server/internal/domain/messages"
	"github.com/planora/server/internal/domain/notifications"
	"github.com/planora/server/internal/domain/tickets"
	"github.com/planora/server/internal/domain/vendors"
)

// Repository aggregates the per-entity repositories behind one handle.
type Repository interface {
	Events() events.Repository
	Guests() guests.Repository
	Vendors() vendors.Repository
	Catering() catering.Repository
	Decorations() decorations.Repository
	Tickets() tickets.Repository
	Coupons() coupons.Repository
	Messages() messages.Repository
	Notifications() notifications.Repository
	Escrow() escrow.Repository

	Ping(ctx context.Context) error
}
