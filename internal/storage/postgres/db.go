package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

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
	"github.com/planora/server/internal/storage"
)

var _ storage.Repository = (*Repository)(nil)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres repository: pool is nil")
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Events() events.Repository           { return &EventRepository{pool: r.pool} }
func (r *Repository) Guests() guests.Repository           { return &GuestRepository{pool: r.pool} }
func (r *Repository) Vendors() vendors.Repository         { return &VendorRepository{pool: r.pool} }
func (r *Repository) Catering() catering.Repository       { return &CateringRepository{pool: r.pool} }
func (r *Repository) Decorations() decorations.Repository { return &DecorationRepository{pool: r.pool} }
func (r *Repository) Tickets() tickets.Repository         { return &TicketRepository{pool: r.pool} }
func (r *Repository) Coupons() coupons.Repository         { return &CouponRepository{pool: r.pool} }
func (r *Repository) Messages() messages.Repository       { return &MessageRepository{pool: r.pool} }
func (r *Repository) Notifications() notifications.Repository {
	return &NotificationRepository{pool: r.pool}
}
func (r *Repository) Escrow() escrow.Repository { return &EscrowRepository{pool: r.pool} }

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
