package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/middleware"
	"staybook/internal/app/outbox"
	"staybook/internal/app/policies"
	"staybook/internal/app/uow"
	domainbooking "staybook/internal/domain/booking"
	domainprofile "staybook/internal/domain/profile"
	domainproperty "staybook/internal/domain/property"
	domainrange "staybook/internal/domain/shared/daterange"
	"staybook/internal/infra/security"
)

const submitBookingKey = "booking.submit"

const hostRequestMessage = "New booking request received for your property."

type SubmitBookingCommand struct {
	CommandID       string
	PropertyID      string
	ClientID        string
	StartDate       time.Time
	EndDate         time.Time
	TotalPriceCents int64
	IdempotencyKeyV string
}

func (c SubmitBookingCommand) Key() string { return submitBookingKey }

func (c SubmitBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c SubmitBookingCommand) ResultPrototype() any { return &SubmitBookingResult{} }

type SubmitBookingResult struct {
	BookingID       string    `json:"booking_id"`
	PropertyID      string    `json:"property_id"`
	ClientID        string    `json:"client_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
}

// SubmitBookingHandler runs the admission pipeline: resolve the client's
// role, resolve the property, forbid self-booking, check accepted bookings
// for an inclusive date overlap, then insert the request as pending. The
// host notification afterwards is best effort and never unwinds the booking.
type SubmitBookingHandler struct {
	UoWFactory uow.UoWFactory
	Notifier   policies.Notifier
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Credential security.ServiceCredential
	Logger     *slog.Logger
}

var ErrUnitOfWorkRequired = errors.New("booking: unit of work required")

func (h *SubmitBookingHandler) Handle(ctx context.Context, cmd SubmitBookingCommand) (*SubmitBookingResult, error) {
	if err := h.Credential.Check(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cmd.PropertyID) == "" || strings.TrimSpace(cmd.ClientID) == "" ||
		cmd.StartDate.IsZero() || cmd.EndDate.IsZero() || cmd.TotalPriceCents == 0 {
		return nil, ErrMissingFields
	}
	dr, err := domainrange.New(cmd.StartDate, cmd.EndDate)
	if err != nil {
		return nil, err
	}

	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return nil, ErrUnitOfWorkRequired
		}
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return nil, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		managed = true
	}
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	client, err := unit.Profiles().ByID(ctx, cmd.ClientID)
	if err != nil {
		if errors.Is(err, domainprofile.ErrNotFound) {
			return nil, ErrClientNotAuthorized
		}
		return nil, err
	}
	if !client.IsClient() {
		return nil, ErrClientNotAuthorized
	}

	prop, err := unit.Properties().ByID(ctx, domainproperty.PropertyID(cmd.PropertyID))
	if err != nil {
		if errors.Is(err, domainproperty.ErrNotFound) {
			return nil, ErrPropertyUnavailable
		}
		return nil, err
	}
	if !prop.Available {
		return nil, ErrPropertyUnavailable
	}
	if prop.OwnedBy(cmd.ClientID) {
		return nil, ErrSelfBooking
	}

	conflicts, err := unit.Bookings().AcceptedOverlapping(ctx, prop.ID, dr)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		conflict := &ConflictError{}
		for _, b := range conflicts {
			conflict.Ranges = append(conflict.Ranges, b.Range)
		}
		return nil, conflict
	}

	now := time.Now().UTC()
	created, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:              domainbooking.BookingID(cmd.CommandID),
		PropertyID:      prop.ID,
		ClientID:        cmd.ClientID,
		Range:           dr,
		TotalPriceCents: cmd.TotalPriceCents,
		CreatedAt:       now,
	})
	if err != nil {
		return nil, err
	}

	if err := unit.Bookings().Save(ctx, created); err != nil {
		return nil, err
	}

	pending := created.PendingEvents()
	created.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), pending); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	h.notifyHost(ctx, prop.HostID, created)

	return &SubmitBookingResult{
		BookingID:       string(created.ID),
		PropertyID:      string(created.PropertyID),
		ClientID:        created.ClientID,
		StartDate:       created.Range.Start,
		EndDate:         created.Range.End,
		TotalPriceCents: created.TotalPriceCents,
		Status:          string(created.Status),
	}, nil
}

// notifyHost writes the "request received" inbox entry. The booking is the
// operation of record: a dispatch failure is logged and swallowed.
func (h *SubmitBookingHandler) notifyHost(ctx context.Context, hostID string, b *domainbooking.Booking) {
	if h.Notifier == nil {
		return
	}
	if err := h.Notifier.Send(ctx, hostID, hostRequestMessage); err != nil && h.Logger != nil {
		h.Logger.Error("host notification dispatch failed", "booking_id", b.ID, "host_id", hostID, "error", err)
	}
}

func (h *SubmitBookingHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[SubmitBookingCommand, *SubmitBookingResult] = (*SubmitBookingHandler)(nil)
var _ middleware.IdempotentCommand = (*SubmitBookingCommand)(nil)
