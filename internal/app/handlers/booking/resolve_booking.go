package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/outbox"
	"staybook/internal/app/policies"
	"staybook/internal/app/uow"
	domainbooking "staybook/internal/domain/booking"
)

const resolveBookingKey = "booking.resolve"

const (
	clientAcceptedMessage = "Your booking request was accepted by the host."
	clientRejectedMessage = "Your booking request was rejected by the host."
)

type ResolveBookingCommand struct {
	HostID    string
	BookingID string
	Target    domainbooking.Status
}

func (c ResolveBookingCommand) Key() string { return resolveBookingKey }

type ResolveBookingResult struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

// ResolveBookingHandler flips a pending booking to accepted or rejected.
// It must run inside the transaction middleware: acceptance re-runs the
// inclusive overlap check against other accepted bookings before the flip,
// so two overlapping pending requests can never both end up accepted.
// Only the host owning the booking's property may resolve it.
type ResolveBookingHandler struct {
	Notifier policies.Notifier
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
	Logger   *slog.Logger
}

func (h *ResolveBookingHandler) Handle(ctx context.Context, cmd ResolveBookingCommand) (*ResolveBookingResult, error) {
	hostID := strings.TrimSpace(cmd.HostID)
	if hostID == "" {
		return nil, errors.New("booking: host id is required")
	}
	bookingID := strings.TrimSpace(cmd.BookingID)
	if bookingID == "" {
		return nil, errors.New("booking: booking id is required")
	}
	if cmd.Target != domainbooking.StatusAccepted && cmd.Target != domainbooking.StatusRejected {
		return nil, ErrInvalidTargetStatus
	}
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}

	b, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(bookingID))
	if err != nil {
		return nil, err
	}
	prop, err := unit.Properties().ByID(ctx, b.PropertyID)
	if err != nil {
		return nil, err
	}
	if !prop.OwnedBy(hostID) {
		return nil, ErrNotPropertyOwner
	}

	now := time.Now().UTC()
	if cmd.Target == domainbooking.StatusAccepted {
		conflicts, err := unit.Bookings().AcceptedOverlapping(ctx, b.PropertyID, b.Range)
		if err != nil {
			return nil, err
		}
		conflict := &ConflictError{}
		for _, other := range conflicts {
			if other.ID == b.ID {
				continue
			}
			conflict.Ranges = append(conflict.Ranges, other.Range)
		}
		if len(conflict.Ranges) > 0 {
			return nil, conflict
		}
		if err := b.Accept(now); err != nil {
			return nil, err
		}
	} else {
		if err := b.Reject(now); err != nil {
			return nil, err
		}
	}

	if err := unit.Bookings().Save(ctx, b); err != nil {
		return nil, err
	}

	pending := b.PendingEvents()
	b.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), pending); err != nil {
		return nil, err
	}

	h.notifyClient(ctx, b)

	if h.Logger != nil {
		h.Logger.Info("booking resolved", "booking_id", b.ID, "host_id", hostID, "status", b.Status)
	}

	return &ResolveBookingResult{BookingID: string(b.ID), Status: string(b.Status)}, nil
}

func (h *ResolveBookingHandler) notifyClient(ctx context.Context, b *domainbooking.Booking) {
	if h.Notifier == nil {
		return
	}
	message := clientRejectedMessage
	if b.Status == domainbooking.StatusAccepted {
		message = clientAcceptedMessage
	}
	if err := h.Notifier.Send(ctx, b.ClientID, message); err != nil && h.Logger != nil {
		h.Logger.Error("client notification dispatch failed", "booking_id", b.ID, "client_id", b.ClientID, "error", err)
	}
}

func (h *ResolveBookingHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[ResolveBookingCommand, *ResolveBookingResult] = (*ResolveBookingHandler)(nil)
