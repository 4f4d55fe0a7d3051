package booking

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"staybook/internal/app/dto"
	handlersupport "staybook/internal/app/handlers/support"
	"staybook/internal/app/queries"
	"staybook/internal/app/uow"
	domainproperty "staybook/internal/domain/property"
)

const (
	listClientBookingsKey  = "booking.list.client"
	listHostBookingsKey    = "booking.list.host"
	allStatusesFilterValue = "all"
)

type ListClientBookingsQuery struct {
	ClientID string
}

func (q ListClientBookingsQuery) Key() string { return listClientBookingsKey }

type ListClientBookingsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListClientBookingsHandler) Handle(ctx context.Context, q ListClientBookingsQuery) (dto.BookingCollection, error) {
	clientID := strings.TrimSpace(q.ClientID)
	if clientID == "" {
		return dto.BookingCollection{}, errors.New("booking: client id is required")
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	bookings, err := unit.Bookings().ListByClient(execCtx, clientID)
	if err != nil {
		return dto.BookingCollection{}, err
	}

	items := make([]dto.BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		prop, err := unit.Properties().ByID(execCtx, b.PropertyID)
		if err != nil && !errors.Is(err, domainproperty.ErrNotFound) {
			return dto.BookingCollection{}, err
		}
		items = append(items, dto.MapBookingSummary(b, prop))
	}

	sortNewestFirst(items)
	return dto.BookingCollection{Items: items}, nil
}

type ListHostBookingsQuery struct {
	HostID string
	Status string
}

func (q ListHostBookingsQuery) Key() string { return listHostBookingsKey }

type ListHostBookingsHandler struct {
	UoWFactory uow.UoWFactory
	Logger     *slog.Logger
}

func (h *ListHostBookingsHandler) Handle(ctx context.Context, q ListHostBookingsQuery) (dto.BookingCollection, error) {
	hostID := strings.TrimSpace(q.HostID)
	if hostID == "" {
		return dto.BookingCollection{}, errors.New("booking: host id is required")
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	properties, err := unit.Properties().ListByHost(execCtx, hostID)
	if err != nil {
		return dto.BookingCollection{}, err
	}

	statusFilter := strings.ToLower(strings.TrimSpace(q.Status))
	if statusFilter == "" {
		statusFilter = allStatusesFilterValue
	}
	allStatuses := statusFilter == allStatusesFilterValue

	items := make([]dto.BookingSummary, 0)
	for _, prop := range properties {
		bookings, err := unit.Bookings().ListByProperty(execCtx, prop.ID)
		if err != nil {
			return dto.BookingCollection{}, err
		}
		for _, b := range bookings {
			if !allStatuses && string(b.Status) != statusFilter {
				continue
			}
			items = append(items, dto.MapBookingSummary(b, prop))
		}
	}

	sortNewestFirst(items)

	if h.Logger != nil {
		h.Logger.Debug("host bookings listed", "host_id", hostID, "count", len(items), "status", statusFilter)
	}

	return dto.BookingCollection{Items: items}, nil
}

func sortNewestFirst(items []dto.BookingSummary) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

var _ queries.Handler[ListClientBookingsQuery, dto.BookingCollection] = (*ListClientBookingsHandler)(nil)
var _ queries.Handler[ListHostBookingsQuery, dto.BookingCollection] = (*ListHostBookingsHandler)(nil)
