package property

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/uow"
	domainproperty "staybook/internal/domain/property"
)

const (
	createPropertyKey     = "property.create"
	toggleAvailabilityKey = "property.toggle"
)

type CreatePropertyCommand struct {
	CommandID          string
	HostID             string
	Title              string
	Description        string
	PricePerNightCents int64
	Location           string
	ImageURL           string
}

func (c CreatePropertyCommand) Key() string { return createPropertyKey }

type CreatePropertyResult struct {
	PropertyID string `json:"property_id"`
}

type CreatePropertyHandler struct {
	Logger *slog.Logger
}

func (h *CreatePropertyHandler) Handle(ctx context.Context, cmd CreatePropertyCommand) (*CreatePropertyResult, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	prop, err := domainproperty.NewProperty(domainproperty.CreateParams{
		ID:                 domainproperty.PropertyID(cmd.CommandID),
		HostID:             cmd.HostID,
		Title:              cmd.Title,
		Description:        cmd.Description,
		PricePerNightCents: cmd.PricePerNightCents,
		Location:           cmd.Location,
		ImageURL:           cmd.ImageURL,
		CreatedAt:          time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if err := unit.Properties().Save(ctx, prop); err != nil {
		return nil, err
	}
	if h.Logger != nil {
		h.Logger.Info("property created", "property_id", prop.ID, "host_id", prop.HostID)
	}
	return &CreatePropertyResult{PropertyID: string(prop.ID)}, nil
}

type ToggleAvailabilityCommand struct {
	PropertyID string
	Available  bool
}

func (c ToggleAvailabilityCommand) Key() string { return toggleAvailabilityKey }

type ToggleAvailabilityResult struct {
	PropertyID string `json:"property_id"`
	Available  bool   `json:"available"`
}

// ToggleAvailabilityHandler overwrites the availability flag by identifier
// match. Existing bookings are untouched: the flag only gates new
// submissions.
type ToggleAvailabilityHandler struct {
	Logger *slog.Logger
}

func (h *ToggleAvailabilityHandler) Handle(ctx context.Context, cmd ToggleAvailabilityCommand) (*ToggleAvailabilityResult, error) {
	id := strings.TrimSpace(cmd.PropertyID)
	if id == "" {
		return nil, errors.New("property: id is required")
	}
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	prop, err := unit.Properties().ByID(ctx, domainproperty.PropertyID(id))
	if err != nil {
		return nil, err
	}
	prop.SetAvailable(cmd.Available, time.Now())
	if err := unit.Properties().Save(ctx, prop); err != nil {
		return nil, err
	}
	return &ToggleAvailabilityResult{PropertyID: string(prop.ID), Available: prop.Available}, nil
}

var _ commands.Handler[CreatePropertyCommand, *CreatePropertyResult] = (*CreatePropertyHandler)(nil)
var _ commands.Handler[ToggleAvailabilityCommand, *ToggleAvailabilityResult] = (*ToggleAvailabilityHandler)(nil)
