package property

import (
	"context"
	"errors"
	"strings"

	"staybook/internal/app/dto"
	handlersupport "staybook/internal/app/handlers/support"
	"staybook/internal/app/queries"
	"staybook/internal/app/uow"
	domainproperty "staybook/internal/domain/property"
)

const (
	listAvailablePropertiesKey = "property.list.available"
	listHostPropertiesKey      = "property.list.host"
	getPropertyKey             = "property.get"
)

type ListAvailablePropertiesQuery struct{}

func (q ListAvailablePropertiesQuery) Key() string { return listAvailablePropertiesKey }

type ListAvailablePropertiesHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListAvailablePropertiesHandler) Handle(ctx context.Context, _ ListAvailablePropertiesQuery) (dto.PropertyCollection, error) {
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.PropertyCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	properties, err := unit.Properties().ListAvailable(execCtx)
	if err != nil {
		return dto.PropertyCollection{}, err
	}
	return mapCollection(properties), nil
}

type ListHostPropertiesQuery struct {
	HostID string
}

func (q ListHostPropertiesQuery) Key() string { return listHostPropertiesKey }

type ListHostPropertiesHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListHostPropertiesHandler) Handle(ctx context.Context, q ListHostPropertiesQuery) (dto.PropertyCollection, error) {
	hostID := strings.TrimSpace(q.HostID)
	if hostID == "" {
		return dto.PropertyCollection{}, errors.New("property: host id is required")
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.PropertyCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	properties, err := unit.Properties().ListByHost(execCtx, hostID)
	if err != nil {
		return dto.PropertyCollection{}, err
	}
	return mapCollection(properties), nil
}

type GetPropertyQuery struct {
	PropertyID string
}

func (q GetPropertyQuery) Key() string { return getPropertyKey }

type GetPropertyHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetPropertyHandler) Handle(ctx context.Context, q GetPropertyQuery) (dto.PropertySummary, error) {
	id := strings.TrimSpace(q.PropertyID)
	if id == "" {
		return dto.PropertySummary{}, errors.New("property: id is required")
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.PropertySummary{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	prop, err := unit.Properties().ByID(execCtx, domainproperty.PropertyID(id))
	if err != nil {
		return dto.PropertySummary{}, err
	}
	return dto.MapPropertySummary(prop), nil
}

func mapCollection(properties []*domainproperty.Property) dto.PropertyCollection {
	items := make([]dto.PropertySummary, 0, len(properties))
	for _, p := range properties {
		items = append(items, dto.MapPropertySummary(p))
	}
	return dto.PropertyCollection{Items: items}
}

var _ queries.Handler[ListAvailablePropertiesQuery, dto.PropertyCollection] = (*ListAvailablePropertiesHandler)(nil)
var _ queries.Handler[ListHostPropertiesQuery, dto.PropertyCollection] = (*ListHostPropertiesHandler)(nil)
var _ queries.Handler[GetPropertyQuery, dto.PropertySummary] = (*GetPropertyHandler)(nil)
