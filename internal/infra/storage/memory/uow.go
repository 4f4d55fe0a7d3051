package memory

import (
	"context"

	"staybook/internal/app/uow"
	domainbooking "staybook/internal/domain/booking"
	domainnotification "staybook/internal/domain/notification"
	domainprofile "staybook/internal/domain/profile"
	domainproperty "staybook/internal/domain/property"
)

// Factory hands out units over shared in-memory repositories. Commit and
// Rollback are no-ops: there is nothing transactional to undo here.
type Factory struct {
	PropertyRepo     domainproperty.Repository
	BookingRepo      domainbooking.Repository
	ProfileRepo      domainprofile.Repository
	NotificationRepo domainnotification.Repository
}

func NewFactory() *Factory {
	return &Factory{
		PropertyRepo:     NewPropertyRepository(),
		BookingRepo:      NewBookingRepository(),
		ProfileRepo:      NewProfileRepository(),
		NotificationRepo: NewNotificationRepository(),
	}
}

func (f *Factory) Begin(_ context.Context, _ uow.TxOptions) (uow.UnitOfWork, error) {
	return &Unit{factory: f}, nil
}

type Unit struct {
	factory *Factory
}

func (u *Unit) Properties() domainproperty.Repository {
	return u.factory.PropertyRepo
}

func (u *Unit) Bookings() domainbooking.Repository {
	return u.factory.BookingRepo
}

func (u *Unit) Profiles() domainprofile.Repository {
	return u.factory.ProfileRepo
}

func (u *Unit) Notifications() domainnotification.Repository {
	return u.factory.NotificationRepo
}

func (u *Unit) Commit(context.Context) error {
	return nil
}

func (u *Unit) Rollback(context.Context) error {
	return nil
}
