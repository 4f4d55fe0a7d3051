package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staybook/internal/app/uow"
	domainbooking "staybook/internal/domain/booking"
	domainnotification "staybook/internal/domain/notification"
	domainprofile "staybook/internal/domain/profile"
	domainproperty "staybook/internal/domain/property"
)

// Factory wires Mongo transactions into the generic UnitOfWork interface.
type Factory struct {
	DB *mongo.Database

	PropertyRepo     domainproperty.Repository
	BookingRepo      domainbooking.Repository
	ProfileRepo      domainprofile.Repository
	NotificationRepo domainnotification.Repository
}

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Begin starts a MongoDB session/transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().SetReadConcern(f.DB.ReadConcern()).SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		db:            f.DB,
		session:       session,
		properties:    f.PropertyRepo,
		bookings:      f.BookingRepo,
		profiles:      f.ProfileRepo,
		notifications: f.NotificationRepo,
	}, nil
}

type Unit struct {
	db      *mongo.Database
	session mongo.Session

	properties    domainproperty.Repository
	bookings      domainbooking.Repository
	profiles      domainprofile.Repository
	notifications domainnotification.Repository
}

func (u *Unit) Properties() domainproperty.Repository {
	return u.properties
}

func (u *Unit) Bookings() domainbooking.Repository {
	return u.bookings
}

func (u *Unit) Profiles() domainprofile.Repository {
	return u.profiles
}

func (u *Unit) Notifications() domainnotification.Repository {
	return u.notifications
}

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext ensures Mongo session is available in context for downstream repos.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}
