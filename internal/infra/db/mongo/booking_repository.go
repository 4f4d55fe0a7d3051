package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "staybook/internal/domain/booking"
	domainproperty "staybook/internal/domain/property"
	domainrange "staybook/internal/domain/shared/daterange"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	col := db.Collection("agg_booking")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "property_id", Value: 1}, {Key: "status", Value: 1}, {Key: "range.start", Value: 1}},
	})
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{Keys: bson.D{{Key: "client_id", Value: 1}}})
	return &BookingRepository{col: col}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domainbooking.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) ListByClient(ctx context.Context, clientID string) ([]*domainbooking.Booking, error) {
	return r.list(ctx, bson.M{"client_id": clientID})
}

func (r *BookingRepository) ListByProperty(ctx context.Context, propertyID domainproperty.PropertyID) ([]*domainbooking.Booking, error) {
	return r.list(ctx, bson.M{"property_id": string(propertyID)})
}

// AcceptedOverlapping runs the conflict predicate inside Mongo: an accepted
// booking conflicts when its start is on or before the requested end AND its
// end is on or after the requested start. Both comparisons are inclusive, so
// a stay ending the day another begins still collides.
func (r *BookingRepository) AcceptedOverlapping(ctx context.Context, propertyID domainproperty.PropertyID, dr domainrange.DateRange) ([]*domainbooking.Booking, error) {
	filter := bson.M{
		"property_id": string(propertyID),
		"status":      string(domainbooking.StatusAccepted),
		"range.start": bson.M{"$lte": dr.End.UnixMilli()},
		"range.end":   bson.M{"$gte": dr.Start.UnixMilli()},
	}
	return r.list(ctx, filter)
}

func (r *BookingRepository) list(ctx context.Context, filter bson.M) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainbooking.Booking
	for cur.Next(ctx) {
		var doc bookingDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

type bookingDocument struct {
	ID              string        `bson:"_id"`
	PropertyID      string        `bson:"property_id"`
	ClientID        string        `bson:"client_id"`
	Range           rangeDocument `bson:"range"`
	TotalPriceCents int64         `bson:"total_price_cents"`
	Status          string        `bson:"status"`
	CreatedAt       int64         `bson:"created_at"`
	UpdatedAt       int64         `bson:"updated_at"`
	Version         int64         `bson:"version"`
}

type rangeDocument struct {
	Start int64 `bson:"start"`
	End   int64 `bson:"end"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:              string(b.ID),
		PropertyID:      string(b.PropertyID),
		ClientID:        b.ClientID,
		Range:           rangeDocument{Start: b.Range.Start.UnixMilli(), End: b.Range.End.UnixMilli()},
		TotalPriceCents: b.TotalPriceCents,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt.UnixMilli(),
		UpdatedAt:       b.UpdatedAt.UnixMilli(),
		Version:         b.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	return &domainbooking.Booking{
		ID:              domainbooking.BookingID(d.ID),
		PropertyID:      domainproperty.PropertyID(d.PropertyID),
		ClientID:        d.ClientID,
		Range:           domainrange.DateRange{Start: timestampToTime(d.Range.Start), End: timestampToTime(d.Range.End)},
		TotalPriceCents: d.TotalPriceCents,
		Status:          domainbooking.Status(d.Status),
		CreatedAt:       timestampToTime(d.CreatedAt),
		UpdatedAt:       timestampToTime(d.UpdatedAt),
		Version:         d.Version,
	}
}
