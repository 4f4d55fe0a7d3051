package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainproperty "staybook/internal/domain/property"
)

type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	col := db.Collection("agg_property")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{Keys: bson.D{{Key: "host_id", Value: 1}}})
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{Keys: bson.D{{Key: "available", Value: 1}}})
	return &PropertyRepository{col: col}
}

func (r *PropertyRepository) ByID(ctx context.Context, id domainproperty.PropertyID) (*domainproperty.Property, error) {
	var doc propertyDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domainproperty.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	doc := newPropertyDocument(p)
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

func (r *PropertyRepository) ListAvailable(ctx context.Context) ([]*domainproperty.Property, error) {
	return r.list(ctx, bson.M{"available": true})
}

func (r *PropertyRepository) ListByHost(ctx context.Context, hostID string) ([]*domainproperty.Property, error) {
	return r.list(ctx, bson.M{"host_id": hostID})
}

func (r *PropertyRepository) list(ctx context.Context, filter bson.M) ([]*domainproperty.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainproperty.Property
	for cur.Next(ctx) {
		var doc propertyDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

type propertyDocument struct {
	ID                 string `bson:"_id"`
	HostID             string `bson:"host_id"`
	Title              string `bson:"title"`
	Description        string `bson:"description"`
	PricePerNightCents int64  `bson:"price_per_night_cents"`
	Location           string `bson:"location"`
	ImageURL           string `bson:"image_url"`
	Available          bool   `bson:"available"`
	CreatedAt          int64  `bson:"created_at"`
	UpdatedAt          int64  `bson:"updated_at"`
}

func newPropertyDocument(p *domainproperty.Property) propertyDocument {
	return propertyDocument{
		ID:                 string(p.ID),
		HostID:             p.HostID,
		Title:              p.Title,
		Description:        p.Description,
		PricePerNightCents: p.PricePerNightCents,
		Location:           p.Location,
		ImageURL:           p.ImageURL,
		Available:          p.Available,
		CreatedAt:          p.CreatedAt.UnixMilli(),
		UpdatedAt:          p.UpdatedAt.UnixMilli(),
	}
}

func (d propertyDocument) toAggregate() *domainproperty.Property {
	return &domainproperty.Property{
		ID:                 domainproperty.PropertyID(d.ID),
		HostID:             d.HostID,
		Title:              d.Title,
		Description:        d.Description,
		PricePerNightCents: d.PricePerNightCents,
		Location:           d.Location,
		ImageURL:           d.ImageURL,
		Available:          d.Available,
		CreatedAt:          timestampToTime(d.CreatedAt),
		UpdatedAt:          timestampToTime(d.UpdatedAt),
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
