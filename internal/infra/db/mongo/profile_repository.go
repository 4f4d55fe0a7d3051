package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainprofile "staybook/internal/domain/profile"
)

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection("agg_profile")}
}

func (r *ProfileRepository) ByID(ctx context.Context, id string) (*domainprofile.Profile, error) {
	var doc profileDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domainprofile.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

// Insert maps Mongo's duplicate key error onto the domain sentinel so the
// lazy-create path can tell a lost race apart from a real failure.
func (r *ProfileRepository) Insert(ctx context.Context, p *domainprofile.Profile) error {
	_, err := r.col.InsertOne(ctx, newProfileDocument(p))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainprofile.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ProfileRepository) Save(ctx context.Context, p *domainprofile.Profile) error {
	doc := newProfileDocument(p)
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

type profileDocument struct {
	ID        string `bson:"_id"`
	Email     string `bson:"email"`
	Name      string `bson:"name"`
	AvatarURL string `bson:"avatar_url"`
	Role      string `bson:"role"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func newProfileDocument(p *domainprofile.Profile) profileDocument {
	return profileDocument{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		AvatarURL: p.AvatarURL,
		Role:      string(p.Role),
		CreatedAt: p.CreatedAt.UnixMilli(),
		UpdatedAt: p.UpdatedAt.UnixMilli(),
	}
}

func (d profileDocument) toAggregate() *domainprofile.Profile {
	return &domainprofile.Profile{
		ID:        d.ID,
		Email:     d.Email,
		Name:      d.Name,
		AvatarURL: d.AvatarURL,
		Role:      domainprofile.Role(d.Role),
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
	}
}
