package mongostorage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/twofactor/svc/twofactor"
)

// DefaultCollection holds the user documents.
const DefaultCollection = "users"

// Storage keeps users in a MongoDB collection. It implements
// twofactor.Storage.
type Storage struct {
	coll *mongo.Collection
}

func New(db *mongo.Database, collection string) *Storage {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Storage{coll: db.Collection(collection)}
}

// EnsureIndexes creates the unique e-mail index.
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	return err
}

// CreateUser inserts a user with no two-factor credential.
func (s *Storage) CreateUser(ctx context.Context, id uuid.UUID, email string) (*twofactor.User, error) {
	doc := userDocument{
		ID:       id.String(),
		Email:    email,
		Activity: activity{LastUpdated: time.Now().UTC().Truncate(time.Millisecond)},
		Version:  1,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, twofactor.ErrUserExists
		}
		return nil, err
	}
	return doc.toUser()
}

func (s *Storage) GetUserByID(ctx context.Context, id uuid.UUID) (*twofactor.User, error) {
	var doc userDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, twofactor.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toUser()
}

// UpdateCredential replaces enhancedSecurity when the document still
// carries expectedVersion.
func (s *Storage) UpdateCredential(ctx context.Context, id uuid.UUID, expectedVersion int64, cred twofactor.Credential, at time.Time) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id.String(), "version": expectedVersion},
		bson.M{
			"$set": bson.M{
				"enhancedSecurity":      fromCredential(cred),
				"activity.last_updated": at,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 1 {
		return nil
	}

	n, err := s.coll.CountDocuments(ctx, bson.M{"_id": id.String()}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return twofactor.ErrUserNotFound
	}
	return twofactor.ErrVersionConflict
}
