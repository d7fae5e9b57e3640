package user

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/redmonkez12/profile-directory/internal/apperror"
	"github.com/redmonkez12/profile-directory/internal/database"
)

// MongoRepository stores user records as documents in one collection
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var doc database.UserDocument
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, wrapMongoError("failed to get user by email", err)
	}

	u := mapDocumentToModel(&doc)
	return &u, nil
}

func (r *MongoRepository) Insert(ctx context.Context, u *User) (string, error) {
	doc := mapModelToDocument(u)
	doc.ID = bson.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", mapMongoInsertError(err)
	}

	return doc.ID.Hex(), nil
}

func (r *MongoRepository) ListByNewest(ctx context.Context) ([]User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.D{}, "failed to list users", opts)
}

func (r *MongoRepository) Search(ctx context.Context, criteria SearchCriteria) ([]User, error) {
	if len(criteria.Conditions) == 0 {
		return []User{}, nil
	}
	return r.find(ctx, SearchFilter(criteria), "failed to search users")
}

func (r *MongoRepository) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return apperror.Unavailable(err)
	}
	return nil
}

func (r *MongoRepository) find(ctx context.Context, filter any, msg string, opts ...options.Lister[options.FindOptions]) ([]User, error) {
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapMongoError(msg, err)
	}

	var docs []database.UserDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapMongoError(msg, err)
	}

	users := make([]User, 0, len(docs))
	for i := range docs {
		users = append(users, mapDocumentToModel(&docs[i]))
	}
	return users, nil
}

// SearchFilter renders criteria as an $or of case-insensitive regex
// matches. A regex against the skills array matches if any element does.
func SearchFilter(criteria SearchCriteria) bson.M {
	or := bson.A{}
	for _, c := range criteria.Conditions {
		or = append(or, bson.M{
			string(c.Field): bson.Regex{Pattern: c.RegexPattern(), Options: "i"},
		})
	}
	return bson.M{"$or": or}
}

func wrapMongoError(msg string, err error) error {
	if database.IsMongoUnavailable(err) {
		return apperror.Unavailable(err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func mapMongoInsertError(err error) error {
	if database.IsMongoDuplicateKey(err) {
		return ErrDuplicateEmail
	}
	return wrapMongoError("failed to create user", err)
}

func mapModelToDocument(u *User) *database.UserDocument {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}

	return &database.UserDocument{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		City:         u.City,
		Skills:       skills,
		Experience:   u.Experience,
		Portfolio:    u.Portfolio,
		ProfilePic:   u.ProfilePic,
		CreatedAt:    u.CreatedAt,
	}
}

func mapDocumentToModel(doc *database.UserDocument) User {
	return User{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		City:         doc.City,
		Skills:       doc.Skills,
		Experience:   doc.Experience,
		Portfolio:    doc.Portfolio,
		ProfilePic:   doc.ProfilePic,
		CreatedAt:    doc.CreatedAt,
	}
}

var _ Repository = (*MongoRepository)(nil)
