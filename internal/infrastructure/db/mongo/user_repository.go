package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ucetportal/campus-api/internal/core/domain"
)

const (
	usersCollection    = "users"
	profilesCollection = "profiles"
)

// UserRepository implements ports.UserRepository on MongoDB. Accounts live in
// the users collection, role profiles in profiles, linked by user_id.
type UserRepository struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"created_at"`
}

type mongoProfile struct {
	UserID         primitive.ObjectID `bson:"user_id"`
	Role           string             `bson:"role"`
	EnrollmentYear int                `bson:"enrollment_year,omitempty"`
	Major          string             `bson:"major,omitempty"`
	GraduationYear int                `bson:"graduation_year,omitempty"`
	CurrentJob     string             `bson:"current_job,omitempty"`
	Department     string             `bson:"department,omitempty"`
}

// EnsureIndexes creates the unique indexes on username and email. These are
// the final arbiter for concurrent registrations; the service's pre-check is
// advisory only.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.db.Collection(usersCollection).Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts the user and its role profile inside one session
// transaction, so a crash between the two writes cannot leave an account
// without a profile. A unique-index collision maps to domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User, profile *domain.Profile) (*domain.User, error) {
	userID := primitive.NewObjectID()
	doc := mongoUser{
		ID:           userID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt.UTC(),
	}
	profileDoc := mongoProfile{
		UserID:         userID,
		Role:           string(profile.Role),
		EnrollmentYear: profile.EnrollmentYear,
		Major:          profile.Major,
		GraduationYear: profile.GraduationYear,
		CurrentJob:     profile.CurrentJob,
		Department:     profile.Department,
	}

	sess, err := r.db.Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("insert user: start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.db.Collection(usersCollection).InsertOne(sc, doc); err != nil {
			return nil, err
		}
		if _, err := r.db.Collection(profilesCollection).InsertOne(sc, profileDoc); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = userID.Hex()
	return &created, nil
}

// FindByIdentifier matches the identifier against username or email.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": identifier},
	}}
	return r.findOne(ctx, filter)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// List returns all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.db.Collection(usersCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("list users: decode: %w", err)
		}
		users = append(users, mu.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list users: cursor: %w", err)
	}
	return users, nil
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Role:         domain.Role(mu.Role),
		CreatedAt:    mu.CreatedAt,
	}
}
