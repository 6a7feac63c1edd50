package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ucetportal/campus-api/internal/core/domain"
)

// ContentRepository implements ports.ContentRepository for one collection.
// The payload lives under bodyField ("content" for news, "link" for
// resources), mirroring the portal's original schema.
type ContentRepository struct {
	coll      *mongo.Collection
	bodyField string
}

// NewNewsRepository returns the repository backing the news collection.
func NewNewsRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{coll: db.Collection(domain.CollectionNews), bodyField: "content"}
}

// NewResourceRepository returns the repository backing the resources collection.
func NewResourceRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{coll: db.Collection(domain.CollectionResources), bodyField: "link"}
}

type mongoContent struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Content       string             `bson:"content,omitempty"`
	Link          string             `bson:"link,omitempty"`
	CreatedBy     string             `bson:"created_by,omitempty"`
	CreatedByName string             `bson:"created_by_name,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (m *mongoContent) body() string {
	if m.Content != "" {
		return m.Content
	}
	return m.Link
}

// List returns every record, newest first.
func (r *ContentRepository) List(ctx context.Context) ([]*domain.ContentRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.coll.Name(), err)
	}
	defer cur.Close(ctx)

	records := []*domain.ContentRecord{}
	for cur.Next(ctx) {
		var mc mongoContent
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("list %s: decode: %w", r.coll.Name(), err)
		}
		records = append(records, &domain.ContentRecord{
			ID:            mc.ID.Hex(),
			Title:         mc.Title,
			Body:          mc.body(),
			CreatedBy:     mc.CreatedBy,
			CreatedByName: mc.CreatedByName,
			CreatedAt:     mc.CreatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list %s: cursor: %w", r.coll.Name(), err)
	}
	return records, nil
}

// Create inserts a new record; the store assigns id and creation time.
func (r *ContentRepository) Create(ctx context.Context, rec *domain.ContentRecord) (*domain.ContentRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoContent{
		ID:            primitive.NewObjectID(),
		Title:         rec.Title,
		CreatedBy:     rec.CreatedBy,
		CreatedByName: rec.CreatedByName,
		CreatedAt:     time.Now().UTC(),
	}
	if r.bodyField == "link" {
		doc.Link = rec.Body
	} else {
		doc.Content = rec.Body
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert %s: %w", r.coll.Name(), err)
	}

	created := *rec
	created.ID = doc.ID.Hex()
	created.CreatedAt = doc.CreatedAt
	return &created, nil
}

// Update rewrites title and payload. Zero matched documents means the record
// does not exist.
func (r *ContentRepository) Update(ctx context.Context, id, title, body string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRecordNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{"title": title, r.bodyField: body},
	})
	if err != nil {
		return fmt.Errorf("update %s: %w", r.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// Delete removes a record. Zero deleted documents means it did not exist.
func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRecordNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}
