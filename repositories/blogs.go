package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-admin/models"
)

// ErrNotFound is returned when a single-record lookup matches nothing.
var ErrNotFound = errors.New("record not found")

// ListOptions controls pagination, ordering and projection for Find.
type ListOptions struct {
	Page     int
	PageSize int
	Sort     bson.D
	Select   []string
}

type BlogRepository struct {
	col *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{col: db.Collection("blogs")}
}

// Insert stores a new blog document and returns it with timestamps and the
// generated ObjectID filled in. Duplicate slug errors pass through so the
// caller can map them (mongo.IsDuplicateKeyError).
func (r *BlogRepository) Insert(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return b, nil
}

// InsertMany stores a batch of blog documents in one call.
func (r *BlogRepository) InsertMany(ctx context.Context, blogs []*models.Blog) (int64, error) {
	now := time.Now()
	docs := make([]interface{}, 0, len(blogs))
	for _, b := range blogs {
		b.CreatedAt = now
		b.UpdatedAt = now
		docs = append(docs, b)
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return int64(len(res.InsertedIDs)), nil
}

// FindByID returns a single blog by its ObjectID.
func (r *BlogRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	var b models.Blog
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Find returns one page of blogs matching filter plus the total match count.
func (r *BlogRepository) Find(ctx context.Context, filter bson.M, lo ListOptions) ([]models.Blog, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if lo.Page < 1 {
		lo.Page = 1
	}
	if lo.PageSize < 1 {
		lo.PageSize = 20
	}

	findOpts := options.Find().
		SetSkip(int64((lo.Page - 1) * lo.PageSize)).
		SetLimit(int64(lo.PageSize))
	if len(lo.Sort) > 0 {
		findOpts.SetSort(lo.Sort)
	} else {
		findOpts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}
	if len(lo.Select) > 0 {
		proj := bson.M{}
		for _, f := range lo.Select {
			proj[f] = 1
		}
		findOpts.SetProjection(proj)
	}

	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := []models.Blog{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Count returns the number of documents matching filter without decoding any.
func (r *BlogRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return r.col.CountDocuments(ctx, filter)
}

// UpdateByID applies set to one document and returns the updated record.
func (r *BlogRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Blog, error) {
	set["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Blog
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// UpdateMany applies set to every document matching filter and returns the
// modified count.
func (r *BlogRepository) UpdateMany(ctx context.Context, filter bson.M, set bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	set["updated_at"] = time.Now()

	res, err := r.col.UpdateMany(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// SoftDeleteByID flags one document as deleted without removing it.
func (r *BlogRepository) SoftDeleteByID(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.Blog, error) {
	return r.UpdateByID(ctx, id, bson.M{"is_deleted": true, "updated_by": updatedBy})
}

// SoftDeleteMany flags every document in ids as deleted.
func (r *BlogRepository) SoftDeleteMany(ctx context.Context, ids []primitive.ObjectID, updatedBy string) (int64, error) {
	return r.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"is_deleted": true, "updated_by": updatedBy},
	)
}

// DeleteByID permanently removes one document and returns what was deleted.
func (r *BlogRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	var deleted models.Blog
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &deleted, nil
}

// DeleteMany permanently removes every document in ids.
func (r *BlogRepository) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
