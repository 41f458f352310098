package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"blog-admin/models"
	"blog-admin/repositories"
	"blog-admin/schema"
)

// fakeStore records every call so tests can assert what reached the store.
type fakeStore struct {
	insertCalls     int
	insertManyCalls int
	findCalls       int
	countCalls      int
	updateCalls     int
	updateManyCalls int

	lastInserted   *models.Blog
	lastBatch      []*models.Blog
	lastFilter     bson.M
	lastSet        bson.M
	lastSoftIDs    []primitive.ObjectID
	lastDeletedIDs []primitive.ObjectID

	insertErr error
	updateErr error
	findItems []models.Blog
	findTotal int64
	countN    int64
}

func (f *fakeStore) Insert(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	f.insertCalls++
	f.lastInserted = b
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	b.ID = primitive.NewObjectID()
	return b, nil
}

func (f *fakeStore) InsertMany(ctx context.Context, blogs []*models.Blog) (int64, error) {
	f.insertManyCalls++
	f.lastBatch = blogs
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	return int64(len(blogs)), nil
}

func (f *fakeStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	return nil, repositories.ErrNotFound
}

func (f *fakeStore) Find(ctx context.Context, filter bson.M, lo repositories.ListOptions) ([]models.Blog, int64, error) {
	f.findCalls++
	f.lastFilter = filter
	return f.findItems, f.findTotal, nil
}

func (f *fakeStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	f.countCalls++
	f.lastFilter = filter
	return f.countN, nil
}

func (f *fakeStore) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Blog, error) {
	f.updateCalls++
	f.lastSet = set
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.Blog{ID: id}, nil
}

func (f *fakeStore) UpdateMany(ctx context.Context, filter bson.M, set bson.M) (int64, error) {
	f.updateManyCalls++
	f.lastFilter = filter
	f.lastSet = set
	return 2, nil
}

func (f *fakeStore) SoftDeleteByID(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.Blog, error) {
	f.updateCalls++
	f.lastSet = bson.M{"is_deleted": true, "updated_by": updatedBy}
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.Blog{ID: id, IsDeleted: true, UpdatedBy: updatedBy}, nil
}

func (f *fakeStore) SoftDeleteMany(ctx context.Context, ids []primitive.ObjectID, updatedBy string) (int64, error) {
	f.lastSoftIDs = ids
	return int64(len(ids)), nil
}

func (f *fakeStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.Blog{ID: id}, nil
}

func (f *fakeStore) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	f.lastDeletedIDs = ids
	return int64(len(ids)), nil
}

// fakeBus records published payloads.
type fakeBus struct {
	published []interface{}
}

func (f *fakeBus) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	f.published = append(f.published, payload)
	return nil
}

func (f *fakeBus) Close() {}

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func TestCreateInjectsAddedBy(t *testing.T) {
	store := &fakeStore{}
	bus := &fakeBus{}
	svc := NewBlogService(store, bus, "blog_events")

	created, err := svc.Create(context.Background(), "admin-42", &schema.BlogCreate{
		Title: "Go generics", Slug: "go-generics",
	})
	require.NoError(t, err)

	// addedBy is the authenticated user, nothing else
	assert.Equal(t, "admin-42", store.lastInserted.AddedBy)
	assert.True(t, created.IsActive, "is_active defaults to true")
	assert.Len(t, bus.published, 1)
}

func TestCreateValidationErrorSkipsStore(t *testing.T) {
	store := &fakeStore{}
	svc := NewBlogService(store, nil, "blog_events")

	_, err := svc.Create(context.Background(), "admin-42", &schema.BlogCreate{})
	require.Error(t, err)

	var verrs schema.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
	assert.Zero(t, store.insertCalls, "store must not be called on validation failure")
}

func TestCreateMapsDuplicateKey(t *testing.T) {
	store := &fakeStore{insertErr: duplicateKeyErr()}
	svc := NewBlogService(store, nil, "blog_events")

	_, err := svc.Create(context.Background(), "admin-42", &schema.BlogCreate{
		Title: "dup", Slug: "dup",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdateStripsClientAuditFields(t *testing.T) {
	store := &fakeStore{}
	svc := NewBlogService(store, nil, "blog_events")

	id := primitive.NewObjectID().Hex()
	_, err := svc.Update(context.Background(), "admin-7", id, &schema.BlogUpdate{
		Title: "new title", Slug: "new-slug",
	})
	require.NoError(t, err)

	assert.Equal(t, "admin-7", store.lastSet["updated_by"])
	_, hasAddedBy := store.lastSet["added_by"]
	assert.False(t, hasAddedBy, "added_by must never appear in an update set")
}

func TestPatchOnlySetsPresentFields(t *testing.T) {
	store := &fakeStore{}
	svc := NewBlogService(store, nil, "blog_events")

	title := "patched"
	id := primitive.NewObjectID().Hex()
	_, err := svc.Patch(context.Background(), "admin-7", id, &schema.BlogPatch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "patched", store.lastSet["title"])
	_, hasSlug := store.lastSet["slug"]
	assert.False(t, hasSlug)
	_, hasContent := store.lastSet["content"]
	assert.False(t, hasContent)
	assert.Equal(t, "admin-7", store.lastSet["updated_by"])
}

func TestGetRejectsInvalidObjectID(t *testing.T) {
	svc := NewBlogService(&fakeStore{}, nil, "blog_events")

	_, err := svc.Get(context.Background(), "not-an-objectid")
	var verrs schema.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestCountNeverFetchesDocuments(t *testing.T) {
	store := &fakeStore{countN: 7}
	svc := NewBlogService(store, nil, "blog_events")

	total, err := svc.Count(context.Background(), map[string]interface{}{"is_deleted": false})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Equal(t, 1, store.countCalls)
	assert.Zero(t, store.findCalls, "count path must not scan documents")
}

func TestSoftDeleteManyRejectsEmptyIDs(t *testing.T) {
	store := &fakeStore{}
	svc := NewBlogService(store, nil, "blog_events")

	_, err := svc.SoftDeleteMany(context.Background(), "admin-1", nil)
	assert.ErrorIs(t, err, ErrEmptyIDs)
	assert.Nil(t, store.lastSoftIDs, "store must not be reached")
}

func TestSoftDeleteManyRejectsInvalidIDs(t *testing.T) {
	store := &fakeStore{}
	svc := NewBlogService(store, nil, "blog_events")

	_, err := svc.SoftDeleteMany(context.Background(), "admin-1", []string{"nope"})
	var verrs schema.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
	assert.Nil(t, store.lastSoftIDs)
}

func TestBulkInsertRejectsEmptyData(t *testing.T) {
	store := &fakeStore{}
	svc := NewBlogService(store, nil, "blog_events")

	_, err := svc.BulkInsert(context.Background(), "admin-1", nil)
	assert.ErrorIs(t, err, ErrEmptyData)
	assert.Zero(t, store.insertManyCalls)
}

func TestBulkInsertInjectsAddedByPerItem(t *testing.T) {
	store := &fakeStore{}
	bus := &fakeBus{}
	svc := NewBlogService(store, bus, "blog_events")

	count, err := svc.BulkInsert(context.Background(), "admin-9", []schema.BlogCreate{
		{Title: "a", Slug: "a"},
		{Title: "b", Slug: "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	for _, b := range store.lastBatch {
		assert.Equal(t, "admin-9", b.AddedBy)
	}
	assert.Len(t, bus.published, 1)
}

func TestBulkUpdateInjectsUpdatedBy(t *testing.T) {
	store := &fakeStore{}
	svc := NewBlogService(store, nil, "blog_events")

	title := "renamed"
	count, err := svc.BulkUpdate(context.Background(), "admin-3",
		map[string]interface{}{"is_active": true},
		&schema.BlogPatch{Title: &title},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, "admin-3", store.lastSet["updated_by"])
	assert.Equal(t, true, store.lastFilter["is_active"])
}

func TestBulkUpdateRejectsBadFilter(t *testing.T) {
	store := &fakeStore{}
	svc := NewBlogService(store, nil, "blog_events")

	_, err := svc.BulkUpdate(context.Background(), "admin-3",
		map[string]interface{}{"$where": "1"},
		&schema.BlogPatch{},
	)
	assert.Error(t, err)
	assert.Zero(t, store.updateManyCalls)
}

func TestSoftDeleteFlagsRecord(t *testing.T) {
	store := &fakeStore{}
	bus := &fakeBus{}
	svc := NewBlogService(store, bus, "blog_events")

	id := primitive.NewObjectID().Hex()
	deleted, err := svc.SoftDelete(context.Background(), "admin-5", id)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
	assert.Equal(t, "admin-5", deleted.UpdatedBy)
	assert.Len(t, bus.published, 1)
}

func TestUpdateNotFoundPassesThrough(t *testing.T) {
	store := &fakeStore{updateErr: repositories.ErrNotFound}
	svc := NewBlogService(store, nil, "blog_events")

	id := primitive.NewObjectID().Hex()
	_, err := svc.Update(context.Background(), "admin-1", id, &schema.BlogUpdate{
		Title: "x", Slug: "x",
	})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
