package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"blog-admin/eventbus"
	"blog-admin/events"
	"blog-admin/internal/logger"
	"blog-admin/models"
	"blog-admin/repositories"
	"blog-admin/schema"
)

var (
	// ErrDuplicate maps a store-level uniqueness violation.
	ErrDuplicate = errors.New("record with the same slug already exists")
	// ErrEmptyIDs is returned before any store call when a bulk operation
	// receives no ids.
	ErrEmptyIDs = errors.New("ids must be a non-empty list")
	// ErrEmptyData is returned before any store call when a bulk insert
	// receives no documents.
	ErrEmptyData = errors.New("data must be a non-empty list")
)

// BlogStore is the document access surface BlogService needs. Implemented by
// *repositories.BlogRepository; tests substitute a fake.
type BlogStore interface {
	Insert(ctx context.Context, b *models.Blog) (*models.Blog, error)
	InsertMany(ctx context.Context, blogs []*models.Blog) (int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	Find(ctx context.Context, filter bson.M, lo repositories.ListOptions) ([]models.Blog, int64, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Blog, error)
	UpdateMany(ctx context.Context, filter bson.M, set bson.M) (int64, error)
	SoftDeleteByID(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.Blog, error)
	SoftDeleteMany(ctx context.Context, ids []primitive.ObjectID, updatedBy string) (int64, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

// BlogService holds the business rules around the blogs collection: schema
// validation, audit field injection and mutation event publishing.
type BlogService struct {
	store BlogStore
	bus   eventbus.Bus
	topic string
}

func NewBlogService(store BlogStore, bus eventbus.Bus, topic string) *BlogService {
	if bus == nil {
		bus = eventbus.NoopBus{}
	}
	return &BlogService{store: store, bus: bus, topic: topic}
}

// Create validates in, injects the audit fields and inserts one document.
// actor is the authenticated user id; a client-supplied addedBy can never
// reach the store because the writable schema has no such field.
func (s *BlogService) Create(ctx context.Context, actor string, in *schema.BlogCreate) (*models.Blog, error) {
	if err := schema.ValidateCreate(in); err != nil {
		return nil, err
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	blog := &models.Blog{
		Title:       in.Title,
		Slug:        in.Slug,
		Description: in.Description,
		Content:     in.Content,
		Tags:        in.Tags,
		IsActive:    isActive,
		AddedBy:     actor,
	}

	created, err := s.store.Insert(ctx, blog)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	s.publish(ctx, events.NewBlogEvent(events.BlogCreated, created.ID, created.Slug, actor))
	return created, nil
}

// List validates the filter and options and returns one page of matches.
func (s *BlogService) List(ctx context.Context, query map[string]interface{}, opts schema.ListQueryOptions) ([]models.Blog, int64, error) {
	if err := schema.ValidateFilter(query); err != nil {
		return nil, 0, err
	}
	if err := schema.ValidateOptions(&opts); err != nil {
		return nil, 0, err
	}
	filter, err := schema.BuildFilter(query)
	if err != nil {
		return nil, 0, err
	}

	lo := repositories.ListOptions{
		Page:     opts.Page,
		PageSize: opts.Paginate,
		Select:   opts.Select,
	}
	if opts.SortBy != "" {
		field, dir := opts.SortBy, 1
		if field[0] == '-' {
			field, dir = field[1:], -1
		}
		if field == "id" {
			field = "_id"
		}
		lo.Sort = bson.D{{Key: field, Value: dir}}
	}

	return s.store.Find(ctx, filter, lo)
}

// Count validates the filter and returns the match count. No documents are
// decoded on this path.
func (s *BlogService) Count(ctx context.Context, where map[string]interface{}) (int64, error) {
	if err := schema.ValidateFilter(where); err != nil {
		return 0, err
	}
	filter, err := schema.BuildFilter(where)
	if err != nil {
		return 0, err
	}
	return s.store.Count(ctx, filter)
}

// Get fetches a single document by its hex id.
func (s *BlogService) Get(ctx context.Context, id string) (*models.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, oid)
}

// Update replaces the writable fields of one document. Client-supplied audit
// fields cannot appear in the update set; updatedBy is always the actor.
func (s *BlogService) Update(ctx context.Context, actor, id string, in *schema.BlogUpdate) (*models.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := schema.ValidateUpdate(in); err != nil {
		return nil, err
	}

	set := bson.M{
		"title":       in.Title,
		"slug":        in.Slug,
		"description": in.Description,
		"content":     in.Content,
		"tags":        in.Tags,
		"updated_by":  actor,
	}
	if in.IsActive != nil {
		set["is_active"] = *in.IsActive
	}

	updated, err := s.store.UpdateByID(ctx, oid, set)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	s.publish(ctx, events.NewBlogEvent(events.BlogUpdated, updated.ID, updated.Slug, actor))
	return updated, nil
}

// Patch applies only the fields present in in to one document.
func (s *BlogService) Patch(ctx context.Context, actor, id string, in *schema.BlogPatch) (*models.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := schema.ValidatePatch(in); err != nil {
		return nil, err
	}

	set := patchSet(in)
	set["updated_by"] = actor

	updated, err := s.store.UpdateByID(ctx, oid, set)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	s.publish(ctx, events.NewBlogEvent(events.BlogUpdated, updated.ID, updated.Slug, actor))
	return updated, nil
}

// BulkInsert validates and inserts a batch, injecting addedBy per item.
func (s *BlogService) BulkInsert(ctx context.Context, actor string, items []schema.BlogCreate) (int64, error) {
	if len(items) == 0 {
		return 0, ErrEmptyData
	}

	blogs := make([]*models.Blog, 0, len(items))
	for i := range items {
		in := &items[i]
		if err := schema.ValidateCreate(in); err != nil {
			return 0, err
		}
		isActive := true
		if in.IsActive != nil {
			isActive = *in.IsActive
		}
		blogs = append(blogs, &models.Blog{
			Title:       in.Title,
			Slug:        in.Slug,
			Description: in.Description,
			Content:     in.Content,
			Tags:        in.Tags,
			IsActive:    isActive,
			AddedBy:     actor,
		})
	}

	count, err := s.store.InsertMany(ctx, blogs)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}

	s.publish(ctx, events.NewBlogBulkEvent(events.BlogBulkInserted, count, actor))
	return count, nil
}

// BulkUpdate applies a partial update to every document matching filter.
func (s *BlogService) BulkUpdate(ctx context.Context, actor string, filter map[string]interface{}, in *schema.BlogPatch) (int64, error) {
	if err := schema.ValidateFilter(filter); err != nil {
		return 0, err
	}
	if err := schema.ValidatePatch(in); err != nil {
		return 0, err
	}
	built, err := schema.BuildFilter(filter)
	if err != nil {
		return 0, err
	}

	set := patchSet(in)
	set["updated_by"] = actor

	count, err := s.store.UpdateMany(ctx, built, set)
	if err != nil {
		return 0, err
	}

	s.publish(ctx, events.NewBlogBulkEvent(events.BlogUpdated, count, actor))
	return count, nil
}

// SoftDelete flags one document as deleted.
func (s *BlogService) SoftDelete(ctx context.Context, actor, id string) (*models.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	deleted, err := s.store.SoftDeleteByID(ctx, oid, actor)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewBlogEvent(events.BlogSoftDeleted, deleted.ID, deleted.Slug, actor))
	return deleted, nil
}

// SoftDeleteMany flags every document in ids as deleted. An empty or invalid
// id list fails before any store call.
func (s *BlogService) SoftDeleteMany(ctx context.Context, actor string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyIDs
	}
	oids, err := schema.ParseObjectIDs(ids)
	if err != nil {
		return 0, err
	}
	count, err := s.store.SoftDeleteMany(ctx, oids, actor)
	if err != nil {
		return 0, err
	}
	s.publish(ctx, events.NewBlogBulkEvent(events.BlogSoftDeleted, count, actor))
	return count, nil
}

// Delete permanently removes one document.
func (s *BlogService) Delete(ctx context.Context, actor, id string) (*models.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	deleted, err := s.store.DeleteByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewBlogEvent(events.BlogDeleted, deleted.ID, deleted.Slug, actor))
	return deleted, nil
}

// DeleteMany permanently removes every document in ids.
func (s *BlogService) DeleteMany(ctx context.Context, actor string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyIDs
	}
	oids, err := schema.ParseObjectIDs(ids)
	if err != nil {
		return 0, err
	}
	count, err := s.store.DeleteMany(ctx, oids)
	if err != nil {
		return 0, err
	}
	s.publish(ctx, events.NewBlogBulkEvent(events.BlogDeleted, count, actor))
	return count, nil
}

// publish sends a mutation event best-effort: failures are logged, never
// surfaced to the request.
func (s *BlogService) publish(ctx context.Context, payload interface{}) {
	if err := s.bus.Publish(ctx, s.topic, "blogs", payload); err != nil {
		logger.Log.Errorf("publish blog event: %v", err)
	}
}

func patchSet(in *schema.BlogPatch) bson.M {
	set := bson.M{}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Slug != nil {
		set["slug"] = *in.Slug
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.Content != nil {
		set["content"] = *in.Content
	}
	if in.Tags != nil {
		set["tags"] = in.Tags
	}
	if in.IsActive != nil {
		set["is_active"] = *in.IsActive
	}
	return set
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, schema.ValidationErrors{{
			Field: "id", Tag: "objectid", Message: "invalid object id",
		}}
	}
	return oid, nil
}
