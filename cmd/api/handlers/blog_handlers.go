package handlers

import (
	"github.com/gin-gonic/gin"

	"blog-admin/cmd/api/dto"
	"blog-admin/cmd/api/middleware"
	"blog-admin/cmd/api/services"
	"blog-admin/models"
)

// actor returns the authenticated user id placed in the context by the auth
// middleware. Audit fields are always derived from it, never from the body.
func actor(c *gin.Context) string {
	return c.GetString(middleware.CtxUserID)
}

// CreateBlogHandler godoc
// @Summary      Create a blog
// @Description  Validate the payload and insert one blog document
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBlogRequest  true  "Blog to create"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Router       /admin/blogs [post]
func CreateBlogHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateBlogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}

		created, err := svc.Create(c.Request.Context(), actor(c), &req.Data)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, "blog created successfully", created)
	}
}

// ListBlogsHandler godoc
// @Summary      List blogs
// @Description  Paginated list with a schema-checked filter; isCountOnly short-circuits to a count
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ListBlogsRequest  true  "Filter, options, isCountOnly"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /admin/blogs/list [post]
func ListBlogsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ListBlogsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}

		if req.IsCountOnly {
			total, err := svc.Count(c.Request.Context(), req.Query)
			if err != nil {
				respondError(c, err)
				return
			}
			respondOK(c, "count fetched successfully", dto.CountResult{TotalRecords: total})
			return
		}

		items, total, err := svc.List(c.Request.Context(), req.Query, req.Options)
		if err != nil {
			respondError(c, err)
			return
		}
		if len(items) == 0 {
			respondNotFound(c)
			return
		}

		page, pageSize := req.Options.Page, req.Options.Paginate
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			pageSize = 20
		}
		respondOK(c, "blogs fetched successfully", dto.Pagination[models.Blog]{
			Data:     items,
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		})
	}
}

// GetBlogCountHandler godoc
// @Summary      Count blogs
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CountBlogsRequest  true  "Filter"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Router       /admin/blogs/count [post]
func GetBlogCountHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CountBlogsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}

		total, err := svc.Count(c.Request.Context(), req.Where)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, "count fetched successfully", dto.CountResult{TotalRecords: total})
	}
}

// GetBlogHandler godoc
// @Summary      Get blog by id
// @Tags         blogs
// @Produce      json
// @Param        id  path  string  true  "ObjectID"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /admin/blogs/{id} [get]
func GetBlogHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blog, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, "blog fetched successfully", blog)
	}
}

// UpdateBlogHandler godoc
// @Summary      Update a blog
// @Description  Full update of the writable fields; audit fields come from the token
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ObjectID"
// @Param        body  body  dto.UpdateBlogRequest  true  "New field values"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /admin/blogs/{id} [put]
func UpdateBlogHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdateBlogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}

		updated, err := svc.Update(c.Request.Context(), actor(c), c.Param("id"), &req.Data)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, "blog updated successfully", updated)
	}
}

// PartialUpdateBlogHandler godoc
// @Summary      Partially update a blog
// @Description  Only the fields present in the payload are changed
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ObjectID"
// @Param        body  body  dto.PatchBlogRequest  true  "Fields to change"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /admin/blogs/{id} [patch]
func PartialUpdateBlogHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.PatchBlogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}

		updated, err := svc.Patch(c.Request.Context(), actor(c), c.Param("id"), &req.Data)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, "blog updated successfully", updated)
	}
}

// SoftDeleteBlogHandler godoc
// @Summary      Soft delete a blog
// @Description  Flags the record as deleted; it is never removed from the collection
// @Tags         blogs
// @Produce      json
// @Param        id  path  string  true  "ObjectID"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /admin/blogs/{id}/soft-delete [put]
func SoftDeleteBlogHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := svc.SoftDelete(c.Request.Context(), actor(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, "blog deactivated successfully", deleted)
	}
}

// DeleteBlogHandler godoc
// @Summary      Delete a blog
// @Description  Permanently removes one record
// @Tags         blogs
// @Produce      json
// @Param        id  path  string  true  "ObjectID"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /admin/blogs/{id} [delete]
func DeleteBlogHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := svc.Delete(c.Request.Context(), actor(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, "blog deleted successfully", deleted)
	}
}

// BulkInsertBlogsHandler godoc
// @Summary      Bulk insert blogs
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkInsertBlogsRequest  true  "Blogs to insert"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Router       /admin/blogs/bulk [post]
func BulkInsertBlogsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.BulkInsertBlogsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}

		count, err := svc.BulkInsert(c.Request.Context(), actor(c), req.Data)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, "blogs inserted successfully", dto.AffectedResult{Count: count})
	}
}

// BulkUpdateBlogsHandler godoc
// @Summary      Bulk update blogs
// @Description  Applies a partial update to every record matching the filter
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkUpdateBlogsRequest  true  "Filter and fields to change"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Router       /admin/blogs/bulk [put]
func BulkUpdateBlogsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.BulkUpdateBlogsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}

		count, err := svc.BulkUpdate(c.Request.Context(), actor(c), req.Filter, &req.Data)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, "blogs updated successfully", dto.AffectedResult{Count: count})
	}
}

// SoftDeleteManyBlogsHandler godoc
// @Summary      Soft delete many blogs
// @Description  Flags every record in ids as deleted; empty id lists are rejected before any store call
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IDListRequest  true  "Record ids"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Router       /admin/blogs/soft-delete-many [put]
func SoftDeleteManyBlogsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.IDListRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}

		count, err := svc.SoftDeleteMany(c.Request.Context(), actor(c), req.IDs)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, "blogs deactivated successfully", dto.AffectedResult{Count: count})
	}
}

// DeleteManyBlogsHandler godoc
// @Summary      Delete many blogs
// @Description  Permanently removes every record in ids
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IDListRequest  true  "Record ids"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Router       /admin/blogs/delete-many [post]
func DeleteManyBlogsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.IDListRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}

		count, err := svc.DeleteMany(c.Request.Context(), actor(c), req.IDs)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, "blogs deleted successfully", dto.AffectedResult{Count: count})
	}
}
