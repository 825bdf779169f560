package handlers

import (
	"net/http"

	"taskboard/internal/handlers/dto"
	"taskboard/internal/models/category"
)

type CategoryHandler struct {
	CategoryService CategoryService
}

func NewCategoryHandler(categoryService CategoryService) CategoryHandler {
	return CategoryHandler{CategoryService: categoryService}
}

func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CategoryService.List(r.Context())
	if err != nil {
		handleError(w, r, err, "list_categories")
		return
	}
	if categories == nil {
		categories = []*category.Category{}
	}
	responseOK(w, http.StatusOK, "", object{"categories": categories})
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.CategoryService.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "get_category")
		return
	}
	responseOK(w, http.StatusOK, "", object{"category": c})
}

func (h *CategoryHandler) PostCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	c, err := h.CategoryService.Create(r.Context(), id, req.Name, req.Description)
	if err != nil {
		handleError(w, r, err, "create_category")
		return
	}
	responseOK(w, http.StatusCreated, "Category created successfully", object{"category": c})
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	categoryID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	c, err := h.CategoryService.Update(r.Context(), id, categoryID, req.Patch())
	if err != nil {
		handleError(w, r, err, "update_category")
		return
	}
	responseOK(w, http.StatusOK, "Category updated successfully", object{"category": c})
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	categoryID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(r.Context(), id, categoryID); err != nil {
		handleError(w, r, err, "delete_category")
		return
	}
	responseOK(w, http.StatusOK, "Category deleted successfully", nil)
}

func (h *CategoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	stats, err := h.CategoryService.Stats(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "category_stats")
		return
	}
	responseOK(w, http.StatusOK, "", object{"categoryStats": stats})
}
