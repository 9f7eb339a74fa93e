package handler

import "github.com/openblog/blog-api/internal/core/domain"

type upsertCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Description string `json:"description" validate:"max=200"`
}

type categoryResponse struct {
	Category *domain.Category `json:"category"`
}

type listCategoriesResponse struct {
	Categories []*domain.Category `json:"categories"`
}
