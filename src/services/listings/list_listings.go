package listings

import (
	"context"
	"fmt"

	"propertylisting/src/domain"
)

// normalizePaging aplica os defaults e limites de paginação.
func normalizePaging(page int, pageSize int) (int, int) {
	if page < 0 {
		page = 0
	}
	if page > domain.MaxPage {
		page = domain.MaxPage
	}
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	if pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}
	return page, pageSize
}

// List devolve uma página de listings que satisfazem todos os filtros informados.
// Nenhum resultado não é erro: a página volta vazia.
func (s *ListingService) List(ctx context.Context, query domain.ListingQuery) (*domain.ListingPage, error) {
	page, pageSize := normalizePaging(query.Page, query.PageSize)
	filter := BuildFilter(query)

	items, total, err := s.repository.FindPage(ctx, filter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("ListingService.List - failed to FindPage from repository: %w", err)
	}

	responses := make([]domain.ListingResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, ToResponse(item))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &domain.ListingPage{
		Items:         responses,
		Page:          page,
		PageSize:      pageSize,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}
