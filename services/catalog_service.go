package services

import (
	"strings"

	"coffee-order/libs"
	"coffee-order/models"
	"coffee-order/repositories"
)

const allCategories = "All"

type CatalogService struct {
	repo   *repositories.CatalogRepository
	images libs.ImageResolver
}

func NewCatalogService(repo *repositories.CatalogRepository, images libs.ImageResolver) *CatalogService {
	if images == nil {
		images = libs.PassthroughImages{}
	}
	return &CatalogService{repo: repo, images: images}
}

// List filters by category ("All" or empty means every category) and by a
// case-insensitive substring of the name, keeping menu order.
func (s *CatalogService) List(filter models.CatalogFilter) []models.CatalogItem {
	category := strings.TrimSpace(filter.Category)
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	items := []models.CatalogItem{}
	for _, item := range s.repo.All() {
		if category != "" && category != allCategories && item.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		items = append(items, s.withImage(item))
	}
	return items
}

func (s *CatalogService) Categories() []string {
	categories := []string{allCategories}
	seen := map[string]bool{}
	for _, item := range s.repo.All() {
		if seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}
	return categories
}

func (s *CatalogService) Get(id string) (models.CatalogItem, error) {
	item, ok := s.repo.FindByID(id)
	if !ok {
		return models.CatalogItem{}, ErrProductNotFound
	}
	return s.withImage(item), nil
}

func (s *CatalogService) Promotions() []models.Promotion {
	promos := s.repo.Promotions()
	for i := range promos {
		promos[i].Image = s.images.Resolve(promos[i].Image)
	}
	return promos
}

func (s *CatalogService) withImage(item models.CatalogItem) models.CatalogItem {
	item.Image = s.images.Resolve(item.Image)
	return item
}
