package services

import (
	"errors"

	"dukaan/internal/domain"
	"dukaan/internal/repos"

	"github.com/google/uuid"
)

var ErrMissingTitlePrice = errors.New("title and price are required")

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) ListProducts() ([]domain.Product, error) {
	return s.Prods.List()
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) CreateProduct(title string, price *float64, image, category string) (domain.Product, error) {
	if title == "" || price == nil {
		return domain.Product{}, ErrMissingTitlePrice
	}
	p := domain.Product{
		ID:       uuid.NewString(),
		Title:    title,
		Price:    *price,
		Image:    image,
		Category: category,
	}
	if err := s.Prods.Create(&p); err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(p.ID)
}

func (s *CatalogService) UpdateProduct(id string, title *string, price *float64, image, category *string) (domain.Product, error) {
	return s.Prods.Update(id, title, price, image, category)
}

func (s *CatalogService) DeleteProduct(id string) (bool, error) {
	return s.Prods.Delete(id)
}

func (s *CatalogService) Categories() ([]string, error) {
	return s.Prods.Categories()
}
