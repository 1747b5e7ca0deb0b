package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"shop-backend/internal/domain"
	"shop-backend/internal/repository"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/singleflight"
)

var ErrProductNotFound = errors.New("product not found")

const productCacheTTL = time.Minute

type ProductService struct {
	repo        repository.ProductRepository
	redisClient *redis.Client
	group       singleflight.Group
}

func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *ProductService) Create(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	return s.repo.Save(product)
}

func (s *ProductService) Update(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	existing, err := s.repo.FindByID(product.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.invalidate(ctx, product.ID)
	return nil
}

// Get serves from redis when possible; concurrent misses for the same product
// collapse into a single repository read.
func (s *ProductService) Get(ctx context.Context, id uint64) (*domain.Product, error) {
	cacheKey := fmt.Sprintf("product:%d", id)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	v, err, _ := s.group.Do(cacheKey, func() (interface{}, error) {
		p, err := s.repo.FindByID(id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, ErrProductNotFound
		}
		if s.redisClient != nil {
			if data, err := json.Marshal(p); err == nil {
				s.redisClient.Set(ctx, cacheKey, data, productCacheTTL)
			}
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll()
}

func (s *ProductService) Delete(ctx context.Context, id uint64) error {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id uint64) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, fmt.Sprintf("product:%d", id))
	}
}

func validateProduct(p *domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.Validationf("product name is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return domain.Validationf("product description is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return domain.Validationf("product category is required")
	}
	if p.Price < 0 {
		return domain.Validationf("product price must not be negative")
	}
	if p.Stock < 0 {
		return domain.Validationf("product stock must not be negative")
	}
	return nil
}
