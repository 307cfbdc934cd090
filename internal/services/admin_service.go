package services

import (
	"strconv"

	"dukaan/internal/domain"
	"dukaan/internal/repos"
)

type AdminService struct {
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
	Users  *repos.UserRepo
}

func NewAdminService(prods *repos.ProductRepo, orders *repos.OrderRepo, users *repos.UserRepo) *AdminService {
	return &AdminService{Prods: prods, Orders: orders, Users: users}
}

// Stats aggregates the dashboard counters. Revenue comes from a SQL SUM; when
// that cannot be read as a number (legacy rows stored totals as text), it
// falls back to walking the raw totals.
func (s *AdminService) Stats() (domain.Stats, error) {
	products, err := s.Prods.Count()
	if err != nil {
		return domain.Stats{}, err
	}
	orders, err := s.Orders.Count()
	if err != nil {
		return domain.Stats{}, err
	}
	users, err := s.Users.Count()
	if err != nil {
		return domain.Stats{}, err
	}

	revenue := 0.0
	if sum, err := s.Orders.SumTotal(); err == nil && sum.Valid {
		revenue = sum.Float64
	} else if totals, ferr := s.Orders.AllTotals(); ferr == nil {
		for _, t := range totals {
			v, perr := strconv.ParseFloat(t, 64)
			if perr != nil {
				continue
			}
			revenue += v
		}
	}

	return domain.Stats{Products: products, Orders: orders, Users: users, Revenue: revenue}, nil
}
