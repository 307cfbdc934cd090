package handlers

import (
	"dukaan/internal/config"
	"dukaan/internal/repos"
	"dukaan/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Tokens         *services.TokenService
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	OrderHandler   *OrderHandler
	AdminHandler   *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	settingsRepo := repos.NewSettingsRepo(db)

	tokens := services.NewTokenService(cfg.JWTSecret)
	authSvc := services.NewAuthService(userRepo, tokens, services.LogResetSender{})
	catalogSvc := services.NewCatalogService(prodRepo)
	orderSvc := services.NewOrderService(orderRepo)
	adminSvc := services.NewAdminService(prodRepo, orderRepo, userRepo)

	return &Deps{
		Tokens:         tokens,
		AuthHandler:    &AuthHandler{Auth: authSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		OrderHandler:   &OrderHandler{Orders: orderSvc, Tokens: tokens, Users: userRepo},
		AdminHandler: &AdminHandler{
			Admin:     adminSvc,
			OrderRepo: orderRepo,
			UserRepo:  userRepo,
			Prods:     prodRepo,
			Settings:  settingsRepo,
		},
	}
}
