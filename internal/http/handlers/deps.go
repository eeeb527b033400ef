package handlers

import (
	"github.com/jmoiron/sqlx"

	"lrkr/internal/cart"
	"lrkr/internal/events"
	"lrkr/internal/repos"
	"lrkr/internal/services"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler       *AuthHandler
	CategoryHandler   *CategoryHandler
	ProductHandler    *ProductHandler
	SearchHandler     *SearchHandler
	InventoryHandler  *InventoryHandler
	CartHandler       *CartHandler
	OrderHandler      *OrderHandler
	SubmissionHandler *SubmissionHandler
	AdminHandler      *AdminHandler
}

// NewDeps wires repos and services over db. slot holds cart snapshots; a nil
// slot keeps carts in the database. pub may be nil.
func NewDeps(db *sqlx.DB, slot cart.Slot, pub events.Publisher) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	subRepo := repos.NewSubmissionRepo(db)
	if slot == nil {
		slot = repos.NewCartSlotRepo(db)
	}

	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	invSvc := services.NewInventoryService(invRepo)
	cartSvc := services.NewCartService(slot, prodRepo, pub)
	orderSvc := services.NewOrderService(orderRepo, pub)
	subSvc := services.NewSubmissionService(subRepo, pub)

	return &Deps{
		Auth:              authSvc,
		AuthHandler:       &AuthHandler{Auth: authSvc},
		CategoryHandler:   &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:    &ProductHandler{Catalog: catalogSvc},
		SearchHandler:     &SearchHandler{Catalog: catalogSvc},
		InventoryHandler:  &InventoryHandler{Inv: invSvc},
		CartHandler:       &CartHandler{Cart: cartSvc},
		OrderHandler:      &OrderHandler{Orders: orderSvc, Cart: cartSvc},
		SubmissionHandler: &SubmissionHandler{Submissions: subSvc},
		AdminHandler:      &AdminHandler{Orders: orderSvc, Submissions: subSvc, Inv: invSvc},
	}
}
