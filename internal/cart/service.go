package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/auth"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/db/models"
	pkgerrors "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/errors"
)

type productLoader interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes cart operations keyed by the caller's session.
type Service interface {
	GetCart(ctx context.Context, sess auth.Session) (*CartView, error)
	AddItem(ctx context.Context, sess auth.Session, productID uuid.UUID, quantity int) (*CartView, error)
	UpdateQuantity(ctx context.Context, sess auth.Session, itemID uuid.UUID, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, sess auth.Session, itemID uuid.UUID) (*CartView, error)
	Clear(ctx context.Context, sess auth.Session) error
}

type service struct {
	repo     CartRepository
	products productLoader
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: products}, nil
}

// GetCart loads the user's cart. Unauthenticated callers get the empty view
// without touching the store.
func (s *service) GetCart(ctx context.Context, sess auth.Session) (*CartView, error) {
	if !sess.Authenticated() {
		return EmptyView(), nil
	}
	rows, err := s.repo.ListByUser(ctx, sess.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return BuildView(rows), nil
}

// AddItem adds quantity of a product to the cart. Adding a product already in
// the cart increments the existing row instead of creating a duplicate.
func (s *service) AddItem(ctx context.Context, sess auth.Session, productID uuid.UUID, quantity int) (*CartView, error) {
	if !sess.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to modify your cart")
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	if _, err := s.products.FindActiveByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	existing, err := s.repo.FindByUserAndProduct(ctx, sess.UserID, productID)
	switch {
	case err == nil:
		if err := s.repo.UpdateQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment cart item")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &models.CartItem{
			UserID:    sess.UserID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if _, err := s.repo.Create(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert cart item")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up cart item")
	}

	return s.GetCart(ctx, sess)
}

// UpdateQuantity sets the absolute quantity on a cart row the user owns. A
// quantity below one removes the row.
func (s *service) UpdateQuantity(ctx context.Context, sess auth.Session, itemID uuid.UUID, quantity int) (*CartView, error) {
	if !sess.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to modify your cart")
	}
	if quantity < 1 {
		return s.RemoveItem(ctx, sess, itemID)
	}

	item, err := s.findOwned(ctx, sess, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart quantity")
	}
	return s.GetCart(ctx, sess)
}

// RemoveItem deletes a cart row the user owns.
func (s *service) RemoveItem(ctx context.Context, sess auth.Session, itemID uuid.UUID) (*CartView, error) {
	if !sess.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to modify your cart")
	}
	item, err := s.findOwned(ctx, sess, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	return s.GetCart(ctx, sess)
}

// Clear empties the user's cart.
func (s *service) Clear(ctx context.Context, sess auth.Session) error {
	if !sess.Authenticated() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to modify your cart")
	}
	if err := s.repo.DeleteByUser(ctx, sess.UserID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) findOwned(ctx context.Context, sess auth.Session, itemID uuid.UUID) (*models.CartItem, error) {
	item, err := s.repo.FindByIDAndUser(ctx, itemID, sess.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up cart item")
	}
	return item, nil
}
