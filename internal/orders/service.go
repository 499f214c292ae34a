package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/auth"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/db/models"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/enums"
	pkgerrors "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/errors"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/pagination"
)

// Service exposes order history and lifecycle operations.
type Service interface {
	ListOrders(ctx context.Context, sess auth.Session, params pagination.Params) (*OrderListResult, error)
	GetOrder(ctx context.Context, sess auth.Session, orderID uuid.UUID) (*OrderDTO, error)
	Cancel(ctx context.Context, sess auth.Session, orderID uuid.UUID) (*OrderDTO, error)
	AdvanceStatus(ctx context.Context, sess auth.Session, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds an orders service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

// ListOrders returns the caller's order history.
func (s *service) ListOrders(ctx context.Context, sess auth.Session, params pagination.Params) (*OrderListResult, error) {
	if !sess.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view your orders")
	}
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	result, err := s.repo.ListByUser(ctx, sess.UserID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return result, nil
}

// GetOrder returns a single order the caller owns.
func (s *service) GetOrder(ctx context.Context, sess auth.Session, orderID uuid.UUID) (*OrderDTO, error) {
	if !sess.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view your orders")
	}
	order, err := s.findOwned(ctx, sess, orderID)
	if err != nil {
		return nil, err
	}
	dto := ToDTO(*order)
	return &dto, nil
}

// Cancel moves an order to cancelled. Only pending and confirmed orders can
// be cancelled; anything further along has left the warehouse.
func (s *service) Cancel(ctx context.Context, sess auth.Session, orderID uuid.UUID) (*OrderDTO, error) {
	if !sess.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to manage your orders")
	}
	order, err := s.findOwned(ctx, sess, orderID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, order, enums.OrderStatusCancelled)
}

// AdvanceStatus moves an order forward through fulfillment. Admin only;
// backward transitions are rejected.
func (s *service) AdvanceStatus(ctx context.Context, sess auth.Session, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error) {
	if !sess.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", status))
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return s.transition(ctx, order, status)
}

func (s *service) transition(ctx context.Context, order *models.Order, target enums.OrderStatus) (*OrderDTO, error) {
	if !order.Status.CanTransitionTo(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, target))
	}
	if err := s.repo.UpdateStatus(ctx, order.ID, target); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	order.Status = target
	dto := ToDTO(*order)
	return &dto, nil
}

func (s *service) findOwned(ctx context.Context, sess auth.Session, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByIDAndUser(ctx, orderID, sess.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}
