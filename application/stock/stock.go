package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadheryan/stock-allocation/constant"
	"github.com/muhammadheryan/stock-allocation/model"
	stocklotrepo "github.com/muhammadheryan/stock-allocation/repository/stocklot"
	"github.com/muhammadheryan/stock-allocation/utils/errors"
	"github.com/muhammadheryan/stock-allocation/utils/logger"
	validatorx "github.com/muhammadheryan/stock-allocation/utils/validator"
	"go.uber.org/zap"
)

// StockApp is the inventory receipt side: it creates and removes lots and reports what is
// free to allocate. Reserved quantities are only ever changed by the allocation engine.
type StockApp interface {
	ReceiveLot(ctx context.Context, req *model.ReceiveLotRequest) (*model.LotResponse, error)
	GetLot(ctx context.Context, lotID string) (*model.LotResponse, error)
	ListLots(ctx context.Context, itemID, locationID string) ([]model.LotResponse, error)
	GetItemAvailability(ctx context.Context, itemID, locationID string) (*model.ItemAvailability, error)
	RemoveLot(ctx context.Context, lotID string) error
}

type stockAppImpl struct {
	stockLotRepo stocklotrepo.StockLotRepository
	newID        func() string
	now          func() time.Time
}

func NewStockApp(stockLotRepo stocklotrepo.StockLotRepository) StockApp {
	return &stockAppImpl{
		stockLotRepo: stockLotRepo,
		newID:        uuid.NewString,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *stockAppImpl) ReceiveLot(ctx context.Context, req *model.ReceiveLotRequest) (*model.LotResponse, error) {
	if req == nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if err := validatorx.ValidateStruct(req); err != nil {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidRequest, "%s", validatorx.FirstFieldError(err))
	}
	if req.UnitCost.IsNegative() {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidRequest, "unit_cost must not be negative")
	}

	acquiredAt := req.AcquiredAt
	if acquiredAt.IsZero() {
		acquiredAt = s.now()
	}
	lot := model.StockLot{
		ID:            s.newID(),
		ItemID:        req.ItemID,
		LocationID:    req.LocationID,
		QuantityTotal: req.Quantity,
		UnitCost:      req.UnitCost,
		AcquiredAt:    acquiredAt.UTC(),
	}
	if err := s.stockLotRepo.CreateLot(ctx, &lot); err != nil {
		logger.Ctx(ctx).Error("[ReceiveLot] create lot failed", zap.String("item_id", req.ItemID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	logger.Ctx(ctx).Info("[ReceiveLot] lot received", zap.String("lot_id", lot.ID), zap.String("item_id", lot.ItemID), zap.Int64("quantity", lot.QuantityTotal))
	resp := model.NewLotResponse(lot)
	return &resp, nil
}

func (s *stockAppImpl) GetLot(ctx context.Context, lotID string) (*model.LotResponse, error) {
	lot, err := s.stockLotRepo.GetLot(ctx, lotID)
	if err != nil {
		logger.Ctx(ctx).Error("[GetLot] get lot failed", zap.String("lot_id", lotID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if lot == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	resp := model.NewLotResponse(*lot)
	return &resp, nil
}

func (s *stockAppImpl) ListLots(ctx context.Context, itemID, locationID string) ([]model.LotResponse, error) {
	if itemID == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	lots, err := s.stockLotRepo.ListLots(ctx, itemID, locationID)
	if err != nil {
		logger.Ctx(ctx).Error("[ListLots] list lots failed", zap.String("item_id", itemID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	res := make([]model.LotResponse, 0, len(lots))
	for _, l := range lots {
		res = append(res, model.NewLotResponse(l))
	}
	return res, nil
}

func (s *stockAppImpl) GetItemAvailability(ctx context.Context, itemID, locationID string) (*model.ItemAvailability, error) {
	if itemID == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	av, err := s.stockLotRepo.GetAvailability(ctx, itemID, locationID)
	if err != nil {
		logger.Ctx(ctx).Error("[GetItemAvailability] get availability failed", zap.String("item_id", itemID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return av, nil
}

// RemoveLot deletes a lot that has nothing reserved against it.
func (s *stockAppImpl) RemoveLot(ctx context.Context, lotID string) error {
	err := s.stockLotRepo.DeleteLot(ctx, lotID)
	if err == nil {
		logger.Ctx(ctx).Info("[RemoveLot] lot removed", zap.String("lot_id", lotID))
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}
	logger.Ctx(ctx).Error("[RemoveLot] delete lot failed", zap.String("lot_id", lotID), zap.String("error", err.Error()))
	return errors.SetCustomError(constant.ErrInternal)
}
