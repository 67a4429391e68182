package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/base/logger/xzap"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/eip712"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/fees"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
)

// CreateOrder 挂单入库，签名校验通过后进入订单簿供展示与撮合
// side=SideList 为 Order，side=SideBid 为 Offer
func (e *Engine) CreateOrder(ctx context.Context, in Intent, sigHex string, side int8) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	in.Maker = normalize(in.Maker)
	now := e.now()

	primaryType := eip712.TypeOrder
	if side == model.SideBid {
		primaryType = eip712.TypeOffer
	}

	var orderId string
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkNotPaused(tx); err != nil {
			return err
		}
		if now.Unix() > in.Deadline {
			return errcode.ErrOrderExpired
		}
		if in.Price.LessThan(fees.MinTradePrice) {
			return errcode.ErrPriceTooLow
		}

		// 已消耗的 nonce 不允许重新挂出
		var used int64
		if err := tx.Model(&model.TradeNonce{}).
			Where("signer = ? AND side = ? AND nonce = ?", in.Maker, side, in.Nonce).
			Count(&used).Error; err != nil {
			return errors.Wrap(err, "failed on query nonce")
		}
		if used > 0 {
			return errcode.ErrNonceAlreadyUsed
		}
		if err := e.verifyIntent(primaryType, in, sigHex); err != nil {
			return err
		}
		// 卖单要求挂单时即持有并授权
		if side == model.SideList {
			if _, err := loadItem(tx, in.CollectionId, in.TokenId, in.Maker); err != nil {
				return err
			}
		}

		orderId = uuid.NewString()
		order := &model.Order{
			OrderId:      orderId,
			Side:         side,
			Maker:        in.Maker,
			CollectionId: in.CollectionId,
			TokenId:      in.TokenId,
			Price:        in.Price,
			Nonce:        in.Nonce,
			Deadline:     in.Deadline,
			Signature:    sigHex,
			Status:       model.OrderStatusOpen,
		}
		if err := tx.Create(order).Error; err != nil {
			return errors.Wrap(err, "failed on create order")
		}

		activity := &model.Activity{
			ActivityType: model.ActivityOrderCreated,
			Maker:        in.Maker,
			CollectionId: in.CollectionId,
			TokenId:      in.TokenId,
			Price:        in.Price,
			OrderId:      orderId,
		}
		return errors.Wrap(tx.Create(activity).Error, "failed on record activity")
	})
	if err != nil {
		return "", err
	}

	xzap.WithContext(ctx).Info("order created",
		zap.String("order_id", orderId), zap.String("maker", in.Maker), zap.Int8("side", side))
	return orderId, nil
}

// CancelOrder 取消挂单，直接消耗 nonce，使对应签名永久失效
func (e *Engine) CancelOrder(ctx context.Context, maker string, side int8, nonce int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	maker = normalize(maker)
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := consumeNonce(tx, maker, side, nonce); err != nil {
			return err
		}

		var order model.Order
		err := tx.Where("maker = ? AND side = ? AND nonce = ?", maker, side, nonce).First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 未入库的意图也允许按 nonce 作废
				return nil
			}
			return errors.Wrap(err, "failed on load order")
		}
		if order.Status != model.OrderStatusOpen {
			return errcode.ErrOrderNotFound
		}
		if err := tx.Model(&model.Order{}).Where("id = ?", order.Id).
			Update("status", model.OrderStatusCancelled).Error; err != nil {
			return errors.Wrap(err, "failed on cancel order")
		}

		activity := &model.Activity{
			ActivityType: model.ActivityOrderCancelled,
			Maker:        maker,
			CollectionId: order.CollectionId,
			TokenId:      order.TokenId,
			Price:        order.Price,
			OrderId:      order.OrderId,
		}
		return errors.Wrap(tx.Create(activity).Error, "failed on record activity")
	})
	if err != nil {
		return err
	}

	xzap.WithContext(ctx).Info("order cancelled",
		zap.String("maker", maker), zap.Int8("side", side), zap.Int64("nonce", nonce))
	return nil
}

// ExpireOrders 把过期的挂单批量置为失效，由后台循环调用
func (e *Engine) ExpireOrders(ctx context.Context) (int64, error) {
	now := e.now().Unix()
	res := e.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ? AND deadline < ?", model.OrderStatusOpen, now).
		Update("status", model.OrderStatusExpired)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "failed on expire orders")
	}
	return res.RowsAffected, nil
}
