package dao

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
)

// OrderFilter 订单簿查询条件
type OrderFilter struct {
	CollectionId int64
	TokenId      string
	Side         int8
	Maker        string
	Status       *int8
	Page         int
	PageSize     int
}

// QueryOrders 查询订单簿
func (d *Dao) QueryOrders(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error) {
	q := d.DB.WithContext(ctx).Model(&model.Order{})
	if filter.CollectionId > 0 {
		q = q.Where("collection_id = ?", filter.CollectionId)
	}
	if filter.TokenId != "" {
		q = q.Where("token_id = ?", filter.TokenId)
	}
	if filter.Side > 0 {
		q = q.Where("side = ?", filter.Side)
	}
	if filter.Maker != "" {
		q = q.Where("maker = ?", filter.Maker)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on count orders")
	}

	var orderBy string
	switch filter.Side {
	case model.SideList:
		orderBy = "price asc, event_time asc" // 卖单低价优先
	case model.SideBid:
		orderBy = "price desc, event_time asc" // 买单高价优先
	default:
		orderBy = "event_time desc"
	}

	var orders []model.Order
	if err := q.Order(orderBy).
		Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize).
		Find(&orders).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on query orders")
	}
	return orders, total, nil
}

// GetOrderById 按订单号查询
func (d *Dao) GetOrderById(ctx context.Context, orderId string) (*model.Order, error) {
	var order model.Order
	if err := d.DB.WithContext(ctx).Where("order_id = ?", orderId).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "failed on query order")
	}
	return &order, nil
}

// QueryTrades 查询成交记录
func (d *Dao) QueryTrades(ctx context.Context, collectionId int64, account string, page, pageSize int) ([]model.Trade, int64, error) {
	q := d.DB.WithContext(ctx).Model(&model.Trade{})
	if collectionId > 0 {
		q = q.Where("collection_id = ?", collectionId)
	}
	if account != "" {
		q = q.Where("seller = ? OR buyer = ?", account, account)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on count trades")
	}

	var trades []model.Trade
	if err := q.Order("trade_time desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&trades).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on query trades")
	}
	return trades, total, nil
}
