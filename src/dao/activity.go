package dao

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasySwapTrade/src/model"
)

// ActivityFilter 活动流水查询条件
type ActivityFilter struct {
	CollectionId  int64
	TokenId       string
	Account       string
	ActivityTypes []int8
	Page          int
	PageSize      int
}

// QueryActivities 活动流水查询，供链下观察者重建状态
func (d *Dao) QueryActivities(ctx context.Context, filter ActivityFilter) ([]model.Activity, int64, error) {
	q := d.DB.WithContext(ctx).Model(&model.Activity{})
	if filter.CollectionId > 0 {
		q = q.Where("collection_id = ?", filter.CollectionId)
	}
	if filter.TokenId != "" {
		q = q.Where("token_id = ?", filter.TokenId)
	}
	if filter.Account != "" {
		q = q.Where("maker = ? OR taker = ?", filter.Account, filter.Account)
	}
	if len(filter.ActivityTypes) > 0 {
		q = q.Where("activity_type IN ?", filter.ActivityTypes)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on count activities")
	}

	var activities []model.Activity
	if err := q.Order("event_time desc, id desc").
		Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize).
		Find(&activities).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on query activities")
	}
	return activities, total, nil
}

// GetBalances 查询账户全部资产余额
func (d *Dao) GetBalances(ctx context.Context, account string) ([]model.Balance, error) {
	var balances []model.Balance
	if err := d.DB.WithContext(ctx).
		Where("account = ?", account).
		Find(&balances).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query balances")
	}
	return balances, nil
}

// GetMarketConfig 查询全局市场参数
func (d *Dao) GetMarketConfig(ctx context.Context) (*model.MarketConfig, error) {
	var cfg model.MarketConfig
	if err := d.DB.WithContext(ctx).Where("id = 1").First(&cfg).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query market config")
	}
	return &cfg, nil
}
