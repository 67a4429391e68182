package dao

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
)

// GetAuctionById 查询拍卖详情，短缓存
func (d *Dao) GetAuctionById(ctx context.Context, auctionId int64) (*model.Auction, error) {
	key := cacheKey("auction", auctionId)
	if raw, ok := d.readCache(key); ok {
		var a model.Auction
		if err := json.Unmarshal([]byte(raw), &a); err == nil {
			return &a, nil
		}
	}

	var a model.Auction
	if err := d.DB.WithContext(ctx).Where("id = ?", auctionId).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrAuctionNotFound
		}
		return nil, errors.Wrap(err, "failed on query auction")
	}

	if raw, err := json.Marshal(&a); err == nil {
		d.writeCache(key, string(raw), CacheAuctionTTL)
	}
	return &a, nil
}

// DropAuctionCache 拍卖状态变更后清缓存
func (d *Dao) DropAuctionCache(auctionId int64) {
	d.dropCache(cacheKey("auction", auctionId))
}

// ListAuctions 分页列出拍卖，status < 0 表示全部
func (d *Dao) ListAuctions(ctx context.Context, collectionId int64, status int8, page, pageSize int) ([]model.Auction, int64, error) {
	q := d.DB.WithContext(ctx).Model(&model.Auction{})
	if collectionId > 0 {
		q = q.Where("collection_id = ?", collectionId)
	}
	if status >= 0 {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on count auctions")
	}

	var auctions []model.Auction
	if err := q.Order("end_time asc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&auctions).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on list auctions")
	}
	return auctions, total, nil
}

// ListAuctionBids 查询一场拍卖的出价记录
func (d *Dao) ListAuctionBids(ctx context.Context, auctionId int64) ([]model.AuctionBid, error) {
	var bids []model.AuctionBid
	if err := d.DB.WithContext(ctx).
		Where("auction_id = ?", auctionId).
		Order("last_bid desc").
		Find(&bids).Error; err != nil {
		return nil, errors.Wrap(err, "failed on list auction bids")
	}
	return bids, nil
}
