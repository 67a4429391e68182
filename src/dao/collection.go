package dao

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
)

// GetCollectionById 按集合 ID 查询，带缓存
func (d *Dao) GetCollectionById(ctx context.Context, collectionId int64) (*model.Collection, error) {
	key := cacheKey("collection", collectionId)
	if raw, ok := d.readCache(key); ok {
		var c model.Collection
		if err := json.Unmarshal([]byte(raw), &c); err == nil {
			return &c, nil
		}
	}

	var c model.Collection
	if err := d.DB.WithContext(ctx).Where("collection_id = ?", collectionId).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrCollectionNotFound
		}
		return nil, errors.Wrap(err, "failed on query collection")
	}

	if raw, err := json.Marshal(&c); err == nil {
		d.writeCache(key, string(raw), CacheCollectionTTL)
	}
	return &c, nil
}

// ListCollections 分页列出集合
func (d *Dao) ListCollections(ctx context.Context, page, pageSize int) ([]model.Collection, int64, error) {
	var total int64
	if err := d.DB.WithContext(ctx).Model(&model.Collection{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on count collections")
	}

	var collections []model.Collection
	if err := d.DB.WithContext(ctx).
		Order("create_time desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&collections).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on list collections")
	}
	return collections, total, nil
}

// NextCollectionId 工厂分配递增集合 ID
func (d *Dao) NextCollectionId(ctx context.Context) (int64, error) {
	var maxId int64
	err := d.DB.WithContext(ctx).Model(&model.Collection{}).
		Select("COALESCE(MAX(collection_id), 0)").Scan(&maxId).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed on query max collection id")
	}
	return maxId + 1, nil
}

// DropCollectionCache 集合配置变更后清缓存
func (d *Dao) DropCollectionCache(collectionId int64) {
	d.dropCache(cacheKey("collection", collectionId))
}

// GetItem 查询 token
func (d *Dao) GetItem(ctx context.Context, collectionId int64, tokenId string) (*model.Item, error) {
	var item model.Item
	if err := d.DB.WithContext(ctx).
		Where("collection_id = ? AND token_id = ?", collectionId, tokenId).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrItemNotFound
		}
		return nil, errors.Wrap(err, "failed on query item")
	}
	return &item, nil
}

// ListItemsByOwner 查询账户持有的 token
func (d *Dao) ListItemsByOwner(ctx context.Context, owner string, page, pageSize int) ([]model.Item, int64, error) {
	var total int64
	q := d.DB.WithContext(ctx).Model(&model.Item{}).Where("owner = ?", owner)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on count items")
	}

	var items []model.Item
	if err := q.Order("id desc").Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&items).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on list items")
	}
	return items, total, nil
}
