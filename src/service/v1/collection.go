package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/fees"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
	"github.com/ProjectsTask/EasySwapTrade/src/service/svc"
	types "github.com/ProjectsTask/EasySwapTrade/src/types/v1"
)

func toCollectionInfo(c *model.Collection) *types.CollectionInfo {
	return &types.CollectionInfo{
		CollectionId:    c.CollectionId,
		Address:         c.Address,
		Name:            c.Name,
		Symbol:          c.Symbol,
		Creator:         c.Creator,
		RoyaltyBps:      c.RoyaltyBps,
		RoyaltyReceiver: c.RoyaltyReceiver,
		ChainId:         c.ChainId,
		CreateTime:      c.CreateTime,
	}
}

func toItemInfo(i *model.Item) *types.ItemInfo {
	return &types.ItemInfo{
		CollectionId:    i.CollectionId,
		TokenId:         i.TokenId,
		Owner:           i.Owner,
		Approved:        i.Approved,
		EscrowAuctionId: i.EscrowAuctionId,
	}
}

// CreateCollection 登记集合及其版税配置
func CreateCollection(ctx context.Context, svcCtx *svc.ServerCtx, param types.CreateCollectionParam) (*types.CollectionInfo, error) {
	if err := fees.ValidateRoyaltyBps(param.RoyaltyBps); err != nil {
		return nil, err
	}

	royaltyReceiver := ""
	if param.RoyaltyReceiver != "" {
		royaltyReceiver = common.HexToAddress(param.RoyaltyReceiver).Hex()
	}
	address := ""
	if param.Address != "" {
		address = common.HexToAddress(param.Address).Hex()
	}

	id, err := svcCtx.Dao.NextCollectionId(ctx)
	if err != nil {
		return nil, err
	}
	c := model.Collection{
		CollectionId:    id,
		Address:         address,
		Name:            param.Name,
		Symbol:          param.Symbol,
		Creator:         common.HexToAddress(param.Creator).Hex(),
		RoyaltyBps:      param.RoyaltyBps,
		RoyaltyReceiver: royaltyReceiver,
		ChainId:         svcCtx.C.Chain.ID,
	}
	if err := svcCtx.DB.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, errors.Wrap(err, "failed on create collection")
	}
	return toCollectionInfo(&c), nil
}

// GetCollection 集合详情
func GetCollection(ctx context.Context, svcCtx *svc.ServerCtx, collectionId int64) (*types.CollectionInfo, error) {
	c, err := svcCtx.Dao.GetCollectionById(ctx, collectionId)
	if err != nil {
		return nil, err
	}
	return toCollectionInfo(c), nil
}

// ListCollections 集合列表
func ListCollections(ctx context.Context, svcCtx *svc.ServerCtx, page types.PageParam) (*types.PageResult, error) {
	page.Normalize()
	collections, total, err := svcCtx.Dao.ListCollections(ctx, page.Page, page.PageSize)
	if err != nil {
		return nil, err
	}
	list := make([]*types.CollectionInfo, 0, len(collections))
	for i := range collections {
		list = append(list, toCollectionInfo(&collections[i]))
	}
	return &types.PageResult{List: list, Total: total, Page: page.Page}, nil
}

// MintItem 在指定集合下登记 token
func MintItem(ctx context.Context, svcCtx *svc.ServerCtx, collectionId int64, param types.MintItemParam) (*types.ItemInfo, error) {
	if _, err := svcCtx.Dao.GetCollectionById(ctx, collectionId); err != nil {
		return nil, err
	}

	var exists int64
	if err := svcCtx.DB.WithContext(ctx).Model(&model.Item{}).
		Where("collection_id = ? AND token_id = ?", collectionId, param.TokenId).
		Count(&exists).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query item")
	}
	if exists > 0 {
		return nil, errcode.ErrItemAlreadyExists
	}

	item := model.Item{
		CollectionId: collectionId,
		TokenId:      param.TokenId,
		Owner:        common.HexToAddress(param.To).Hex(),
	}
	if err := svcCtx.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, errors.Wrap(err, "failed on create item")
	}
	return toItemInfo(&item), nil
}

// ApproveItem 持有人授权市场处置 token
func ApproveItem(ctx context.Context, svcCtx *svc.ServerCtx, param types.ApproveItemParam) error {
	owner := common.HexToAddress(param.Owner).Hex()
	res := svcCtx.DB.WithContext(ctx).Model(&model.Item{}).
		Where("collection_id = ? and token_id = ? and owner = ?", param.CollectionId, param.TokenId, owner).
		Update("approved", param.Approved)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed on approve item")
	}
	if res.RowsAffected == 0 {
		return errcode.ErrNotApprovedOrOwner
	}
	return nil
}

// GetItem token 详情
func GetItem(ctx context.Context, svcCtx *svc.ServerCtx, collectionId int64, tokenId string) (*types.ItemInfo, error) {
	item, err := svcCtx.Dao.GetItem(ctx, collectionId, tokenId)
	if err != nil {
		return nil, err
	}
	return toItemInfo(item), nil
}

// ListItemsByOwner 按持有人列出 token
func ListItemsByOwner(ctx context.Context, svcCtx *svc.ServerCtx, owner string, page types.PageParam) (*types.PageResult, error) {
	page.Normalize()
	items, total, err := svcCtx.Dao.ListItemsByOwner(ctx, common.HexToAddress(owner).Hex(), page.Page, page.PageSize)
	if err != nil {
		return nil, err
	}
	list := make([]*types.ItemInfo, 0, len(items))
	for i := range items {
		list = append(list, toItemInfo(&items[i]))
	}
	return &types.PageResult{List: list, Total: total, Page: page.Page}, nil
}
