package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapTrade/src/engine/assets"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
	"github.com/ProjectsTask/EasySwapTrade/src/service/svc"
	types "github.com/ProjectsTask/EasySwapTrade/src/types/v1"
)

// Deposit 账户充值
func Deposit(ctx context.Context, svcCtx *svc.ServerCtx, param types.DepositParam) error {
	account := common.HexToAddress(param.Account).Hex()
	err := svcCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return assets.Credit(tx, account, param.Asset, param.Amount)
	})
	if err != nil {
		return errors.Wrap(err, "failed on deposit")
	}
	return nil
}

// Withdraw 账户提现，余额不足则拒绝
func Withdraw(ctx context.Context, svcCtx *svc.ServerCtx, param types.WithdrawParam) error {
	account := common.HexToAddress(param.Account).Hex()
	return svcCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return assets.Debit(tx, account, param.Asset, param.Amount)
	})
}

// ApproveAsset 包装资产授权结算引擎托管账户拉取额度
func ApproveAsset(ctx context.Context, svcCtx *svc.ServerCtx, param types.ApproveAssetParam) error {
	owner := common.HexToAddress(param.Owner).Hex()
	err := svcCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return assets.Approve(tx, owner, model.EscrowAccount, model.AssetWrapped, param.Amount)
	})
	if err != nil {
		return errors.Wrap(err, "failed on approve asset")
	}
	return nil
}

// GetBalances 账户两种资产的余额
func GetBalances(ctx context.Context, svcCtx *svc.ServerCtx, account string) ([]types.BalanceInfo, error) {
	balances, err := svcCtx.Dao.GetBalances(ctx, common.HexToAddress(account).Hex())
	if err != nil {
		return nil, err
	}
	list := make([]types.BalanceInfo, 0, len(balances))
	for _, b := range balances {
		list = append(list, types.BalanceInfo{Asset: b.Asset, Amount: b.Amount})
	}
	return list, nil
}
