package service

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/fees"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
	"github.com/ProjectsTask/EasySwapTrade/src/service/svc"
	types "github.com/ProjectsTask/EasySwapTrade/src/types/v1"
)

// govMessage 治理操作的待签消息
// operation 绑定具体操作防止签名挪用，末位 nonce 绑定一次使用防止重放
func govMessage(operation string, args ...interface{}) []byte {
	msg := operation
	for _, a := range args {
		msg += fmt.Sprintf(":%v", a)
	}
	return []byte(msg)
}

// consumeGovNonce 治理 nonce 单调递增，旧签名在消耗后作废
func consumeGovNonce(tx *gorm.DB, nonce int64) error {
	res := tx.Model(&model.MarketConfig{}).
		Where("id = 1 AND gov_nonce < ?", nonce).
		Update("gov_nonce", nonce)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed on consume governance nonce")
	}
	if res.RowsAffected == 0 {
		return errcode.ErrNonceAlreadyUsed
	}
	return nil
}

// verifyGovSignature 校验治理签名 (EIP-191 personal_sign)，恢复出的地址必须是配置的管理员
func verifyGovSignature(svcCtx *svc.ServerCtx, message []byte, signature string) error {
	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != 65 {
		return errcode.ErrInvalidSignature
	}
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash(message), sig)
	if err != nil {
		return errcode.ErrInvalidSignature
	}
	signer := crypto.PubkeyToAddress(*pub)
	admin := common.HexToAddress(svcCtx.C.Governance.Admin)
	if signer != admin {
		return errcode.ErrUnauthorized
	}
	return nil
}

// SetFee 治理层调整平台费率与接收地址
func SetFee(ctx context.Context, svcCtx *svc.ServerCtx, param types.SetFeeParam) error {
	if err := fees.ValidateFeeBps(param.FeeBps); err != nil {
		return err
	}
	receiver := common.HexToAddress(param.FeeReceiver).Hex()
	msg := govMessage(types.GovOpSetFee, param.FeeBps, receiver, param.Nonce)
	if err := verifyGovSignature(svcCtx, msg, param.Signature); err != nil {
		return err
	}

	return svcCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := consumeGovNonce(tx, param.Nonce); err != nil {
			return err
		}
		return errors.Wrap(tx.Model(&model.MarketConfig{}).
			Where("id = 1").
			Updates(map[string]interface{}{"fee_bps": param.FeeBps, "fee_receiver": receiver}).Error,
			"failed on update fee config")
	})
}

// SetRoyalty 治理层调整集合版税
func SetRoyalty(ctx context.Context, svcCtx *svc.ServerCtx, param types.SetRoyaltyParam) error {
	if err := fees.ValidateRoyaltyBps(param.RoyaltyBps); err != nil {
		return err
	}
	if _, err := svcCtx.Dao.GetCollectionById(ctx, param.CollectionId); err != nil {
		return err
	}
	receiver := common.HexToAddress(param.RoyaltyReceiver).Hex()
	msg := govMessage(types.GovOpSetRoyalty, param.CollectionId, param.RoyaltyBps, receiver, param.Nonce)
	if err := verifyGovSignature(svcCtx, msg, param.Signature); err != nil {
		return err
	}

	err := svcCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := consumeGovNonce(tx, param.Nonce); err != nil {
			return err
		}
		return errors.Wrap(tx.Model(&model.Collection{}).
			Where("collection_id = ?", param.CollectionId).
			Updates(map[string]interface{}{"royalty_bps": param.RoyaltyBps, "royalty_receiver": receiver}).Error,
			"failed on update royalty config")
	})
	if err != nil {
		return err
	}
	svcCtx.Dao.DropCollectionCache(param.CollectionId)
	return nil
}

// SetPaused 治理层暂停/恢复撮合，暂停只拦截新交易，结算与提款不受影响
func SetPaused(ctx context.Context, svcCtx *svc.ServerCtx, param types.SetPausedParam) error {
	msg := govMessage(types.GovOpSetPaused, param.Paused, param.Nonce)
	if err := verifyGovSignature(svcCtx, msg, param.Signature); err != nil {
		return err
	}

	return svcCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := consumeGovNonce(tx, param.Nonce); err != nil {
			return err
		}
		return errors.Wrap(tx.Model(&model.MarketConfig{}).
			Where("id = 1").
			Update("paused", param.Paused).Error,
			"failed on update pause flag")
	})
}

// GetMarketConfig 当前市场参数
func GetMarketConfig(ctx context.Context, svcCtx *svc.ServerCtx) (*types.MarketConfigInfo, error) {
	cfg, err := svcCtx.Dao.GetMarketConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &types.MarketConfigInfo{
		FeeBps:      cfg.FeeBps,
		FeeReceiver: cfg.FeeReceiver,
		Paused:      cfg.Paused,
	}, nil
}
