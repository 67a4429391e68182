package service

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/src/config"
	"github.com/ProjectsTask/EasySwapTrade/src/dao"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
	"github.com/ProjectsTask/EasySwapTrade/src/service/svc"
	types "github.com/ProjectsTask/EasySwapTrade/src/types/v1"
)

const (
	adminKeyHex    = "4f3edf983ac636a65a842ce7c78d9aa706d3b113bce9c46f30d7d21715b23b1d"
	intruderKeyHex = "6cbed15c793ce57650b9877cf6fa156fbef513c4e6134f022a85b1ffdd59b2a1"

	govFeeReceiver = "0x3333333333333333333333333333333333333333"
)

func newGovEnv(t *testing.T) (*svc.ServerCtx, *ecdsa.PrivateKey) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))

	key, err := crypto.HexToECDSA(adminKeyHex)
	require.NoError(t, err)

	svcCtx := svc.NewServerCtx(
		svc.WithDB(db),
		svc.WithDao(dao.New(context.Background(), db, nil)),
	)
	svcCtx.C = &config.Config{
		Governance: config.GovernanceCfg{Admin: crypto.PubkeyToAddress(key.PublicKey).Hex()},
	}
	return svcCtx, key
}

func signGov(t *testing.T, key *ecdsa.PrivateKey, msg []byte) string {
	sig, err := crypto.Sign(accounts.TextHash(msg), key)
	require.NoError(t, err)
	sig[64] += 27
	return hexutil.Encode(sig)
}

func marketConfig(t *testing.T, svcCtx *svc.ServerCtx) model.MarketConfig {
	var cfg model.MarketConfig
	require.NoError(t, svcCtx.DB.Where("id = 1").First(&cfg).Error)
	return cfg
}

func setPausedParam(t *testing.T, key *ecdsa.PrivateKey, paused bool, nonce int64) types.SetPausedParam {
	return types.SetPausedParam{
		Paused:    paused,
		Nonce:     nonce,
		Signature: signGov(t, key, govMessage(types.GovOpSetPaused, paused, nonce)),
	}
}

func TestSetFeeAppliesSignedChange(t *testing.T) {
	svcCtx, key := newGovEnv(t)

	msg := govMessage(types.GovOpSetFee, int64(300), govFeeReceiver, int64(1))
	err := SetFee(context.Background(), svcCtx, types.SetFeeParam{
		FeeBps:      300,
		FeeReceiver: govFeeReceiver,
		Nonce:       1,
		Signature:   signGov(t, key, msg),
	})
	require.NoError(t, err)

	cfg := marketConfig(t, svcCtx)
	require.Equal(t, int64(300), cfg.FeeBps)
	require.Equal(t, int64(1), cfg.GovNonce)
}

func TestGovSignatureNotReplayable(t *testing.T) {
	svcCtx, key := newGovEnv(t)

	param := setPausedParam(t, key, true, 1)
	require.NoError(t, SetPaused(context.Background(), svcCtx, param))

	// 同一签名重放被拒，暂停状态不被翻转回去
	require.NoError(t, SetPaused(context.Background(), svcCtx, setPausedParam(t, key, false, 2)))
	err := SetPaused(context.Background(), svcCtx, param)
	require.True(t, errcode.Is(err, errcode.ErrNonceAlreadyUsed))
	require.False(t, marketConfig(t, svcCtx).Paused)
}

func TestGovStaleNonceRejected(t *testing.T) {
	svcCtx, key := newGovEnv(t)

	require.NoError(t, SetPaused(context.Background(), svcCtx, setPausedParam(t, key, true, 5)))

	// 历史 epoch 的签名 (更小的 nonce) 不再有效
	err := SetPaused(context.Background(), svcCtx, setPausedParam(t, key, false, 3))
	require.True(t, errcode.Is(err, errcode.ErrNonceAlreadyUsed))
}

func TestGovRejectsNonAdminSigner(t *testing.T) {
	svcCtx, _ := newGovEnv(t)
	intruder, err := crypto.HexToECDSA(intruderKeyHex)
	require.NoError(t, err)

	err = SetPaused(context.Background(), svcCtx, setPausedParam(t, intruder, true, 1))
	require.True(t, errcode.Is(err, errcode.ErrUnauthorized))
	require.False(t, marketConfig(t, svcCtx).Paused)
}

func TestGovNonceBoundIntoMessage(t *testing.T) {
	svcCtx, key := newGovEnv(t)

	// 签名覆盖 nonce=1，改用 nonce=2 提交即签名失效
	param := setPausedParam(t, key, true, 1)
	param.Nonce = 2
	err := SetPaused(context.Background(), svcCtx, param)
	require.True(t, errcode.Is(err, errcode.ErrUnauthorized))
}
