package settlement

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/assets"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/eip712"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/fees"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
)

const (
	sellerKeyHex = "4f3edf983ac636a65a842ce7c78d9aa706d3b113bce9c46f30d7d21715b23b1d"
	buyerKeyHex  = "6cbed15c793ce57650b9877cf6fa156fbef513c4e6134f022a85b1ffdd59b2a1"

	royaltyReceiver = "0x2222222222222222222222222222222222222222"
	feeReceiver     = "0x3333333333333333333333333333333333333333"
)

type testEnv struct {
	db       *gorm.DB
	engine   *Engine
	verifier *eip712.Verifier
	now      time.Time

	sellerKey *ecdsa.PrivateKey
	buyerKey  *ecdsa.PrivateKey
	seller    string
	buyer     string
}

func newTestEnv(t *testing.T) *testEnv {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))

	sellerKey, err := crypto.HexToECDSA(sellerKeyHex)
	require.NoError(t, err)
	buyerKey, err := crypto.HexToECDSA(buyerKeyHex)
	require.NoError(t, err)

	env := &testEnv{
		db:        db,
		verifier:  eip712.NewVerifier("EasySwapTrade", "1", 11155111, "0x0000000000000000000000000000000000000e5c"),
		now:       time.Unix(1700000000, 0),
		sellerKey: sellerKey,
		buyerKey:  buyerKey,
		seller:    crypto.PubkeyToAddress(sellerKey.PublicKey).Hex(),
		buyer:     crypto.PubkeyToAddress(buyerKey.PublicKey).Hex(),
	}
	env.engine = New(db, env.verifier, fees.NewResolver(), WithClock(func() time.Time { return env.now }))

	// 集合 1%, 平台费 5%
	require.NoError(t, db.Create(&model.Collection{
		CollectionId: 1, Name: "test", Creator: env.seller,
		RoyaltyBps: 100, RoyaltyReceiver: royaltyReceiver, ChainId: 11155111,
	}).Error)
	require.NoError(t, db.Model(&model.MarketConfig{}).Where("id = 1").
		Updates(map[string]interface{}{"fee_bps": 500, "fee_receiver": feeReceiver}).Error)
	require.NoError(t, db.Create(&model.Item{
		CollectionId: 1, TokenId: "42", Owner: env.seller, Approved: true,
	}).Error)
	return env
}

func (env *testEnv) fund(t *testing.T, account, asset string, amount int64) {
	require.NoError(t, assets.Credit(env.db, account, asset, decimal.NewFromInt(amount)))
}

func (env *testEnv) balance(t *testing.T, account, asset string) decimal.Decimal {
	b, err := assets.BalanceOf(env.db, account, asset)
	require.NoError(t, err)
	return b
}

func (env *testEnv) item(t *testing.T, tokenId string) model.Item {
	var item model.Item
	require.NoError(t, env.db.Where("collection_id = 1 AND token_id = ?", tokenId).First(&item).Error)
	return item
}

func (env *testEnv) signedOrder(t *testing.T, price int64) (Intent, string) {
	order := Intent{
		Maker:        env.seller,
		CollectionId: 1,
		TokenId:      "42",
		Price:        decimal.NewFromInt(price),
		Nonce:        1,
		Deadline:     env.now.Add(time.Hour).Unix(),
	}
	sig := env.sign(t, eip712.TypeOrder, env.sellerKey, order)
	return order, sig
}

func (env *testEnv) signedOffer(t *testing.T, price int64) (Intent, string) {
	offer := Intent{
		Maker:        env.buyer,
		CollectionId: 1,
		TokenId:      "42",
		Price:        decimal.NewFromInt(price),
		Nonce:        1,
		Deadline:     env.now.Add(time.Hour).Unix(),
	}
	sig := env.sign(t, eip712.TypeOffer, env.buyerKey, offer)
	return offer, sig
}

func (env *testEnv) sign(t *testing.T, primaryType string, key *ecdsa.PrivateKey, in Intent) string {
	typed, err := toTyped(in)
	require.NoError(t, err)
	sig, err := env.verifier.Sign(primaryType, typed, key)
	require.NoError(t, err)
	return sig
}

func TestExecuteOrderSplitsPayment(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, env.buyer, model.AssetNative, 100000)

	order, sig := env.signedOrder(t, 100000)
	trade, err := env.engine.ExecuteOrder(context.Background(), order, sig, env.buyer, decimal.NewFromInt(100000))
	require.NoError(t, err)

	require.True(t, env.balance(t, env.buyer, model.AssetNative).IsZero())
	require.True(t, env.balance(t, env.seller, model.AssetNative).Equal(decimal.NewFromInt(94000)))
	require.True(t, env.balance(t, royaltyReceiver, model.AssetNative).Equal(decimal.NewFromInt(1000)))
	require.True(t, env.balance(t, feeReceiver, model.AssetNative).Equal(decimal.NewFromInt(5000)))

	item := env.item(t, "42")
	require.Equal(t, env.buyer, item.Owner)
	require.False(t, item.Approved)

	require.True(t, trade.SellerProceeds.Equal(decimal.NewFromInt(94000)))
	require.Equal(t, model.AssetNative, trade.Asset)
}

func TestExecuteOrderSmallPriceSplit(t *testing.T) {
	env := newTestEnv(t)
	// 版税 5%, 平台费 1%, 价格 1000
	require.NoError(t, env.db.Model(&model.Collection{}).Where("collection_id = 1").
		Update("royalty_bps", 500).Error)
	require.NoError(t, env.db.Model(&model.MarketConfig{}).Where("id = 1").
		Update("fee_bps", 100).Error)
	env.fund(t, env.buyer, model.AssetNative, 1000)

	order, sig := env.signedOrder(t, 1000)
	_, err := env.engine.ExecuteOrder(context.Background(), order, sig, env.buyer, decimal.NewFromInt(1000))
	require.NoError(t, err)

	require.True(t, env.balance(t, royaltyReceiver, model.AssetNative).Equal(decimal.NewFromInt(50)))
	require.True(t, env.balance(t, feeReceiver, model.AssetNative).Equal(decimal.NewFromInt(10)))
	require.True(t, env.balance(t, env.seller, model.AssetNative).Equal(decimal.NewFromInt(940)))
}

func TestExecuteOrderReceiverlessRoyaltyConserved(t *testing.T) {
	env := newTestEnv(t)
	// 版税有 bps 无接收地址：份额归卖方，账本总额不变
	require.NoError(t, env.db.Model(&model.Collection{}).Where("collection_id = 1").
		Update("royalty_receiver", "").Error)
	env.fund(t, env.buyer, model.AssetNative, 100000)

	order, sig := env.signedOrder(t, 100000)
	_, err := env.engine.ExecuteOrder(context.Background(), order, sig, env.buyer, decimal.NewFromInt(100000))
	require.NoError(t, err)

	require.True(t, env.balance(t, env.seller, model.AssetNative).Equal(decimal.NewFromInt(95000)))
	require.True(t, env.balance(t, feeReceiver, model.AssetNative).Equal(decimal.NewFromInt(5000)))

	var total decimal.Decimal
	require.NoError(t, env.db.Model(&model.Balance{}).Where("asset = ?", model.AssetNative).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error)
	require.True(t, total.Equal(decimal.NewFromInt(100000)))
}

func TestExecuteOrderReplayRejected(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, env.buyer, model.AssetNative, 200000)

	order, sig := env.signedOrder(t, 100000)
	_, err := env.engine.ExecuteOrder(context.Background(), order, sig, env.buyer, decimal.NewFromInt(100000))
	require.NoError(t, err)

	_, err = env.engine.ExecuteOrder(context.Background(), order, sig, env.buyer, decimal.NewFromInt(100000))
	require.True(t, errcode.Is(err, errcode.ErrNonceAlreadyUsed))
}

func TestExecuteOrderExpired(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, env.buyer, model.AssetNative, 100000)

	order, sig := env.signedOrder(t, 100000)
	env.now = env.now.Add(2 * time.Hour)
	_, err := env.engine.ExecuteOrder(context.Background(), order, sig, env.buyer, decimal.NewFromInt(100000))
	require.True(t, errcode.Is(err, errcode.ErrOrderExpired))
}

func TestExecuteOrderWrongPayment(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, env.buyer, model.AssetNative, 200000)

	order, sig := env.signedOrder(t, 100000)
	_, err := env.engine.ExecuteOrder(context.Background(), order, sig, env.buyer, decimal.NewFromInt(99999))
	require.True(t, errcode.Is(err, errcode.ErrIncorrectPayment))

	_, err = env.engine.ExecuteOrder(context.Background(), order, sig, env.buyer, decimal.NewFromInt(100001))
	require.True(t, errcode.Is(err, errcode.ErrIncorrectPayment))

	// 失败回滚后 nonce 未被消耗，正确付款仍可成交
	_, err = env.engine.ExecuteOrder(context.Background(), order, sig, env.buyer, decimal.NewFromInt(100000))
	require.NoError(t, err)
}

func TestExecuteOrderTamperedSignature(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, env.buyer, model.AssetNative, 100000)

	order, sig := env.signedOrder(t, 100000)
	order.Price = decimal.NewFromInt(50000)
	_, err := env.engine.ExecuteOrder(context.Background(), order, sig, env.buyer, decimal.NewFromInt(50000))
	require.True(t, errcode.Is(err, errcode.ErrInvalidSignature))
}

func TestExecuteOrderNotApproved(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, env.buyer, model.AssetNative, 100000)
	require.NoError(t, env.db.Model(&model.Item{}).
		Where("collection_id = 1 AND token_id = '42'").
		Update("approved", false).Error)

	order, sig := env.signedOrder(t, 100000)
	_, err := env.engine.ExecuteOrder(context.Background(), order, sig, env.buyer, decimal.NewFromInt(100000))
	require.True(t, errcode.Is(err, errcode.ErrNotApprovedOrOwner))
}

func TestExecuteOrderInsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, env.buyer, model.AssetNative, 99999)

	order, sig := env.signedOrder(t, 100000)
	_, err := env.engine.ExecuteOrder(context.Background(), order, sig, env.buyer, decimal.NewFromInt(100000))
	require.True(t, errcode.Is(err, errcode.ErrInsufficientBalance))
}

func TestExecuteOrderWhilePaused(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, env.buyer, model.AssetNative, 100000)
	require.NoError(t, env.db.Model(&model.MarketConfig{}).Where("id = 1").
		Update("paused", true).Error)

	order, sig := env.signedOrder(t, 100000)
	_, err := env.engine.ExecuteOrder(context.Background(), order, sig, env.buyer, decimal.NewFromInt(100000))
	require.True(t, errcode.Is(err, errcode.ErrTradingPaused))
}

func TestExecuteOfferPullsWrappedAsset(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, env.buyer, model.AssetWrapped, 100000)
	require.NoError(t, assets.Approve(env.db, env.buyer, model.EscrowAccount,
		model.AssetWrapped, decimal.NewFromInt(100000)))

	offer, sig := env.signedOffer(t, 100000)
	trade, err := env.engine.ExecuteOffer(context.Background(), offer, sig, env.seller)
	require.NoError(t, err)

	require.True(t, env.balance(t, env.buyer, model.AssetWrapped).IsZero())
	require.True(t, env.balance(t, env.seller, model.AssetWrapped).Equal(decimal.NewFromInt(94000)))
	require.True(t, env.balance(t, royaltyReceiver, model.AssetWrapped).Equal(decimal.NewFromInt(1000)))
	require.True(t, env.balance(t, feeReceiver, model.AssetWrapped).Equal(decimal.NewFromInt(5000)))

	item := env.item(t, "42")
	require.Equal(t, env.buyer, item.Owner)
	require.Equal(t, model.AssetWrapped, trade.Asset)

	// 授权额度随成交消耗
	allowance, err := assets.AllowanceOf(env.db, env.buyer, model.EscrowAccount, model.AssetWrapped)
	require.NoError(t, err)
	require.True(t, allowance.IsZero())
}

func TestExecuteOfferInsufficientAllowance(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, env.buyer, model.AssetWrapped, 100000)
	require.NoError(t, assets.Approve(env.db, env.buyer, model.EscrowAccount,
		model.AssetWrapped, decimal.NewFromInt(99999)))

	offer, sig := env.signedOffer(t, 100000)
	_, err := env.engine.ExecuteOffer(context.Background(), offer, sig, env.seller)
	require.True(t, errcode.Is(err, errcode.ErrInsufficientAllowance))
}

func TestOrderAndOfferNoncesAreIndependent(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, env.buyer, model.AssetNative, 100000)

	// 同一 nonce 在 List 与 Bid 两个命名空间互不影响
	order, sig := env.signedOrder(t, 100000)
	_, err := env.engine.ExecuteOrder(context.Background(), order, sig, env.buyer, decimal.NewFromInt(100000))
	require.NoError(t, err)

	// token 回到买方手里后再挂 Offer 卖回去
	require.NoError(t, env.db.Model(&model.Item{}).
		Where("collection_id = 1 AND token_id = '42'").
		Update("approved", true).Error)
	env.fund(t, env.buyer, model.AssetWrapped, 100000)
	require.NoError(t, assets.Approve(env.db, env.buyer, model.EscrowAccount,
		model.AssetWrapped, decimal.NewFromInt(100000)))

	offer := Intent{
		Maker: env.buyer, CollectionId: 1, TokenId: "42",
		Price: decimal.NewFromInt(100000), Nonce: 1,
		Deadline: env.now.Add(time.Hour).Unix(),
	}
	offerSig := env.sign(t, eip712.TypeOffer, env.buyerKey, offer)
	_, err = env.engine.ExecuteOffer(context.Background(), offer, offerSig, env.buyer)
	require.NoError(t, err)
}
