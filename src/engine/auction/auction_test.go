package auction

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/assets"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/fees"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
)

const (
	seller  = "0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1"
	bidderA = "0xFFcf8FDEE72ac11b5c542428B35EEF5769C409f0"
	bidderB = "0x22d491Bde2303f2f43325b2108D26f1eAbA1e32b"

	royaltyReceiver = "0x2222222222222222222222222222222222222222"
	feeReceiver     = "0x3333333333333333333333333333333333333333"
)

type testEnv struct {
	db     *gorm.DB
	engine *Engine
	now    time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))

	env := &testEnv{db: db, now: time.Unix(1700000000, 0)}
	env.engine = New(db, fees.NewResolver(), WithClock(func() time.Time { return env.now }))

	// 集合 1%, 平台费 5%
	require.NoError(t, db.Create(&model.Collection{
		CollectionId: 1, Name: "test", Creator: seller,
		RoyaltyBps: 100, RoyaltyReceiver: royaltyReceiver, ChainId: 11155111,
	}).Error)
	require.NoError(t, db.Model(&model.MarketConfig{}).Where("id = 1").
		Updates(map[string]interface{}{"fee_bps": 500, "fee_receiver": feeReceiver}).Error)
	require.NoError(t, db.Create(&model.Item{
		CollectionId: 1, TokenId: "42", Owner: seller, Approved: true,
	}).Error)
	return env
}

func (env *testEnv) fund(t *testing.T, account string, amount int64) {
	require.NoError(t, assets.Credit(env.db, account, model.AssetNative, decimal.NewFromInt(amount)))
}

func (env *testEnv) balance(t *testing.T, account string) decimal.Decimal {
	b, err := assets.BalanceOf(env.db, account, model.AssetNative)
	require.NoError(t, err)
	return b
}

func (env *testEnv) item(t *testing.T) model.Item {
	var item model.Item
	require.NoError(t, env.db.Where("collection_id = 1 AND token_id = '42'").First(&item).Error)
	return item
}

// createAuction 起拍价 100000, 加价 10%, 1 小时
func (env *testEnv) createAuction(t *testing.T) *model.Auction {
	a, err := env.engine.Create(context.Background(), seller, 1, "42",
		decimal.NewFromInt(100000), time.Hour, 1000)
	require.NoError(t, err)
	return a
}

func TestCreateEscrowsItem(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAuction(t)

	item := env.item(t)
	require.Equal(t, model.EscrowAccount, item.Owner)
	require.Equal(t, a.Id, item.EscrowAuctionId)
	require.False(t, item.Approved)

	// 托管中的 token 不能再次开拍
	_, err := env.engine.Create(context.Background(), seller, 1, "42",
		decimal.NewFromInt(100000), time.Hour, 1000)
	require.True(t, errcode.Is(err, errcode.ErrNotApprovedOrOwner))
}

func TestCreateBounds(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.engine.Create(context.Background(), seller, 1, "42",
		decimal.NewFromInt(100000), 29*time.Minute, 1000)
	require.True(t, errcode.Is(err, errcode.ErrInvalidDuration))

	_, err = env.engine.Create(context.Background(), seller, 1, "42",
		decimal.NewFromInt(100000), 8*24*time.Hour, 1000)
	require.True(t, errcode.Is(err, errcode.ErrInvalidDuration))

	_, err = env.engine.Create(context.Background(), seller, 1, "42",
		decimal.NewFromInt(100000), time.Hour, 499)
	require.True(t, errcode.Is(err, errcode.ErrInvalidIncrement))

	_, err = env.engine.Create(context.Background(), seller, 1, "42",
		decimal.NewFromInt(100000), time.Hour, 5001)
	require.True(t, errcode.Is(err, errcode.ErrInvalidIncrement))

	_, err = env.engine.Create(context.Background(), seller, 1, "42",
		decimal.NewFromInt(99), time.Hour, 1000)
	require.True(t, errcode.Is(err, errcode.ErrPriceTooLow))
}

func TestLowStartPriceBidLadder(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, bidderA, 100)
	env.fund(t, bidderB, 110)

	// 起拍价 100, 加价 10%
	a, err := env.engine.Create(context.Background(), seller, 1, "42",
		decimal.NewFromInt(100), time.Hour, 1000)
	require.NoError(t, err)

	_, err = env.engine.PlaceBid(context.Background(), a.Id, bidderA, decimal.NewFromInt(100))
	require.NoError(t, err)

	_, err = env.engine.PlaceBid(context.Background(), a.Id, bidderB, decimal.NewFromInt(105))
	require.True(t, errcode.Is(err, errcode.ErrBidTooLow))

	_, err = env.engine.PlaceBid(context.Background(), a.Id, bidderB, decimal.NewFromInt(110))
	require.NoError(t, err)

	env.now = time.Unix(a.EndTime, 0)
	trade, err := env.engine.Settle(context.Background(), a.Id)
	require.NoError(t, err)
	require.Equal(t, bidderB, trade.Buyer)
	require.True(t, trade.Price.Equal(decimal.NewFromInt(110)))

	// 落败方的 100 可全额取回
	amount, err := env.engine.WithdrawFailedBid(context.Background(), a.Id, bidderA)
	require.NoError(t, err)
	require.True(t, amount.Equal(decimal.NewFromInt(100)))
	require.True(t, env.balance(t, bidderA).Equal(decimal.NewFromInt(100)))
}

func TestBidIncrementRules(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAuction(t)
	env.fund(t, bidderA, 100000)
	env.fund(t, bidderB, 110000)

	// 首笔出价只需达到起拍价
	_, err := env.engine.PlaceBid(context.Background(), a.Id, bidderA, decimal.NewFromInt(99999))
	require.True(t, errcode.Is(err, errcode.ErrBidTooLow))

	_, err = env.engine.PlaceBid(context.Background(), a.Id, bidderA, decimal.NewFromInt(100000))
	require.NoError(t, err)
	require.True(t, env.balance(t, bidderA).IsZero())

	// 10% 加价幅度: 下一口至少 110000
	_, err = env.engine.PlaceBid(context.Background(), a.Id, bidderB, decimal.NewFromInt(105000))
	require.True(t, errcode.Is(err, errcode.ErrBidTooLow))

	updated, err := env.engine.PlaceBid(context.Background(), a.Id, bidderB, decimal.NewFromInt(110000))
	require.NoError(t, err)
	require.Equal(t, bidderB, updated.HighestBidder)
	require.Equal(t, int64(2), updated.BidCount)
}

func TestBidExtendsNearEnd(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAuction(t)
	env.fund(t, bidderA, 100000)
	env.fund(t, bidderB, 110000)

	end := a.EndTime

	// 距结束还有 10 分钟，出价不延时
	env.now = time.Unix(end, 0).Add(-10 * time.Minute)
	updated, err := env.engine.PlaceBid(context.Background(), a.Id, bidderA, decimal.NewFromInt(100000))
	require.NoError(t, err)
	require.Equal(t, end, updated.EndTime)

	// 最后 1 分钟内的出价把结束时间推到出价时刻 + 5 分钟
	env.now = time.Unix(end, 0).Add(-time.Minute)
	updated, err = env.engine.PlaceBid(context.Background(), a.Id, bidderB, decimal.NewFromInt(110000))
	require.NoError(t, err)
	require.Equal(t, env.now.Add(ExtendWindow).Unix(), updated.EndTime)
	require.True(t, updated.EndTime > end)
}

func TestBidAfterEndRejected(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAuction(t)
	env.fund(t, bidderA, 100000)

	env.now = time.Unix(a.EndTime, 0)
	_, err := env.engine.PlaceBid(context.Background(), a.Id, bidderA, decimal.NewFromInt(100000))
	require.True(t, errcode.Is(err, errcode.ErrAuctionEnded))
}

func TestSettleWithWinner(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAuction(t)
	env.fund(t, bidderA, 100000)
	env.fund(t, bidderB, 110000)

	_, err := env.engine.PlaceBid(context.Background(), a.Id, bidderA, decimal.NewFromInt(100000))
	require.NoError(t, err)
	_, err = env.engine.PlaceBid(context.Background(), a.Id, bidderB, decimal.NewFromInt(110000))
	require.NoError(t, err)

	// 未到期不可结算
	_, err = env.engine.Settle(context.Background(), a.Id)
	require.True(t, errcode.Is(err, errcode.ErrAuctionNotEnded))

	env.now = time.Unix(a.EndTime, 0)
	trade, err := env.engine.Settle(context.Background(), a.Id)
	require.NoError(t, err)
	require.Equal(t, bidderB, trade.Buyer)
	require.True(t, trade.Price.Equal(decimal.NewFromInt(110000)))

	// 110000 → royalty 1100, fee 5500, seller 103400
	require.True(t, env.balance(t, seller).Equal(decimal.NewFromInt(103400)))
	require.True(t, env.balance(t, royaltyReceiver).Equal(decimal.NewFromInt(1100)))
	require.True(t, env.balance(t, feeReceiver).Equal(decimal.NewFromInt(5500)))

	item := env.item(t)
	require.Equal(t, bidderB, item.Owner)
	require.Equal(t, int64(0), item.EscrowAuctionId)

	// 再次结算拒绝
	_, err = env.engine.Settle(context.Background(), a.Id)
	require.True(t, errcode.Is(err, errcode.ErrAlreadySettled))

	// 被反超的出价在结算后仍可取回
	amount, err := env.engine.WithdrawFailedBid(context.Background(), a.Id, bidderA)
	require.NoError(t, err)
	require.True(t, amount.Equal(decimal.NewFromInt(100000)))
	require.True(t, env.balance(t, bidderA).Equal(decimal.NewFromInt(100000)))
}

func TestSettleNoBidsReturnsItem(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAuction(t)

	env.now = time.Unix(a.EndTime, 0)
	trade, err := env.engine.Settle(context.Background(), a.Id)
	require.NoError(t, err)
	require.Nil(t, trade)

	item := env.item(t)
	require.Equal(t, seller, item.Owner)
	require.Equal(t, int64(0), item.EscrowAuctionId)
	require.True(t, env.balance(t, seller).IsZero())
}

func TestWithdrawExactlyOnce(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAuction(t)
	env.fund(t, bidderA, 100000)
	env.fund(t, bidderB, 110000)

	_, err := env.engine.PlaceBid(context.Background(), a.Id, bidderA, decimal.NewFromInt(100000))
	require.NoError(t, err)

	// 当前最高出价不可取回
	_, err = env.engine.WithdrawFailedBid(context.Background(), a.Id, bidderA)
	require.True(t, errcode.Is(err, errcode.ErrNothingToWithdraw))

	_, err = env.engine.PlaceBid(context.Background(), a.Id, bidderB, decimal.NewFromInt(110000))
	require.NoError(t, err)

	// 被反超后可取回，且只能取一次
	amount, err := env.engine.WithdrawFailedBid(context.Background(), a.Id, bidderA)
	require.NoError(t, err)
	require.True(t, amount.Equal(decimal.NewFromInt(100000)))

	_, err = env.engine.WithdrawFailedBid(context.Background(), a.Id, bidderA)
	require.True(t, errcode.Is(err, errcode.ErrNothingToWithdraw))

	// 无出价记录的账户直接拒绝
	_, err = env.engine.WithdrawFailedBid(context.Background(), a.Id, seller)
	require.True(t, errcode.Is(err, errcode.ErrNothingToWithdraw))
}

func TestRebidAccumulatesLockedFunds(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAuction(t)
	env.fund(t, bidderA, 221000)
	env.fund(t, bidderB, 110000)

	_, err := env.engine.PlaceBid(context.Background(), a.Id, bidderA, decimal.NewFromInt(100000))
	require.NoError(t, err)
	_, err = env.engine.PlaceBid(context.Background(), a.Id, bidderB, decimal.NewFromInt(110000))
	require.NoError(t, err)

	// A 再次出价，历史锁定 100000 + 新出价 121000
	_, err = env.engine.PlaceBid(context.Background(), a.Id, bidderA, decimal.NewFromInt(121000))
	require.NoError(t, err)
	require.True(t, env.balance(t, bidderA).IsZero())

	env.now = time.Unix(a.EndTime, 0)
	_, err = env.engine.Settle(context.Background(), a.Id)
	require.NoError(t, err)

	// 结算划走成交价 121000，第一口的 100000 仍可取回
	amount, err := env.engine.WithdrawFailedBid(context.Background(), a.Id, bidderA)
	require.NoError(t, err)
	require.True(t, amount.Equal(decimal.NewFromInt(100000)))
}

func TestCancelOnlyWithoutBids(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAuction(t)

	// 非卖家不可取消
	err := env.engine.Cancel(context.Background(), a.Id, bidderA)
	require.True(t, errcode.Is(err, errcode.ErrUnauthorized))

	require.NoError(t, env.engine.Cancel(context.Background(), a.Id, seller))
	item := env.item(t)
	require.Equal(t, seller, item.Owner)
	require.Equal(t, int64(0), item.EscrowAuctionId)

	// 已取消的拍卖不可重复取消
	err = env.engine.Cancel(context.Background(), a.Id, seller)
	require.True(t, errcode.Is(err, errcode.ErrAlreadySettled))
}

func TestCancelRejectedAfterBid(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAuction(t)
	env.fund(t, bidderA, 100000)

	_, err := env.engine.PlaceBid(context.Background(), a.Id, bidderA, decimal.NewFromInt(100000))
	require.NoError(t, err)

	err = env.engine.Cancel(context.Background(), a.Id, seller)
	require.True(t, errcode.Is(err, errcode.ErrAuctionHasBids))
}

func TestSettleDueProcessesExpiredAuctions(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAuction(t)
	env.fund(t, bidderA, 100000)
	_, err := env.engine.PlaceBid(context.Background(), a.Id, bidderA, decimal.NewFromInt(100000))
	require.NoError(t, err)

	settled, err := env.engine.SettleDue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, settled)

	env.now = time.Unix(a.EndTime, 0)
	settled, err = env.engine.SettleDue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, settled)

	item := env.item(t)
	require.Equal(t, bidderA, item.Owner)
}
