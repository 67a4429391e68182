package fees

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	// 每个用例独立的内存库，cache=shared 让连接池内的连接看到同一份数据
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))
	return db
}

func seedMarket(t *testing.T, db *gorm.DB, feeBps int64, receiver string) {
	require.NoError(t, db.Model(&model.MarketConfig{}).Where("id = 1").
		Updates(map[string]interface{}{"fee_bps": feeBps, "fee_receiver": receiver}).Error)
}

func seedCollection(t *testing.T, db *gorm.DB, id, royaltyBps int64, receiver string) {
	require.NoError(t, db.Create(&model.Collection{
		CollectionId:    id,
		Name:            "test",
		Creator:         "0x1111111111111111111111111111111111111111",
		RoyaltyBps:      royaltyBps,
		RoyaltyReceiver: receiver,
		ChainId:         1,
	}).Error)
}

func TestResolveSplitConservation(t *testing.T) {
	db := newTestDB(t)
	seedMarket(t, db, 500, "0xfee0000000000000000000000000000000000000")
	seedCollection(t, db, 1, 100, "0x2222222222222222222222222222222222222222")

	r := NewResolver()
	price := decimal.NewFromInt(100000)
	split, err := r.Resolve(db, 1, price)
	require.NoError(t, err)

	require.True(t, split.FeeAmount.Equal(decimal.NewFromInt(5000)))
	require.True(t, split.RoyaltyAmount.Equal(decimal.NewFromInt(1000)))
	require.True(t, split.SellerProceeds.Equal(decimal.NewFromInt(94000)))
	require.True(t, split.RoyaltyAmount.Add(split.FeeAmount).Add(split.SellerProceeds).Equal(price))
}

func TestResolveFloorsRemainderToSeller(t *testing.T) {
	db := newTestDB(t)
	seedMarket(t, db, 300, "0xfee0000000000000000000000000000000000000")
	seedCollection(t, db, 1, 250, "0x2222222222222222222222222222222222222222")

	r := NewResolver()
	// 10999 * 250 / 10000 = 274.975 → 274, 10999 * 300 / 10000 = 329.97 → 329
	price := decimal.NewFromInt(10999)
	split, err := r.Resolve(db, 1, price)
	require.NoError(t, err)

	require.True(t, split.RoyaltyAmount.Equal(decimal.NewFromInt(274)))
	require.True(t, split.FeeAmount.Equal(decimal.NewFromInt(329)))
	require.True(t, split.SellerProceeds.Equal(decimal.NewFromInt(10396)))
	require.True(t, split.RoyaltyAmount.Add(split.FeeAmount).Add(split.SellerProceeds).Equal(price))
}

func TestResolveClampsBpsAtCaps(t *testing.T) {
	db := newTestDB(t)
	// 超限配置按上限截断，而不是报错
	seedMarket(t, db, 9000, "0xfee0000000000000000000000000000000000000")
	seedCollection(t, db, 1, 8000, "0x2222222222222222222222222222222222222222")

	r := NewResolver()
	price := decimal.NewFromInt(100000)
	split, err := r.Resolve(db, 1, price)
	require.NoError(t, err)

	require.True(t, split.FeeAmount.Equal(decimal.NewFromInt(5000)))     // 500 bps
	require.True(t, split.RoyaltyAmount.Equal(decimal.NewFromInt(10000))) // 1000 bps
}

func TestResolveRejectsDustPrice(t *testing.T) {
	db := newTestDB(t)
	seedMarket(t, db, 500, "")
	seedCollection(t, db, 1, 100, "")

	r := NewResolver()
	_, err := r.Resolve(db, 1, decimal.NewFromInt(99))
	require.True(t, errcode.Is(err, errcode.ErrPriceTooLow))

	// 恰好到达下限的价格可成交
	_, err = r.Resolve(db, 1, decimal.NewFromInt(100))
	require.NoError(t, err)
}

func TestResolveSmallPriceSplit(t *testing.T) {
	db := newTestDB(t)
	// 版税 5%, 平台费 1%
	seedMarket(t, db, 100, "0xfee0000000000000000000000000000000000000")
	seedCollection(t, db, 1, 500, "0x2222222222222222222222222222222222222222")

	r := NewResolver()
	split, err := r.Resolve(db, 1, decimal.NewFromInt(1000))
	require.NoError(t, err)

	require.True(t, split.RoyaltyAmount.Equal(decimal.NewFromInt(50)))
	require.True(t, split.FeeAmount.Equal(decimal.NewFromInt(10)))
	require.True(t, split.SellerProceeds.Equal(decimal.NewFromInt(940)))
}

func TestResolveReceiverlessShareGoesToSeller(t *testing.T) {
	db := newTestDB(t)
	// 版税配了 bps 却没配接收地址，该份额归卖方而不是蒸发
	seedMarket(t, db, 500, "0xfee0000000000000000000000000000000000000")
	seedCollection(t, db, 1, 100, "")

	r := NewResolver()
	price := decimal.NewFromInt(100000)
	split, err := r.Resolve(db, 1, price)
	require.NoError(t, err)

	require.True(t, split.RoyaltyAmount.IsZero())
	require.True(t, split.FeeAmount.Equal(decimal.NewFromInt(5000)))
	require.True(t, split.SellerProceeds.Equal(decimal.NewFromInt(95000)))
	require.True(t, split.RoyaltyAmount.Add(split.FeeAmount).Add(split.SellerProceeds).Equal(price))
}

func TestResolveUnknownCollection(t *testing.T) {
	db := newTestDB(t)
	seedMarket(t, db, 500, "")

	r := NewResolver()
	_, err := r.Resolve(db, 404, decimal.NewFromInt(100000))
	require.True(t, errcode.Is(err, errcode.ErrCollectionNotFound))
}

func TestValidateBpsBounds(t *testing.T) {
	require.NoError(t, ValidateFeeBps(0))
	require.NoError(t, ValidateFeeBps(500))
	require.True(t, errcode.Is(ValidateFeeBps(501), errcode.ErrFeeTooHigh))

	require.NoError(t, ValidateRoyaltyBps(1000))
	require.True(t, errcode.Is(ValidateRoyaltyBps(1001), errcode.ErrRoyaltyTooHigh))
}
