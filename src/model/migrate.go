package model

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Migrate 建表，服务启动与测试共用
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Collection{},
		&Item{},
		&Order{},
		&TradeNonce{},
		&Trade{},
		&Auction{},
		&AuctionBid{},
		&Balance{},
		&Allowance{},
		&MarketConfig{},
		&Activity{},
	)
	if err != nil {
		return errors.Wrap(err, "failed on migrate tables")
	}

	// 市场参数单行表，不存在则写入默认值
	var cfg MarketConfig
	if err := db.Where("id = 1").First(&cfg).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(err, "failed on load market config")
		}
		cfg = MarketConfig{Id: 1}
		if err := db.Create(&cfg).Error; err != nil {
			return errors.Wrap(err, "failed on init market config")
		}
	}
	return nil
}
