package assets

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
)

// 资产账本，原生资产直接借贷记账，包装资产额外走授权额度
// 所有函数都要求运行在调用方的事务内，保证结算原子性

// BalanceOf 查询余额，不存在按 0 处理
func BalanceOf(tx *gorm.DB, account, asset string) (decimal.Decimal, error) {
	var b model.Balance
	if err := tx.Where("account = ? AND asset = ?", account, asset).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, errors.Wrap(err, "failed on query balance")
	}
	return b.Amount, nil
}

// Credit 入账
func Credit(tx *gorm.DB, account, asset string, amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account"}, {Name: "asset"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"amount": gorm.Expr("amount + ?", amount)}),
	}).Create(&model.Balance{Account: account, Asset: asset, Amount: amount}).Error
	return errors.Wrap(err, "failed on credit balance")
}

// Debit 出账，余额不足返回 InsufficientBalance
func Debit(tx *gorm.DB, account, asset string, amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}
	res := tx.Model(&model.Balance{}).
		Where("account = ? AND asset = ? AND amount >= ?", account, asset, amount).
		Update("amount", gorm.Expr("amount - ?", amount))
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed on debit balance")
	}
	if res.RowsAffected == 0 {
		return errcode.ErrInsufficientBalance
	}
	return nil
}

// Transfer 同资产转账
func Transfer(tx *gorm.DB, from, to, asset string, amount decimal.Decimal) error {
	if err := Debit(tx, from, asset, amount); err != nil {
		return err
	}
	return Credit(tx, to, asset, amount)
}

// Approve 设置授权额度，覆盖式语义
func Approve(tx *gorm.DB, owner, spender, asset string, amount decimal.Decimal) error {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "spender"}, {Name: "asset"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"amount": amount}),
	}).Create(&model.Allowance{Owner: owner, Spender: spender, Asset: asset, Amount: amount}).Error
	return errors.Wrap(err, "failed on set allowance")
}

// AllowanceOf 查询授权额度
func AllowanceOf(tx *gorm.DB, owner, spender, asset string) (decimal.Decimal, error) {
	var a model.Allowance
	if err := tx.Where("owner = ? AND spender = ? AND asset = ?", owner, spender, asset).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, errors.Wrap(err, "failed on query allowance")
	}
	return a.Amount, nil
}

// TransferFrom 包装资产适配器入口，spender 在授权额度内拉取 owner 的资产
func TransferFrom(tx *gorm.DB, owner, spender, to, asset string, amount decimal.Decimal) error {
	res := tx.Model(&model.Allowance{}).
		Where("owner = ? AND spender = ? AND asset = ? AND amount >= ?", owner, spender, asset, amount).
		Update("amount", gorm.Expr("amount - ?", amount))
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed on spend allowance")
	}
	if res.RowsAffected == 0 {
		return errcode.ErrInsufficientAllowance
	}
	return Transfer(tx, owner, to, asset, amount)
}
