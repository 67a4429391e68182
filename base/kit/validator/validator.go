package validator

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
)

var validate = validator.New()

func init() {
	// evm_addr: 合法的 0x 开头 20 字节地址
	_ = validate.RegisterValidation("evm_addr", func(fl validator.FieldLevel) bool {
		return common.IsHexAddress(fl.Field().String())
	})
}

// Verify 校验请求结构体，失败统一返回参数错误
func Verify(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return errcode.NewCustomErr(err.Error())
	}
	return nil
}

// IsEvmAddress 判断是否为合法的 EVM 地址
func IsEvmAddress(s string) bool {
	return common.IsHexAddress(s)
}
