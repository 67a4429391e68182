package errcode

import (
	"github.com/pkg/errors"
)

// Err 业务错误，code 对外返回，msg 为可读信息
type Err struct {
	code uint32
	msg  string
}

func NewErr(code uint32, msg string) *Err {
	return &Err{code: code, msg: msg}
}

func (e *Err) Error() string {
	return e.msg
}

func (e *Err) Code() uint32 {
	return e.code
}

func (e *Err) Msg() string {
	return e.msg
}

// NewCustomErr 自定义错误信息，使用通用自定义错误码
func NewCustomErr(msg string) *Err {
	return NewErr(CodeCustom, msg)
}

// ParseErr 解析任意 error 为 *Err，未知错误统一归为 ErrUnexpected
func ParseErr(err error) *Err {
	if err == nil {
		return ErrOK
	}
	var e *Err
	if errors.As(err, &e) {
		return e
	}
	return ErrUnexpected
}

// Is 判断 err 链上是否为指定业务错误
func Is(err error, target *Err) bool {
	var e *Err
	if errors.As(err, &e) {
		return e.code == target.code
	}
	return false
}
