package eip712

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
)

// 主类型名，Order 与 Offer 结构相同但类型标签不同，两者的哈希不可能碰撞
const (
	TypeOrder = "Order"
	TypeOffer = "Offer"
)

// Intent 链下签名的交易意图，Order (卖方挂单) 与 Offer (买方出价) 共用字段
type Intent struct {
	Maker        common.Address
	CollectionId *big.Int
	TokenId      *big.Int
	Price        *big.Int
	Nonce        *big.Int
	Deadline     *big.Int
}

var intentFields = []apitypes.Type{
	{Name: "maker", Type: "address"},
	{Name: "collectionId", Type: "uint256"},
	{Name: "tokenId", Type: "uint256"},
	{Name: "price", Type: "uint256"},
	{Name: "nonce", Type: "uint256"},
	{Name: "deadline", Type: "uint256"},
}

// Verifier 签名意图校验器
// domain 绑定链 ID 与验证合约地址，跨部署/跨链重放的签名无法通过校验
type Verifier struct {
	domain apitypes.TypedDataDomain
}

func NewVerifier(name, version string, chainId int64, verifyingContract string) *Verifier {
	return &Verifier{
		domain: apitypes.TypedDataDomain{
			Name:              name,
			Version:           version,
			ChainId:           math.NewHexOrDecimal256(chainId),
			VerifyingContract: verifyingContract,
		},
	}
}

// typedData 组装结构化哈希输入，逐字段、保序、带类型标签
func (v *Verifier) typedData(primaryType string, in Intent) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			primaryType: intentFields,
		},
		PrimaryType: primaryType,
		Domain:      v.domain,
		Message: apitypes.TypedDataMessage{
			"maker":        in.Maker.Hex(),
			"collectionId": (*math.HexOrDecimal256)(in.CollectionId),
			"tokenId":      (*math.HexOrDecimal256)(in.TokenId),
			"price":        (*math.HexOrDecimal256)(in.Price),
			"nonce":        (*math.HexOrDecimal256)(in.Nonce),
			"deadline":     (*math.HexOrDecimal256)(in.Deadline),
		},
	}
}

// Hash 计算意图的 EIP-712 签名哈希
func (v *Verifier) Hash(primaryType string, in Intent) (common.Hash, error) {
	sighash, _, err := apitypes.TypedDataAndHash(v.typedData(primaryType, in))
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed on hash typed data")
	}
	return common.BytesToHash(sighash), nil
}

// RecoverSigner 从签名恢复地址，任何畸形签名返回 InvalidSignature
func (v *Verifier) RecoverSigner(primaryType string, in Intent, sigHex string) (common.Address, error) {
	sig, err := hexutil.Decode(sigHex)
	if err != nil || len(sig) != crypto.SignatureLength {
		return common.Address{}, errcode.ErrInvalidSignature
	}

	hash, err := v.Hash(primaryType, in)
	if err != nil {
		return common.Address{}, err
	}

	// 以太坊钱包习惯输出 v = 27/28，恢复前归一化
	sigCopy := make([]byte, crypto.SignatureLength)
	copy(sigCopy, sig)
	if sigCopy[64] >= 27 {
		sigCopy[64] -= 27
	}

	pub, err := crypto.SigToPub(hash.Bytes(), sigCopy)
	if err != nil {
		return common.Address{}, errcode.ErrInvalidSignature
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// Sign 用私钥签署意图，供客户端 SDK 与测试使用
func (v *Verifier) Sign(primaryType string, in Intent, key *ecdsa.PrivateKey) (string, error) {
	hash, err := v.Hash(primaryType, in)
	if err != nil {
		return "", err
	}
	sig, err := crypto.Sign(hash.Bytes(), key)
	if err != nil {
		return "", errors.Wrap(err, "failed on sign intent")
	}
	sig[64] += 27
	return hexutil.Encode(sig), nil
}
