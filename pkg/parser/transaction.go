package parser

import (
	"errors"

	"github.com/ldksplicing/ldk-sample/pkg/types"
	"github.com/ldksplicing/ldk-sample/pkg/utils"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/tidwall/gjson"
)

// ParseFundedTx decodes a fundrawtransaction result
func ParseFundedTx(raw gjson.Result) (types.FundedTx, error) {
	const shape = "FundedTx"

	obj, err := objectOf(shape, "", raw)
	if err != nil {
		return types.FundedTx{}, err
	}
	changePos, err := obj.signed("changepos")
	if err != nil {
		return types.FundedTx{}, err
	}
	hex, err := obj.hex("hex")
	if err != nil {
		return types.FundedTx{}, err
	}
	return types.FundedTx{ChangePos: changePos, Hex: hex}, nil
}

// ParseRawTx decodes a response whose whole body is a raw transaction hex
func ParseRawTx(raw gjson.Result) (types.RawTx, error) {
	const shape = "RawTx"

	hex, err := asString(shape, "", raw)
	if err != nil {
		return types.RawTx{}, err
	}
	if hex == "" {
		return types.RawTx{}, decodeErr(shape, "", ErrMalformed, errors.New("empty transaction hex"))
	}
	if _, err := utils.HexToBytes(hex); err != nil {
		return types.RawTx{}, decodeErr(shape, "", ErrMalformed, err)
	}
	return types.RawTx{Hex: hex}, nil
}

// ParseSignedTx decodes a signrawtransactionwithwallet result. The hex is
// required even when the node could not complete every signature.
func ParseSignedTx(raw gjson.Result) (types.SignedTx, error) {
	const shape = "SignedTx"

	obj, err := objectOf(shape, "", raw)
	if err != nil {
		return types.SignedTx{}, err
	}
	hex, err := obj.hex("hex")
	if err != nil {
		return types.SignedTx{}, err
	}
	complete, err := obj.boolean("complete")
	if err != nil {
		return types.SignedTx{}, err
	}
	return types.SignedTx{Complete: complete, Hex: hex}, nil
}

// ParseTxid decodes a sendrawtransaction result, a bare txid string
func ParseTxid(raw gjson.Result) (chainhash.Hash, error) {
	const shape = "Txid"

	s, err := asString(shape, "", raw)
	if err != nil {
		return chainhash.Hash{}, err
	}
	return parseHash(shape, "", s)
}
