package parser

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
)

// RPC method names with a known response shape
const (
	MethodFundRawTransaction           = "fundrawtransaction"
	MethodCreateRawTransaction         = "createrawtransaction"
	MethodGetRawTransaction            = "getrawtransaction"
	MethodSignRawTransactionWithWallet = "signrawtransactionwithwallet"
	MethodGetNewAddress                = "getnewaddress"
	MethodEstimateSmartFee             = "estimatesmartfee"
	MethodGetMempoolInfo               = "getmempoolinfo"
	MethodGetBlockchainInfo            = "getblockchaininfo"
	MethodListUnspent                  = "listunspent"
	MethodSendRawTransaction           = "sendrawtransaction"
)

// ErrUnknownMethod is returned by Decode for methods without a decoder.
var ErrUnknownMethod = errors.New("unknown method")

// Decoder turns the result of one RPC method into its typed value.
type Decoder func(raw gjson.Result, opts ...Option) (any, error)

var decoders = map[string]Decoder{
	MethodFundRawTransaction: func(raw gjson.Result, _ ...Option) (any, error) {
		return wrap(ParseFundedTx(raw))
	},
	MethodCreateRawTransaction: func(raw gjson.Result, _ ...Option) (any, error) {
		return wrap(ParseRawTx(raw))
	},
	MethodGetRawTransaction: func(raw gjson.Result, _ ...Option) (any, error) {
		return wrap(ParseRawTx(raw))
	},
	MethodSignRawTransactionWithWallet: func(raw gjson.Result, _ ...Option) (any, error) {
		return wrap(ParseSignedTx(raw))
	},
	MethodGetNewAddress: func(raw gjson.Result, opts ...Option) (any, error) {
		return wrap(ParseNewAddress(raw, opts...))
	},
	MethodEstimateSmartFee: func(raw gjson.Result, _ ...Option) (any, error) {
		return wrap(ParseFeeResponse(raw))
	},
	MethodGetMempoolInfo: func(raw gjson.Result, _ ...Option) (any, error) {
		return wrap(ParseMempoolMinFee(raw))
	},
	MethodGetBlockchainInfo: func(raw gjson.Result, _ ...Option) (any, error) {
		return wrap(ParseBlockchainInfo(raw))
	},
	MethodListUnspent: func(raw gjson.Result, opts ...Option) (any, error) {
		return wrap(ParseListUnspent(raw, opts...))
	},
	MethodSendRawTransaction: func(raw gjson.Result, _ ...Option) (any, error) {
		return wrap(ParseTxid(raw))
	},
}

// wrap keeps a failed decode from leaking a zero value through the any.
func wrap[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Decode runs the decoder registered for an RPC method.
func Decode(method string, raw gjson.Result, opts ...Option) (any, error) {
	d, ok := decoders[method]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMethod, method)
	}
	return d(raw, opts...)
}

// Methods lists the RPC methods Decode understands, sorted.
func Methods() []string {
	methods := make([]string, 0, len(decoders))
	for m := range decoders {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}
