package parser

import (
	"fmt"
	"math"

	"github.com/ldksplicing/ldk-sample/pkg/types"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// ExpectedMaxMempool is the mempool size, in bytes, the node must be running
// with. Fee and eviction handling downstream assume the bitcoind default.
const ExpectedMaxMempool = 300_000_000

var (
	satsPerBTC         = decimal.New(1, 8)
	weightPerVbyte     = decimal.NewFromInt(4)
	maxFeeRateSatPerKW = decimal.NewFromInt(math.MaxUint32)
)

// FeeRateSatPerKW converts a BTC/kvB fee rate, as bitcoind reports it, into
// sat/kW: multiply by 10^8 for satoshis, divide by 4 since a virtual byte is
// four weight units, then round half away from zero.
func FeeRateSatPerKW(btcPerKvB float64) (uint32, error) {
	if math.IsNaN(btcPerKvB) || math.IsInf(btcPerKvB, 0) {
		return 0, fmt.Errorf("%w: fee rate %v is not finite", ErrOutOfRange, btcPerKvB)
	}
	if btcPerKvB < 0 {
		return 0, fmt.Errorf("%w: fee rate %v is negative", ErrOutOfRange, btcPerKvB)
	}

	satPerKW := decimal.NewFromFloat(btcPerKvB).Mul(satsPerBTC).Div(weightPerVbyte).Round(0)
	if satPerKW.GreaterThan(maxFeeRateSatPerKW) {
		return 0, fmt.Errorf("%w: fee rate %v BTC/kvB overflows sat/kW", ErrOutOfRange, btcPerKvB)
	}
	return uint32(satPerKW.IntPart()), nil
}

// ParseFeeResponse decodes an estimatesmartfee result.
// The errors and feerate members are read independently: a response may
// carry both, either or neither. A null errors member counts as absent.
func ParseFeeResponse(raw gjson.Result) (types.FeeResponse, error) {
	const shape = "FeeResponse"

	obj, err := objectOf(shape, "", raw)
	if err != nil {
		return types.FeeResponse{}, err
	}
	rate, err := feeRate(obj, "feerate")
	if err != nil {
		return types.FeeResponse{}, err
	}
	return types.FeeResponse{
		FeeRateSatPerKW: rate,
		Errored:         hasErrors(obj),
	}, nil
}

// ParseMempoolMinFee decodes a getmempoolinfo result. It fails unless the node
// reports a maxmempool of exactly ExpectedMaxMempool.
func ParseMempoolMinFee(raw gjson.Result) (types.MempoolMinFeeResponse, error) {
	const shape = "MempoolMinFeeResponse"

	obj, err := objectOf(shape, "", raw)
	if err != nil {
		return types.MempoolMinFeeResponse{}, err
	}
	maxMempool, err := obj.unsigned("maxmempool", math.MaxUint64)
	if err != nil {
		return types.MempoolMinFeeResponse{}, err
	}
	if maxMempool != ExpectedMaxMempool {
		return types.MempoolMinFeeResponse{}, decodeErrf(shape, "maxmempool", ErrInvariant,
			"node runs with maxmempool %d, expected %d", maxMempool, ExpectedMaxMempool)
	}
	rate, err := feeRate(obj, "mempoolminfee")
	if err != nil {
		return types.MempoolMinFeeResponse{}, err
	}
	return types.MempoolMinFeeResponse{
		FeeRateSatPerKW: rate,
		Errored:         hasErrors(obj),
	}, nil
}

func hasErrors(obj object) bool {
	v := obj.v.Get("errors")
	return v.Exists() && v.Type != gjson.Null
}

func feeRate(obj object, key string) (*uint32, error) {
	btcPerKvB, ok, err := obj.optionalFloat(key)
	if err != nil || !ok {
		return nil, err
	}
	rate, err := FeeRateSatPerKW(btcPerKvB)
	if err != nil {
		return nil, decodeErrf(obj.shape, obj.path(key), ErrOutOfRange,
			"%v BTC/kvB cannot be expressed in sat/kW", btcPerKvB)
	}
	return &rate, nil
}
