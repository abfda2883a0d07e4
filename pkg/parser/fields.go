package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/ldksplicing/ldk-sample/pkg/analyzer"
	"github.com/ldksplicing/ldk-sample/pkg/utils"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by FromBytes when the body is not JSON at all.
var ErrInvalidJSON = errors.New("invalid JSON")

// FromBytes parses a raw response body into the value the Parse functions consume.
func FromBytes(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, ErrInvalidJSON
	}
	return gjson.ParseBytes(body), nil
}

// FromValue re-encodes an already decoded JSON value, such as the Result of a
// JSON-RPC response, so it can be handed to a Parse function.
// Values decoded with json.Number keep their exact literal.
func FromValue(v any) (gjson.Result, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("cannot encode value: %w", err)
	}
	return gjson.ParseBytes(b), nil
}

// Option adjusts how addresses are validated.
type Option func(*options)

type options struct {
	network *chaincfg.Params
}

// WithNetwork restricts addresses to the given network. Without it an address
// of any known network is accepted.
func WithNetwork(params *chaincfg.Params) Option {
	return func(o *options) {
		o.network = params
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func typeName(v gjson.Result) string {
	switch {
	case !v.Exists():
		return "nothing"
	case v.Type == gjson.Null:
		return "null"
	case v.Type == gjson.True, v.Type == gjson.False:
		return "boolean"
	case v.Type == gjson.Number:
		return "number"
	case v.Type == gjson.String:
		return "string"
	case v.IsArray():
		return "array"
	default:
		return "object"
	}
}

func mismatch(shape, path, want string, v gjson.Result) error {
	return decodeErrf(shape, path, ErrTypeMismatch, "expected %s, got %s", want, typeName(v))
}

// object gives typed access to the members of a JSON object.
type object struct {
	shape  string
	prefix string
	v      gjson.Result
}

func objectOf(shape, prefix string, v gjson.Result) (object, error) {
	if !v.IsObject() {
		return object{}, mismatch(shape, prefix, "object", v)
	}
	return object{shape: shape, prefix: prefix, v: v}, nil
}

func (o object) path(key string) string {
	if o.prefix == "" {
		return key
	}
	return o.prefix + "." + key
}

func (o object) required(key string) (gjson.Result, error) {
	v := o.v.Get(key)
	if !v.Exists() {
		return v, decodeErr(o.shape, o.path(key), ErrMissingField, nil)
	}
	return v, nil
}

func (o object) str(key string) (string, error) {
	v, err := o.required(key)
	if err != nil {
		return "", err
	}
	return asString(o.shape, o.path(key), v)
}

func (o object) boolean(key string) (bool, error) {
	v, err := o.required(key)
	if err != nil {
		return false, err
	}
	if !v.IsBool() {
		return false, mismatch(o.shape, o.path(key), "boolean", v)
	}
	return v.Bool(), nil
}

func (o object) signed(key string) (int64, error) {
	v, err := o.required(key)
	if err != nil {
		return 0, err
	}
	d, err := asInteger(o.shape, o.path(key), v)
	if err != nil {
		return 0, err
	}
	if d.LessThan(decimal.NewFromInt(math.MinInt64)) || d.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, decodeErrf(o.shape, o.path(key), ErrOutOfRange, "%s does not fit in 64 bits", d)
	}
	return d.IntPart(), nil
}

// unsigned returns a non-negative integer no larger than max.
func (o object) unsigned(key string, max uint64) (uint64, error) {
	v, err := o.required(key)
	if err != nil {
		return 0, err
	}
	d, err := asInteger(o.shape, o.path(key), v)
	if err != nil {
		return 0, err
	}
	if d.Sign() < 0 {
		return 0, decodeErrf(o.shape, o.path(key), ErrOutOfRange, "%s is negative", d)
	}
	if d.GreaterThan(decimal.NewFromBigInt(new(big.Int).SetUint64(max), 0)) {
		return 0, decodeErrf(o.shape, o.path(key), ErrOutOfRange, "%s exceeds %d", d, max)
	}
	return d.BigInt().Uint64(), nil
}

// optionalFloat reads a number that the node may omit or send as null.
func (o object) optionalFloat(key string) (float64, bool, error) {
	v := o.v.Get(key)
	if !v.Exists() || v.Type == gjson.Null {
		return 0, false, nil
	}
	if v.Type != gjson.Number {
		return 0, false, mismatch(o.shape, o.path(key), "number", v)
	}
	return v.Float(), true, nil
}

func (o object) hash(key string) (chainhash.Hash, error) {
	s, err := o.str(key)
	if err != nil {
		return chainhash.Hash{}, err
	}
	return parseHash(o.shape, o.path(key), s)
}

func (o object) hex(key string) (string, error) {
	s, err := o.str(key)
	if err != nil {
		return "", err
	}
	if _, err := utils.HexToBytes(s); err != nil {
		return "", decodeErr(o.shape, o.path(key), ErrMalformed, err)
	}
	return s, nil
}

func (o object) amount(key string) (btcutil.Amount, error) {
	v, err := o.required(key)
	if err != nil {
		return 0, err
	}
	return parseAmount(o.shape, o.path(key), v)
}

func (o object) address(key string, opts options) (btcutil.Address, error) {
	s, err := o.str(key)
	if err != nil {
		return nil, err
	}
	return parseAddress(o.shape, o.path(key), s, opts)
}

func asString(shape, path string, v gjson.Result) (string, error) {
	if v.Type != gjson.String {
		return "", mismatch(shape, path, "string", v)
	}
	return v.Str, nil
}

func asInteger(shape, path string, v gjson.Result) (decimal.Decimal, error) {
	if v.Type != gjson.Number {
		return decimal.Decimal{}, mismatch(shape, path, "integer", v)
	}
	d, err := decimal.NewFromString(v.Raw)
	if err != nil {
		return decimal.Decimal{}, decodeErr(shape, path, ErrMalformed, err)
	}
	if !d.IsInteger() {
		return decimal.Decimal{}, decodeErrf(shape, path, ErrTypeMismatch, "expected integer, got %s", v.Raw)
	}
	return d, nil
}

func parseHash(shape, path, s string) (chainhash.Hash, error) {
	if len(s) != chainhash.MaxHashStringSize {
		return chainhash.Hash{}, decodeErrf(shape, path, ErrMalformed,
			"expected %d hex characters, got %d", chainhash.MaxHashStringSize, len(s))
	}
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return chainhash.Hash{}, decodeErr(shape, path, ErrMalformed, err)
	}
	return *h, nil
}

// parseAmount converts a BTC value into satoshis without rounding.
// bitcoind prints amounts as numbers; numeric strings are accepted too.
func parseAmount(shape, path string, v gjson.Result) (btcutil.Amount, error) {
	var literal string
	switch v.Type {
	case gjson.Number:
		literal = v.Raw
	case gjson.String:
		literal = v.Str
	default:
		return 0, mismatch(shape, path, "number", v)
	}

	btc, err := decimal.NewFromString(literal)
	if err != nil {
		return 0, decodeErrf(shape, path, ErrMalformed, "%q is not a number", literal)
	}
	sats := btc.Mul(decimal.New(btcutil.SatoshiPerBitcoin, 0))
	switch {
	case sats.Sign() < 0:
		return 0, decodeErrf(shape, path, ErrOutOfRange, "%s BTC is negative", literal)
	case !sats.IsInteger():
		return 0, decodeErrf(shape, path, ErrOutOfRange, "%s BTC is not a whole number of satoshis", literal)
	case sats.GreaterThan(decimal.NewFromInt(btcutil.MaxSatoshi)):
		return 0, decodeErrf(shape, path, ErrOutOfRange, "%s BTC exceeds the money supply", literal)
	}
	return btcutil.Amount(sats.IntPart()), nil
}

func parseAddress(shape, path, s string, opts options) (btcutil.Address, error) {
	addr, err := analyzer.ParseAddress(s, opts.network)
	if err != nil {
		return nil, decodeErr(shape, path, ErrMalformed, err)
	}
	return addr, nil
}
