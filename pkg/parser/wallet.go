package parser

import (
	"fmt"
	"math"

	"github.com/ldksplicing/ldk-sample/pkg/types"

	"github.com/tidwall/gjson"
)

// ParseNewAddress decodes a getnewaddress result, which is the bare address string.
func ParseNewAddress(raw gjson.Result, opts ...Option) (types.NewAddress, error) {
	const shape = "NewAddress"

	s, err := asString(shape, "", raw)
	if err != nil {
		return types.NewAddress{}, err
	}
	addr, err := parseAddress(shape, "", s, newOptions(opts))
	if err != nil {
		return types.NewAddress{}, err
	}
	return types.NewAddress{Address: addr}, nil
}

// ParseListUnspent decodes a listunspent result. Outputs keep the node's
// order, and a single bad element fails the whole list.
func ParseListUnspent(raw gjson.Result, opts ...Option) (types.ListUnspentResponse, error) {
	const shape = "ListUnspentResponse"

	if !raw.IsArray() {
		return nil, mismatch(shape, "", "array", raw)
	}
	o := newOptions(opts)

	elems := raw.Array()
	utxos := make(types.ListUnspentResponse, 0, len(elems))
	for i, elem := range elems {
		utxo, err := parseUnspent(shape, fmt.Sprintf("[%d]", i), elem, o)
		if err != nil {
			return nil, err
		}
		utxos = append(utxos, utxo)
	}
	return utxos, nil
}

func parseUnspent(shape, prefix string, v gjson.Result, o options) (types.ListUnspentUtxo, error) {
	obj, err := objectOf(shape, prefix, v)
	if err != nil {
		return types.ListUnspentUtxo{}, err
	}
	txid, err := obj.hash("txid")
	if err != nil {
		return types.ListUnspentUtxo{}, err
	}
	vout, err := obj.unsigned("vout", math.MaxUint32)
	if err != nil {
		return types.ListUnspentUtxo{}, err
	}
	amount, err := obj.amount("amount")
	if err != nil {
		return types.ListUnspentUtxo{}, err
	}
	addr, err := obj.address("address", o)
	if err != nil {
		return types.ListUnspentUtxo{}, err
	}
	return types.ListUnspentUtxo{
		Txid:    txid,
		Vout:    uint32(vout),
		Amount:  amount,
		Address: addr,
	}, nil
}
