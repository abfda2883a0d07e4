package parser

import (
	"encoding/json"
	"sort"
	"strings"
	"testing"

	"github.com/ldksplicing/ldk-sample/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		method string
		body   string
		check  func(t *testing.T, v any)
	}{
		{
			method: MethodFundRawTransaction,
			body:   `{"hex": "00", "changepos": -1}`,
			check: func(t *testing.T, v any) {
				assert.Equal(t, types.FundedTx{ChangePos: -1, Hex: "00"}, v)
			},
		},
		{
			method: MethodGetRawTransaction,
			body:   `"00"`,
			check: func(t *testing.T, v any) {
				assert.Equal(t, types.RawTx{Hex: "00"}, v)
			},
		},
		{
			method: MethodEstimateSmartFee,
			body:   `{"feerate": 0.00001}`,
			check: func(t *testing.T, v any) {
				fee, ok := v.(types.FeeResponse)
				require.True(t, ok)
				rate, ok := fee.FeeRate()
				assert.True(t, ok)
				assert.EqualValues(t, 250, rate)
			},
		},
		{
			method: MethodListUnspent,
			body:   `[]`,
			check: func(t *testing.T, v any) {
				assert.Equal(t, types.ListUnspentResponse{}, v)
			},
		},
	}
	for _, c := range cases {
		t.Run(c.method, func(t *testing.T) {
			raw, err := FromBytes([]byte(c.body))
			require.NoError(t, err)
			v, err := Decode(c.method, raw)
			require.NoError(t, err)
			c.check(t, v)
		})
	}
}

func TestDecodeFailureReturnsNil(t *testing.T) {
	raw, err := FromBytes([]byte(`{"changepos": -1}`))
	require.NoError(t, err)
	v, err := Decode(MethodFundRawTransaction, raw)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Nil(t, v)
}

func TestDecodeUnknownMethod(t *testing.T) {
	_, err := Decode("stop", mustParse(t, `null`))
	assert.ErrorIs(t, err, ErrUnknownMethod)
	assert.Nil(t, KindOf(err))
}

func TestMethods(t *testing.T) {
	methods := Methods()
	assert.Len(t, methods, 10)
	assert.True(t, sort.StringsAreSorted(methods))
	assert.Contains(t, methods, MethodGetMempoolInfo)
}

func TestFromBytesInvalid(t *testing.T) {
	_, err := FromBytes([]byte(`{"hex": `))
	assert.Error(t, err)
}

func TestFromValueKeepsNumberLiterals(t *testing.T) {
	// Results decoded with UseNumber must not lose precision on the way back.
	var v any
	dec := json.NewDecoder(strings.NewReader(`[{"txid": "` + txidA + `", "vout": 3, "amount": 0.12345678, "address": "` + genesisAddress + `"}]`))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&v))

	raw, err := FromValue(v)
	require.NoError(t, err)
	utxos, err := ParseListUnspent(raw)
	require.NoError(t, err)
	require.Len(t, utxos, 1)
	assert.EqualValues(t, 12_345_678, utxos[0].Amount)
}

func TestKindOf(t *testing.T) {
	_, err := ParseRawTx(mustParse(t, `1`))
	assert.Equal(t, ErrTypeMismatch, KindOf(err))
	assert.Contains(t, err.Error(), "decode RawTx: type mismatch: expected string, got number")

	_, err = ParseFundedTx(mustParse(t, `{"hex": "00"}`))
	assert.Equal(t, ErrMissingField, KindOf(err))
	assert.Equal(t, "decode FundedTx.changepos: missing field", err.Error())
}

func mustParse(t *testing.T, body string) gjson.Result {
	t.Helper()
	raw, err := FromBytes([]byte(body))
	require.NoError(t, err)
	return raw
}
