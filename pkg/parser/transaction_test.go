package parser

import (
	"testing"

	"github.com/ldksplicing/ldk-sample/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const txHex = "0200000001" +
	"0000000000000000000000000000000000000000000000000000000000000001" + "00000000" +
	"00" + "fdffffff" +
	"01" + "e803000000000000" + "16" + "0014" + "0000000000000000000000000000000000000000" +
	"00000000"

func TestParseFundedTx(t *testing.T) {
	cases := []struct {
		name string
		body string
		want types.FundedTx
	}{
		{
			name: "no change output",
			body: `{"hex": "` + txHex + `", "fee": 0.0000141, "changepos": -1}`,
			want: types.FundedTx{ChangePos: -1, Hex: txHex},
		},
		{
			name: "change at index 1",
			body: `{"hex": "` + txHex + `", "fee": 0.0000141, "changepos": 1}`,
			want: types.FundedTx{ChangePos: 1, Hex: txHex},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			funded, err := ParseFundedTx(gjson.Parse(c.body))
			require.NoError(t, err)
			assert.Equal(t, c.want, funded)
			assert.Equal(t, c.want.ChangePos >= 0, funded.HasChange())
		})
	}
}

func TestParseFundedTxFailures(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		kind  error
		field string
	}{
		{"missing changepos", `{"hex": "00"}`, ErrMissingField, "changepos"},
		{"missing hex", `{"changepos": -1}`, ErrMissingField, "hex"},
		{"changepos is a string", `{"changepos": "-1", "hex": "00"}`, ErrTypeMismatch, "changepos"},
		{"changepos is fractional", `{"changepos": 1.5, "hex": "00"}`, ErrTypeMismatch, "changepos"},
		{"changepos is null", `{"changepos": null, "hex": "00"}`, ErrTypeMismatch, "changepos"},
		{"hex is a number", `{"changepos": -1, "hex": 12}`, ErrTypeMismatch, "hex"},
		{"hex is not hex", `{"changepos": -1, "hex": "zz"}`, ErrMalformed, "hex"},
		{"hex has odd length", `{"changepos": -1, "hex": "abc"}`, ErrMalformed, "hex"},
		{"body is an array", `[]`, ErrTypeMismatch, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseFundedTx(gjson.Parse(c.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, c.kind)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, c.field, de.Field)
		})
	}
}

func TestParseRawTx(t *testing.T) {
	raw, err := ParseRawTx(gjson.Parse(`"` + txHex + `"`))
	require.NoError(t, err)
	assert.Equal(t, txHex, raw.Hex)

	for body, kind := range map[string]error{
		`""`:            ErrMalformed,
		`"0g"`:          ErrMalformed,
		`{"hex": "00"}`: ErrTypeMismatch,
		`null`:          ErrTypeMismatch,
		`1234`:          ErrTypeMismatch,
	} {
		_, err := ParseRawTx(gjson.Parse(body))
		assert.ErrorIs(t, err, kind, body)
	}
}

func TestParseSignedTx(t *testing.T) {
	signed, err := ParseSignedTx(gjson.Parse(`{"hex": "` + txHex + `", "complete": true}`))
	require.NoError(t, err)
	assert.Equal(t, types.SignedTx{Complete: true, Hex: txHex}, signed)

	incomplete := `{
		"hex": "` + txHex + `",
		"complete": false,
		"errors": [{"txid": "00", "vout": 0, "error": "Input not found or already spent"}]
	}`
	signed, err = ParseSignedTx(gjson.Parse(incomplete))
	require.NoError(t, err)
	assert.False(t, signed.Complete)
	assert.Equal(t, txHex, signed.Hex)
}

func TestParseSignedTxFailures(t *testing.T) {
	cases := []struct {
		name string
		body string
		kind error
	}{
		{"missing hex", `{"complete": false}`, ErrMissingField},
		{"missing complete", `{"hex": "00"}`, ErrMissingField},
		{"complete is a string", `{"hex": "00", "complete": "true"}`, ErrTypeMismatch},
		{"complete is a number", `{"hex": "00", "complete": 1}`, ErrTypeMismatch},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseSignedTx(gjson.Parse(c.body))
			assert.ErrorIs(t, err, c.kind)
		})
	}
}

func TestParseIsPure(t *testing.T) {
	raw := gjson.Parse(`{"hex": "` + txHex + `", "changepos": -1}`)
	first, err := ParseFundedTx(raw)
	require.NoError(t, err)
	second, err := ParseFundedTx(raw)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, `{"hex": "`+txHex+`", "changepos": -1}`, raw.Raw)
}

func TestParseTxid(t *testing.T) {
	txid, err := ParseTxid(gjson.Parse(`"` + txidA + `"`))
	require.NoError(t, err)
	assert.Equal(t, txidA, txid.String())

	for body, kind := range map[string]error{
		`"abcd"`: ErrMalformed,
		`null`:   ErrTypeMismatch,
		`[]`:     ErrTypeMismatch,
	} {
		_, err := ParseTxid(gjson.Parse(body))
		assert.ErrorIs(t, err, kind, body)
	}
}
