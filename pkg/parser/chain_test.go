package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const block800k = "00000000000000000002a7c4c1e48d76c5a37902165a270156b7a8d72728a054"

func TestParseBlockchainInfo(t *testing.T) {
	body := `{
		"chain": "main",
		"blocks": 800000,
		"headers": 800000,
		"bestblockhash": "` + block800k + `",
		"difficulty": 53911173001054.59,
		"verificationprogress": 0.9999986580524914,
		"initialblockdownload": false,
		"pruned": false,
		"warnings": ""
	}`
	info, err := ParseBlockchainInfo(gjson.Parse(body))
	require.NoError(t, err)

	assert.EqualValues(t, 800000, info.LatestHeight)
	assert.Equal(t, "main", info.Chain)
	assert.Equal(t, block800k, info.LatestBlockHash.String())
	// Hashes are displayed byte-reversed.
	assert.Equal(t, byte(0x54), info.LatestBlockHash[0])
	assert.Equal(t, byte(0x00), info.LatestBlockHash[31])
}

func TestParseBlockchainInfoFailures(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		kind  error
		field string
	}{
		{"missing blocks", `{"bestblockhash": "` + block800k + `", "chain": "main"}`, ErrMissingField, "blocks"},
		{"negative blocks", `{"blocks": -1, "bestblockhash": "` + block800k + `", "chain": "main"}`, ErrOutOfRange, "blocks"},
		{"blocks as string", `{"blocks": "800000", "bestblockhash": "` + block800k + `", "chain": "main"}`, ErrTypeMismatch, "blocks"},
		{"hash too long", `{"blocks": 1, "bestblockhash": "` + block800k + `00", "chain": "main"}`, ErrMalformed, "bestblockhash"},
		{"hash not hex", `{"blocks": 1, "bestblockhash": "` + "xx" + block800k[2:] + `", "chain": "main"}`, ErrMalformed, "bestblockhash"},
		{"hash missing", `{"blocks": 1, "chain": "main"}`, ErrMissingField, "bestblockhash"},
		{"chain not a string", `{"blocks": 1, "bestblockhash": "` + block800k + `", "chain": 1}`, ErrTypeMismatch, "chain"},
		{"body is a string", `"main"`, ErrTypeMismatch, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseBlockchainInfo(gjson.Parse(c.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, c.kind)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, c.field, de.Field)
		})
	}
}
