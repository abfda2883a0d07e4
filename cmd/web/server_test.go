package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ldksplicing/ldk-sample/pkg/logging"
	"github.com/ldksplicing/ldk-sample/pkg/report"
	"github.com/ldksplicing/ldk-sample/pkg/types"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ybbus/jsonrpc/v2"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeNode struct {
	confTarget int
	mode       string
	err        error
}

func (f *fakeNode) GetBlockchainInfo() (types.BlockchainInfo, error) {
	if f.err != nil {
		return types.BlockchainInfo{}, f.err
	}
	return types.BlockchainInfo{LatestHeight: 840_000, LatestBlockHash: chainhash.Hash{1}, Chain: "main"}, nil
}

func (f *fakeNode) EstimateSmartFee(confTarget int, mode string) (types.FeeResponse, error) {
	f.confTarget, f.mode = confTarget, mode
	rate := uint32(60_000)
	return types.FeeResponse{FeeRateSatPerKW: &rate}, f.err
}

func (f *fakeNode) GetMempoolInfo() (types.MempoolMinFeeResponse, error) {
	rate := uint32(253)
	return types.MempoolMinFeeResponse{FeeRateSatPerKW: &rate}, f.err
}

func (f *fakeNode) ListUnspent() (types.ListUnspentResponse, error) {
	addr, err := btcutil.DecodeAddress("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}
	return types.ListUnspentResponse{{Vout: 1, Amount: 500, Address: addr}}, f.err
}

func serve(t *testing.T, r *gin.Engine, method, target, body string) (int, types.Report) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var rep types.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep), w.Body.String())
	return w.Code, rep
}

func TestHealth(t *testing.T) {
	r := newRouter(nil, nil, logging.NoopKVLogger{})
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		OK      bool     `json:"ok"`
		Node    bool     `json:"node"`
		Methods []string `json:"methods"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.False(t, body.Node)
	assert.Contains(t, body.Methods, "listunspent")
}

func TestDecodeRoute(t *testing.T) {
	r := newRouter(nil, nil, logging.NoopKVLogger{})

	cases := []struct {
		name   string
		target string
		body   string
		status int
		code   string
	}{
		{"ok", "/api/decode/signrawtransactionwithwallet", `{"hex": "00", "complete": true}`, http.StatusOK, ""},
		{"invalid json", "/api/decode/getnewaddress", `{`, http.StatusBadRequest, report.CodeInvalidJSON},
		{"decode failure", "/api/decode/getblockchaininfo", `{"blocks": -1}`, http.StatusUnprocessableEntity, report.CodeOutOfRange},
		{"unknown method", "/api/decode/stop", `null`, http.StatusNotFound, report.CodeUnknownMethod},
		{"bad chain", "/api/decode/getnewaddress?chain=doge", `"x"`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"wrong network", "/api/decode/getnewaddress?chain=regtest", `"1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"`, http.StatusUnprocessableEntity, report.CodeMalformed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, rep := serve(t, r, http.MethodPost, c.target, c.body)
			assert.Equal(t, c.status, status)
			if c.code == "" {
				assert.True(t, rep.OK)
				assert.Nil(t, rep.Error)
				return
			}
			assert.False(t, rep.OK)
			require.NotNil(t, rep.Error)
			assert.Equal(t, c.code, rep.Error.Code)
		})
	}
}

func TestNodeRoutesWithoutNode(t *testing.T) {
	r := newRouter(nil, nil, logging.NoopKVLogger{})
	status, rep := serve(t, r, http.MethodGet, "/api/node/tip", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	require.NotNil(t, rep.Error)
	assert.Equal(t, "NO_NODE", rep.Error.Code)
}

func TestNodeRoutes(t *testing.T) {
	n := &fakeNode{}
	r := newRouter(n, &chaincfg.MainNetParams, logging.NoopKVLogger{})

	status, rep := serve(t, r, http.MethodGet, "/api/node/tip", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "mainnet", rep.Network)
	assert.Equal(t, map[string]interface{}{
		"latest_height":    float64(840_000),
		"latest_blockhash": chainhash.Hash{1}.String(),
		"chain":            "main",
	}, rep.Result)

	status, rep = serve(t, r, http.MethodGet, "/api/node/fee?target=2&mode=CONSERVATIVE", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, n.confTarget)
	assert.Equal(t, "CONSERVATIVE", n.mode)
	require.Len(t, rep.Warnings, 1)
	assert.Equal(t, "HIGH_FEE", rep.Warnings[0].Code)

	status, _ = serve(t, r, http.MethodGet, "/api/node/fee", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, defaultConfTarget, n.confTarget)

	status, rep = serve(t, r, http.MethodGet, "/api/node/fee?target=0", "")
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, rep.Error)

	status, rep = serve(t, r, http.MethodGet, "/api/node/mempoolfee", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, rep.Warnings)

	status, rep = serve(t, r, http.MethodGet, "/api/node/utxos", "")
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, rep.Warnings, 1)
	assert.Equal(t, "DUST_OUTPUT", rep.Warnings[0].Code)
}

func TestNodeRouteRPCError(t *testing.T) {
	n := &fakeNode{err: errors.Wrap(&jsonrpc.RPCError{Code: -28, Message: "Loading block index..."}, "getblockchaininfo")}
	r := newRouter(n, nil, logging.NoopKVLogger{})

	status, rep := serve(t, r, http.MethodGet, "/api/node/tip", "")
	assert.Equal(t, http.StatusBadGateway, status)
	require.NotNil(t, rep.Error)
	assert.Equal(t, report.CodeRPCError, rep.Error.Code)
}
