package parser

import (
	"math"

	"github.com/ldksplicing/ldk-sample/pkg/types"

	"github.com/tidwall/gjson"
)

// ParseBlockchainInfo decodes the chain tip from a getblockchaininfo result
func ParseBlockchainInfo(raw gjson.Result) (types.BlockchainInfo, error) {
	const shape = "BlockchainInfo"

	obj, err := objectOf(shape, "", raw)
	if err != nil {
		return types.BlockchainInfo{}, err
	}
	height, err := obj.unsigned("blocks", math.MaxInt32)
	if err != nil {
		return types.BlockchainInfo{}, err
	}
	hash, err := obj.hash("bestblockhash")
	if err != nil {
		return types.BlockchainInfo{}, err
	}
	chain, err := obj.str("chain")
	if err != nil {
		return types.BlockchainInfo{}, err
	}
	return types.BlockchainInfo{
		LatestHeight:    uint32(height),
		LatestBlockHash: hash,
		Chain:           chain,
	}, nil
}
