package main

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ldksplicing/ldk-sample/pkg/analyzer"
	"github.com/ldksplicing/ldk-sample/pkg/logging"
	"github.com/ldksplicing/ldk-sample/pkg/parser"
	"github.com/ldksplicing/ldk-sample/pkg/report"
	"github.com/ldksplicing/ldk-sample/pkg/rpcclient"
	"github.com/ldksplicing/ldk-sample/pkg/types"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const defaultConfTarget = 6

// node is the part of rpcclient.Client served under /api/node.
type node interface {
	GetBlockchainInfo() (types.BlockchainInfo, error)
	EstimateSmartFee(confTarget int, mode string) (types.FeeResponse, error)
	GetMempoolInfo() (types.MempoolMinFeeResponse, error)
	ListUnspent() (types.ListUnspentResponse, error)
}

var _ node = (*rpcclient.Client)(nil)

type server struct {
	node node
	net  *chaincfg.Params
	log  logging.KVLogger
}

// newRouter wires the API. A nil node disables the /api/node routes.
func newRouter(n node, net *chaincfg.Params, log logging.KVLogger) *gin.Engine {
	s := &server{node: n, net: net, log: log}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/api/health", s.handleHealth)
	r.POST("/api/decode/:method", s.handleDecode)

	api := r.Group("/api/node", s.requireNode)
	api.GET("/tip", s.handleTip)
	api.GET("/fee", s.handleFee)
	api.GET("/mempoolfee", s.handleMempoolFee)
	api.GET("/utxos", s.handleUtxos)

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
	})
	return r
}

func (s *server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"node":    s.node != nil,
		"methods": parser.Methods(),
	})
}

func (s *server) handleDecode(c *gin.Context) {
	method := c.Param("method")

	net := s.net
	if chain := c.Query("chain"); chain != "" {
		var err error
		if net, err = analyzer.NetworkParams(chain); err != nil {
			c.JSON(http.StatusBadRequest, types.Report{
				Method:   method,
				Warnings: []types.Warning{},
				Error:    &types.ErrorInfo{Code: "INVALID_REQUEST", Message: err.Error()},
			})
			return
		}
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.Report{
			Method:   method,
			Warnings: []types.Warning{},
			Error:    &types.ErrorInfo{Code: "INVALID_REQUEST", Message: "Failed to read request body"},
		})
		return
	}

	raw, err := parser.FromBytes(body)
	if err != nil {
		s.fail(c, http.StatusBadRequest, method, err)
		return
	}
	var opts []parser.Option
	if net != nil {
		opts = append(opts, parser.WithNetwork(net))
	}
	result, err := parser.Decode(method, raw, opts...)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, parser.ErrUnknownMethod) {
			status = http.StatusNotFound
		}
		s.fail(c, status, method, err)
		return
	}
	c.JSON(http.StatusOK, report.Build(method, result, net))
}

func (s *server) requireNode(c *gin.Context) {
	if s.node == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, types.Report{
			Warnings: []types.Warning{},
			Error:    &types.ErrorInfo{Code: "NO_NODE", Message: "no bitcoind endpoint configured"},
		})
		return
	}
	c.Next()
}

func (s *server) handleTip(c *gin.Context) {
	info, err := s.node.GetBlockchainInfo()
	s.respond(c, parser.MethodGetBlockchainInfo, info, err)
}

func (s *server) handleFee(c *gin.Context) {
	target := defaultConfTarget
	if v := c.Query("target"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 1008 {
			c.JSON(http.StatusBadRequest, types.Report{
				Method:   parser.MethodEstimateSmartFee,
				Warnings: []types.Warning{},
				Error:    &types.ErrorInfo{Code: "INVALID_REQUEST", Message: "target must be between 1 and 1008"},
			})
			return
		}
		target = n
	}
	fee, err := s.node.EstimateSmartFee(target, c.Query("mode"))
	s.respond(c, parser.MethodEstimateSmartFee, fee, err)
}

func (s *server) handleMempoolFee(c *gin.Context) {
	info, err := s.node.GetMempoolInfo()
	s.respond(c, parser.MethodGetMempoolInfo, info, err)
}

func (s *server) handleUtxos(c *gin.Context) {
	utxos, err := s.node.ListUnspent()
	s.respond(c, parser.MethodListUnspent, utxos, err)
}

func (s *server) respond(c *gin.Context, method string, result any, err error) {
	if err != nil {
		s.fail(c, http.StatusBadGateway, method, err)
		return
	}
	c.JSON(http.StatusOK, report.Build(method, result, s.net))
}

func (s *server) fail(c *gin.Context, status int, method string, err error) {
	s.log.Warn("request failed", "method", method, "status", status, "err", err)
	c.JSON(status, report.Failure(method, err))
}
