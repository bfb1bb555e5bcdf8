package swapd

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lnswapd/swapd/pkg/swap"
	"github.com/lnswapd/swapd/pkg/util"
	"go.uber.org/zap"
)

// Request defines a JSON-RPC 2.0 request object.
type Request struct {
	Version string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response defines a JSON-RPC 2.0 response object.
type Response struct {
	Version string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error defines a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

const (
	ErrorCodeParseError     = -32700
	ErrorCodeInvalidRequest = -32600
	ErrorCodeMethodNotFound = -32601
	ErrorCodeInvalidParams  = -32602
	ErrorCodeInternalError  = -32603
)

func NewResponse(id interface{}, result json.RawMessage, err *Error) Response {
	return Response{Version: "2.0", ID: id, Result: result, Error: err}
}

func NewError(code int, message, data string) *Error {
	return &Error{Code: code, Message: message, Data: data}
}

var errMissingDTag = errors.New("missing dTag param")

type method func(ctx context.Context, params json.RawMessage) (interface{}, error)

// Server exposes the orchestrator over authenticated JSON-RPC.
type Server struct {
	logger  *zap.Logger
	methods map[string]method
	authsha [sha256.Size]byte
	auth    bool
}

func NewServer(logger *zap.Logger, orchestrator *Orchestrator, username, password string) *Server {
	server := &Server{
		logger:  logger,
		methods: map[string]method{},
	}
	if username != "" || password != "" {
		login := username + ":" + password
		auth := "Basic " + base64.StdEncoding.EncodeToString([]byte(login))
		server.authsha = sha256.Sum256([]byte(auth))
		server.auth = true
	}
	server.register(orchestrator)
	return server
}

func (server *Server) register(orch *Orchestrator) {
	server.methods["listIntentions"] = func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return orch.List(ctx)
	}

	server.methods["proposeSwap"] = func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		var req struct {
			WantedAsset string `json:"wantedAsset"`
			AmountBNB   string `json:"amountBNB"`
			AmountSats  string `json:"amountSats"`
		}
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, err
		}
		return orch.Propose(ctx, swap.Asset(req.WantedAsset), req.AmountBNB, req.AmountSats)
	}

	server.methods["acceptSwap"] = func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		dTag, err := dTagParam(params)
		if err != nil {
			return nil, err
		}
		if err := orch.Accept(ctx, dTag); err != nil {
			return nil, err
		}
		return gin.H{"dTag": dTag, "status": "accepted"}, nil
	}

	server.methods["publishInvoice"] = func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		dTag, err := dTagParam(params)
		if err != nil {
			return nil, err
		}
		invoice, err := orch.PublishInvoice(ctx, dTag)
		if err != nil {
			return nil, err
		}
		return gin.H{
			"dTag":           dTag,
			"paymentRequest": invoice.PaymentRequest,
			"paymentHash":    util.HashToHex(invoice.PaymentHash),
		}, nil
	}

	server.methods["lockFunds"] = func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return txMethod(ctx, params, orch.Lock)
	}
	server.methods["claimFunds"] = func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return txMethod(ctx, params, orch.Claim)
	}
	server.methods["refundFunds"] = func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return txMethod(ctx, params, orch.Refund)
	}

	server.methods["swapStatus"] = func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		dTag, err := dTagParam(params)
		if err != nil {
			return nil, err
		}
		status, err := orch.Status(ctx, dTag)
		if err != nil {
			return nil, err
		}
		return gin.H{
			"dTag":      dTag,
			"state":     status.State.String(),
			"intention": status.Intention,
			"lastError": status.LastError,
		}, nil
	}
}

// Run blocks serving the api on addr.
func (server *Server) Run(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.POST("/", server.authenticate, server.handle)
	return router.Run(addr)
}

// Handler exposes the gin handler chain for tests.
func (server *Server) Handler() http.Handler {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/", server.authenticate, server.handle)
	return router
}

func (server *Server) authenticate(ctx *gin.Context) {
	if !server.auth {
		return
	}
	authsha := sha256.Sum256([]byte(ctx.GetHeader("Authorization")))
	if subtle.ConstantTimeCompare(authsha[:], server.authsha[:]) != 1 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized,
			NewResponse(nil, nil, NewError(ErrorCodeInvalidRequest, "unauthorized", "")))
	}
}

func (server *Server) handle(ctx *gin.Context) {
	req := Request{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, NewResponse(req.ID, nil, NewError(ErrorCodeParseError, "Parse error", err.Error())))
		return
	}

	handler, ok := server.methods[req.Method]
	if !ok {
		ctx.JSON(http.StatusNotFound, NewResponse(req.ID, nil, NewError(ErrorCodeMethodNotFound, "Method not found", req.Method)))
		return
	}

	result, err := handler(ctx.Request.Context(), req.Params)
	if err != nil {
		server.logger.Warn("rpc method failed", zap.String("method", req.Method), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, NewResponse(req.ID, nil, NewError(ErrorCodeInternalError, "Internal error", err.Error())))
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, NewResponse(req.ID, nil, NewError(ErrorCodeInternalError, "Internal error", err.Error())))
		return
	}
	ctx.JSON(http.StatusOK, NewResponse(req.ID, raw, nil))
}

func dTagParam(params json.RawMessage) (string, error) {
	var req struct {
		DTag string `json:"dTag"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return "", err
	}
	if req.DTag == "" {
		return "", errMissingDTag
	}
	return req.DTag, nil
}

func txMethod(ctx context.Context, params json.RawMessage, op func(ctx context.Context, dTag string) (string, error)) (interface{}, error) {
	dTag, err := dTagParam(params)
	if err != nil {
		return nil, err
	}
	txHash, err := op(ctx, dTag)
	if err != nil {
		return nil, err
	}
	return gin.H{"dTag": dTag, "txHash": txHash}, nil
}
