package swapd

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/lnswapd/swapd/pkg/intent"
	"github.com/lnswapd/swapd/pkg/store"
	"github.com/lnswapd/swapd/pkg/swap/ethswap"
	"github.com/lnswapd/swapd/pkg/swap/lnswap"
	"github.com/lnswapd/swapd/pkg/util"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Swapd wires the three collaborators together and serves the JSON-RPC api.
type Swapd struct {
	logger       *zap.Logger
	orchestrator *Orchestrator
	server       *Server
	rpcAddr      string
}

func New(config util.Config) (*Swapd, error) {
	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}

	key, err := util.LoadKey(config.Mnemonic, 0)
	if err != nil {
		return nil, err
	}
	ecdsaKey, err := key.ECDSA()
	if err != nil {
		return nil, err
	}

	// Escrow wallet
	ethClient, err := ethclient.Dial(config.EthURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial eth node: %w", err)
	}
	swapOpts := ethswap.NewOptions(big.NewInt(config.ChainID), common.HexToAddress(config.SwapAddress))
	wallet, err := ethswap.NewWallet(ecdsaKey, ethClient, swapOpts)
	if err != nil {
		return nil, err
	}
	escrow := NewContractEscrow(wallet, swapOpts)

	// Lightning node
	lightning, err := lnswap.NewClient(log, lnswap.Config{
		Host:         config.LNDHost,
		TLSCertPath:  config.LNDTLSCertPath,
		MacaroonPath: config.LNDMacaroonPath,
	}, lnswap.NewOptions())
	if err != nil {
		return nil, err
	}

	// Negotiation ledger, identity derived from the wallet key
	signature, err := key.SignMessage(intent.IdentityMessage)
	if err != nil {
		return nil, err
	}
	identity, err := intent.DeriveIdentity(signature)
	if err != nil {
		return nil, err
	}
	relays, err := intent.NewRelays(log, config.Relays)
	if err != nil {
		return nil, err
	}
	ledger := intent.NewLedger(log, relays, identity, config.Topic)

	// Journal
	dbPath := config.DB
	if dbPath == "" {
		dbPath = util.DefaultStorePath()
	}
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	journal, err := store.NewStore(db)
	if err != nil {
		return nil, err
	}

	orchConfig := DefaultConfig()
	if config.LockMarginSeconds > 0 {
		orchConfig.LockMargin = time.Duration(config.LockMarginSeconds) * time.Second
	}
	orchConfig.AllowSelfAccept = config.AllowSelfAccept
	orchConfig.AutoRefund = config.AutoRefund
	orchestrator := NewOrchestrator(log, orchConfig, escrow, lightning, ledger, journal)

	rpcAddr := config.RPCAddr
	if rpcAddr == "" {
		rpcAddr = "localhost:8424"
	}
	server := NewServer(log, orchestrator, config.RPCUsername, config.RPCPassword)

	return &Swapd{
		logger:       log,
		orchestrator: orchestrator,
		server:       server,
		rpcAddr:      rpcAddr,
	}, nil
}

// Start launches the reconcile loop and blocks serving the RPC api.
func (swapd *Swapd) Start() error {
	swapd.orchestrator.Start()
	swapd.logger.Info("swapd started", zap.String("rpc", swapd.rpcAddr))
	return swapd.server.Run(swapd.rpcAddr)
}

func (swapd *Swapd) Stop() {
	swapd.orchestrator.Stop()
}
