package lnswap

import (
	"fmt"
	"os"

	"github.com/lightningnetwork/lnd/lnrpc"
	"github.com/lightningnetwork/lnd/lnrpc/invoicesrpc"
	"github.com/lightningnetwork/lnd/macaroons"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	macaroon "gopkg.in/macaroon.v2"
)

// Config points at an lnd node. The macaroon needs invoice write and
// off-chain send permissions.
type Config struct {
	Host         string `json:"host"`
	TLSCertPath  string `json:"tlsCertPath"`
	MacaroonPath string `json:"macaroonPath"`
}

// Client wraps the lnd grpc surface used for swaps.
type Client struct {
	logger   *zap.Logger
	opts     Options
	ln       lnrpc.LightningClient
	invoices invoicesrpc.InvoicesClient
	conn     *grpc.ClientConn
}

func NewClient(logger *zap.Logger, cfg Config, opts Options) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	creds, err := credentials.NewClientTLSFromFile(cfg.TLSCertPath, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load tls cert: %w", err)
	}
	macBytes, err := os.ReadFile(cfg.MacaroonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read macaroon: %w", err)
	}
	mac := &macaroon.Macaroon{}
	if err := mac.UnmarshalBinary(macBytes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal macaroon: %w", err)
	}
	macCreds, err := macaroons.NewMacaroonCredential(mac)
	if err != nil {
		return nil, fmt.Errorf("failed to create macaroon credential: %w", err)
	}

	conn, err := grpc.Dial(cfg.Host,
		grpc.WithTransportCredentials(creds),
		grpc.WithPerRPCCredentials(macCreds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to dial lnd: %w", err)
	}

	return &Client{
		logger:   logger,
		opts:     opts,
		ln:       lnrpc.NewLightningClient(conn),
		invoices: invoicesrpc.NewInvoicesClient(conn),
		conn:     conn,
	}, nil
}

func (client *Client) Close() error {
	return client.conn.Close()
}
