package chain

import (
	"context"
	stderrors "errors"
	"math/big"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/jpillora/backoff"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/php369/kyc-blockchain-system/errors"
)

const defaultReceiptTimeout = 5 * time.Minute

// EthereumGateway implements Gateway over JSON-RPC against an EVM node.
type EthereumGateway struct {
	client         *ethclient.Client
	contract       common.Address
	abi            abi.ABI
	signer         TxSigner
	chainID        *big.Int
	receiptTimeout time.Duration
	writeLimiter   ratelimit.Limiter
}

type GatewayOption func(*EthereumGateway)

func WithReceiptTimeout(timeout time.Duration) GatewayOption {
	return func(g *EthereumGateway) {
		g.receiptTimeout = timeout
	}
}

// WithWriteRatelimiter caps the rate of state-changing calls.
func WithWriteRatelimiter(limiter ratelimit.Limiter) GatewayOption {
	return func(g *EthereumGateway) {
		g.writeLimiter = limiter
	}
}

// NewEthereumGateway dials the node and binds the registry contract.
func NewEthereumGateway(ctx context.Context, rpcURL string, contract common.Address, signer TxSigner, opts ...GatewayOption) (*EthereumGateway, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, &errors.NetworkError{Err: err}
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, &errors.NetworkError{Err: err}
	}

	parsed, err := abi.JSON(strings.NewReader(registryABI))
	if err != nil {
		client.Close()
		return nil, err
	}

	g := &EthereumGateway{
		client:         client,
		contract:       contract,
		abi:            parsed,
		signer:         signer,
		chainID:        chainID,
		receiptTimeout: defaultReceiptTimeout,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *EthereumGateway) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

// ChainID queries the node for its current chain identity. Used by the
// network watcher, deliberately not cached.
func (g *EthereumGateway) ChainID(ctx context.Context) (*big.Int, error) {
	if g == nil || g.client == nil {
		return nil, &errors.NotInitializedError{}
	}
	id, err := g.client.ChainID(ctx)
	if err != nil {
		return nil, wrapCallError(err)
	}
	return id, nil
}

// Read performs a view call against the registry contract.
func (g *EthereumGateway) Read(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	if g == nil || g.client == nil {
		return nil, &errors.NotInitializedError{}
	}

	data, err := g.abi.Pack(method, args...)
	if err != nil {
		return nil, err
	}

	res, err := g.client.CallContract(ctx, ethereum.CallMsg{To: &g.contract, Data: data}, nil)
	if err != nil {
		return nil, wrapCallError(err)
	}

	return g.abi.Unpack(method, res)
}

// Write submits a state-changing call as the given actor and waits for
// the transaction to be mined before resolving.
func (g *EthereumGateway) Write(ctx context.Context, actor common.Address, method string, args ...interface{}) (*Receipt, error) {
	if g == nil || g.client == nil {
		return nil, &errors.NotInitializedError{}
	}
	if g.signer == nil {
		return nil, &errors.NotInitializedError{Err: stderrors.New("no transaction signer configured")}
	}

	if g.writeLimiter != nil {
		g.writeLimiter.Take()
	}

	data, err := g.abi.Pack(method, args...)
	if err != nil {
		return nil, err
	}

	nonce, err := g.client.PendingNonceAt(ctx, actor)
	if err != nil {
		return nil, wrapCallError(err)
	}

	gasPrice, err := g.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, wrapCallError(err)
	}

	// Gas estimation runs the call on the node, contract-side permission
	// and precondition failures surface here before anything is sent.
	gasLimit, err := g.client.EstimateGas(ctx, ethereum.CallMsg{
		From: actor,
		To:   &g.contract,
		Data: data,
	})
	if err != nil {
		return nil, wrapCallError(err)
	}

	tx := types.NewTransaction(nonce, g.contract, common.Big0, gasLimit, gasPrice, data)

	signed, err := g.signer.SignTx(actor, tx, g.chainID)
	if err != nil {
		return nil, err
	}

	if err := g.client.SendTransaction(ctx, signed); err != nil {
		return nil, wrapCallError(err)
	}

	log.WithFields(log.Fields{
		"method": method,
		"actor":  actor.Hex(),
		"txHash": signed.Hash().Hex(),
	}).Debug("Sent ledger write")

	return g.waitMined(ctx, signed.Hash())
}

// waitMined polls for the transaction receipt until the transaction is
// mined, the context is cancelled or the receipt timeout passes.
func (g *EthereumGateway) waitMined(ctx context.Context, txHash common.Hash) (*Receipt, error) {
	if g.receiptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.receiptTimeout)
		defer cancel()
	}

	b := &backoff.Backoff{
		Min:    500 * time.Millisecond,
		Max:    5 * time.Second,
		Factor: 2,
	}

	for {
		receipt, err := g.client.TransactionReceipt(ctx, txHash)
		if err == nil {
			if receipt.Status == types.ReceiptStatusFailed {
				return nil, &errors.RemoteRejectedError{Reason: "transaction reverted"}
			}
			return &Receipt{
				TxHash:      txHash.Hex(),
				BlockNumber: receipt.BlockNumber.Uint64(),
				GasUsed:     receipt.GasUsed,
			}, nil
		}

		if !stderrors.Is(err, ethereum.NotFound) {
			return nil, wrapCallError(err)
		}

		select {
		case <-ctx.Done():
			return nil, wrapCallError(ctx.Err())
		case <-time.After(b.Duration()):
		}
	}
}

var revertReasonRe = regexp.MustCompile(`execution reverted:?\s*(.*)`)

// wrapCallError maps transport-level failures onto the application error
// taxonomy in one place, so raw node errors never reach the resolver or
// the workflow engine.
func wrapCallError(err error) error {
	if err == nil {
		return nil
	}

	if stderrors.Is(err, context.Canceled) {
		return &errors.UserCancelledError{}
	}

	msg := err.Error()

	if m := revertReasonRe.FindStringSubmatch(msg); m != nil {
		reason := strings.Trim(m[1], `" `)
		return &errors.RemoteRejectedError{Reason: reason, Err: err}
	}

	if isConnectionError(err) {
		return &errors.NetworkError{Err: err}
	}

	return err
}

func isConnectionError(err error) bool {
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return true
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := err.Error()
	for _, s := range []string{
		"connection refused",
		"connection reset",
		"no such host",
		"i/o timeout",
		"EOF",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}

	return false
}
