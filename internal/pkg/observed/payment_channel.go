package observed

import (
	"context"
	"time"

	"github.com/holiman/uint256"

	"github.com/goodnatureofminers/saleledger/internal/sale/engine"
	"github.com/goodnatureofminers/saleledger/internal/sale/model"
)

type PaymentChannel struct {
	channel engine.PaymentChannel
	metrics CallMetrics
}

func NewPaymentChannel(channel engine.PaymentChannel, metrics CallMetrics) *PaymentChannel {
	return &PaymentChannel{
		channel: channel,
		metrics: metrics,
	}
}

func (p *PaymentChannel) Forward(ctx context.Context, from, to model.Account, amount *uint256.Int) (err error) {
	started := time.Now()
	defer func() {
		p.metrics.Observe("forward", err, started)
	}()
	return p.channel.Forward(ctx, from, to, amount)
}

func (p *PaymentChannel) Deposit(ctx context.Context, from model.Account, amount *uint256.Int) (err error) {
	started := time.Now()
	defer func() {
		p.metrics.Observe("deposit", err, started)
	}()
	return p.channel.Deposit(ctx, from, amount)
}

func (p *PaymentChannel) Release(ctx context.Context, to model.Account, amount *uint256.Int) (err error) {
	started := time.Now()
	defer func() {
		p.metrics.Observe("release", err, started)
	}()
	return p.channel.Release(ctx, to, amount)
}

func (p *PaymentChannel) BalanceOf(ctx context.Context, account model.Account) (balance *uint256.Int, err error) {
	started := time.Now()
	defer func() {
		p.metrics.Observe("balance_of", err, started)
	}()
	return p.channel.BalanceOf(ctx, account)
}
