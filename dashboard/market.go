package dashboard

import (
	"context"

	"github.com/pkg/errors"

	"github.com/harmony-one/btcdash/bitcoind"
)

// Market is the fiat price and circulating supply shown on the dashboard.
type Market struct {
	Price            float64
	TotalMoneySupply float64
}

// MarketSource supplies the market data of a dashboard snapshot.
type MarketSource interface {
	CurrentMarket(ctx context.Context) (Market, error)
}

// StaticMarket is a MarketSource answering constant values.
type StaticMarket Market

// CurrentMarket implements MarketSource.
func (m StaticMarket) CurrentMarket(context.Context) (Market, error) {
	return Market(m), nil
}

// UTXOSetMarket answers a constant price and reads the total supply from
// the UTXO set of the node.
type UTXOSetMarket struct {
	Price    float64
	Provider bitcoind.Provider
}

// CurrentMarket implements MarketSource.
func (m *UTXOSetMarket) CurrentMarket(ctx context.Context) (Market, error) {
	info, err := m.Provider.GetTxOutSetInfo(ctx)
	if err != nil {
		return Market{}, errors.Wrap(err, "cannot get total money supply")
	}
	return Market{Price: m.Price, TotalMoneySupply: info.TotalAmount}, nil
}
