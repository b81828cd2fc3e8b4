// Package stockmarket models a single-investor securities portfolio:
// buying and selling heterogeneous assets (shares, commodities,
// currencies), tracking tax-lot-level cost basis, computing realized
// profit on sale with FIFO lot accounting, and persisting and reporting
// portfolio state.
//
// The package is a pure in-memory model. Portfolio and Position are not
// safe for concurrent mutation; a host application that needs concurrent
// access must serialize all mutating calls to a given Portfolio.
package stockmarket
