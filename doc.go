// Package dcasim simulates periodic ("dollar-cost-averaging") investment into
// one or more securities over a historical date range, and tracks the
// resulting portfolio day by day.
//
// The core functionalities include:
//   - Scheduling: turning a date range and a recurrence rule (day of month,
//     or daily/weekly/monthly frequency) into the sequence of nominal
//     investment dates.
//   - Execution resolution: rolling a buy order scheduled on a closed market
//     day forward to the next market open, at that day's open price.
//   - Position ledger: the append-only log of executed buys, with exact
//     share and capital accumulation per security.
//   - Valuation: replaying the ledger against the full daily price history
//     to produce per-day, per-security and aggregated development rows
//     (shares, capital, value, gain, return) in a single base currency.
//   - Metrics and comparisons: fixed-window performance deltas (1D to MAX),
//     a lump-sum baseline, and an inflation-adjusted buying-power series.
//   - Dividend accrual: valuing dividend events against the shares held.
//
// Market data, exchange rates and inflation indexes are external
// collaborators behind the Provider, RateSource and Index interfaces; the
// yahoo, ecb and cpi packages implement them. Everything in one simulation
// run (ledger, caches, conversion notes) is scoped to that run.
//
// This package serves as the foundational logic for the `dca` command-line
// tool.
package dcasim
