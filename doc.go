// Package capgains computes realized capital gains from a ledger of buy and sell transactions.
//
// Sales are matched against purchases of the same scrip on a First-In-First-Out basis: the
// oldest lots are consumed first and a partially sold lot is split proportionally, its amount and
// expenses shrinking with its quantity. Each matched fragment produces a [MatchRecord] whose gain
// is classified as short or long term depending on the holding period, counted in 30-day months,
// with a 12 months threshold.
//
// The package covers the whole batch pipeline:
//   - Loading: [LoadTransactions] reads CSV or Excel ledgers, parsing "15-Jan-2021" dates and
//     numbers with thousands separators.
//   - Matching: [MatchFIFO] produces the records, the sales that could not be fully covered and
//     the lots still open.
//   - Writing: [SaveRecords] writes the records as CSV, Excel or JSONL.
//   - Reporting: [NewGainsReport] sums the gains per scrip for a range of sale dates.
package capgains
