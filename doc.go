// Package household simulates the personal finances of a household month by
// month over several decades.
//
// The core functionalities include:
//   - Income: a salary raised every year, taxed progressively on a projection
//     of the year to date income, with a tax return at each year end.
//   - Inflation: incomes are taxed in real terms, asset prices follow
//     inflation.
//   - Allocation: a SpendingStrategy splits each net paycheck into spending,
//     retirement saving, disposable spending, giving and investing.
//   - Investments: share based accounts compounding monthly, with a weighted
//     average cost basis to tax the gains of each withdrawal.
//   - Assets: rented properties appreciating yearly and paying a monthly
//     dividend net of their expenses.
//   - Reporting: a YearSummary per simulated year, sent to a Sink.
//
// A PortfolioManager runs a Scenario. Scenarios are read from YAML or TOML
// files. This package serves as the foundational logic for the `hhsim`
// command-line tool.
package household
