// Package cli provides the interactive EasyFlow command-line client.
//
// It wires configuration, the local session store, the API gateway client,
// and an interactive REPL. Typical flow: restore a persisted session, then
// execute user commands until exit.
//
// Key features:
//   - Register / Login / Logout with silent background token refresh
//   - Invoices: list, create, generate and download PDFs, delete
//   - Expenses: list, create (with optional receipt upload), delete
//   - Monthly and all-time income/expense summaries
//   - Plan upgrades and the hosted billing portal
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
