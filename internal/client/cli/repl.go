package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Invoices(ctx context.Context) error
	NewInvoice(ctx context.Context) error
	InvoicePDF(ctx context.Context) error
	DeleteInvoice(ctx context.Context) error
	Expenses(ctx context.Context) error
	NewExpense(ctx context.Context) error
	DeleteExpense(ctx context.Context) error
	Summary(ctx context.Context) error
	Upgrade(ctx context.Context) error
	Portal(ctx context.Context) error
	Feedback(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the EasyFlow CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - invoices       — list invoices
//	  - newinvoice     — create an invoice
//	  - pdf            — generate and download an invoice PDF
//	  - delinvoice     — delete an invoice
//	  - expenses       — list expenses
//	  - newexpense     — record an expense (optional receipt upload)
//	  - delexpense     — delete an expense
//	  - summary        — monthly or all-time income/expense summary
//	  - upgrade        — start a plan upgrade checkout
//	  - portal         — open the hosted billing portal
//	  - feedback       — send beta feedback
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ef> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (i)nvoices, newinvoice, pdf, delinvoice, (e)xpenses, newexpense, delexpense, summary, upgrade, portal, feedback, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "i", "invoices":
			_ = a.Invoices(ctx)

		case "newinvoice":
			_ = a.NewInvoice(ctx)

		case "pdf":
			_ = a.InvoicePDF(ctx)

		case "delinvoice":
			_ = a.DeleteInvoice(ctx)

		case "e", "expenses":
			_ = a.Expenses(ctx)

		case "newexpense":
			_ = a.NewExpense(ctx)

		case "delexpense":
			_ = a.DeleteExpense(ctx)

		case "summary":
			_ = a.Summary(ctx)

		case "upgrade":
			_ = a.Upgrade(ctx)

		case "portal":
			_ = a.Portal(ctx)

		case "feedback":
			_ = a.Feedback(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
