package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/easyflowhq/easyflow/internal/client/api"
	"github.com/easyflowhq/easyflow/internal/client/config"
	"github.com/easyflowhq/easyflow/internal/client/models"
	"github.com/easyflowhq/easyflow/internal/client/session"
	"github.com/easyflowhq/easyflow/internal/client/store"
	"github.com/easyflowhq/easyflow/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionService is the slice of the session manager the CLI drives.
// *session.Manager satisfies it; tests substitute a fake.
type sessionService interface {
	IsAuthenticated() bool
	User() *models.User
	Login(ctx context.Context, email, password string) bool
	Register(ctx context.Context, email, password, companyName string) bool
	Logout(ctx context.Context)
	Restore(ctx context.Context) error
	Close()
}

// gatewayService is the slice of the API client the commands call.
// *api.Client satisfies it; tests substitute a fake.
type gatewayService interface {
	Invoices(ctx context.Context, page, pageSize int) ([]models.Invoice, error)
	CreateInvoice(ctx context.Context, in models.NewInvoice) (*models.Invoice, error)
	GenerateInvoicePDF(ctx context.Context, id string, template models.PDFTemplate) (*models.GeneratedPDF, error)
	DownloadInvoicePDF(ctx context.Context, id string) ([]byte, error)
	DeleteInvoice(ctx context.Context, id string) error
	Expenses(ctx context.Context, page, pageSize int) ([]models.Expense, error)
	CreateExpense(ctx context.Context, in api.ExpenseInput) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	MonthlySummary(ctx context.Context, params api.SummaryParams) (*models.Summary, error)
	CreateCheckout(ctx context.Context) (*models.CheckoutSession, error)
	CreateEliteCheckout(ctx context.Context) (*models.CheckoutSession, error)
	BillingPortal(ctx context.Context) (*models.PortalSession, error)
	SubmitFeedback(ctx context.Context, fb models.Feedback) error
}

type App struct {
	config  *config.Config
	client  gatewayService
	session sessionService
	db      *sql.DB
	reader  *bufio.Reader
	log     logging.Logger
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := store.Open(ctx, c.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	repo := store.NewSQLiteRepository(db)
	client := api.New(api.Config{
		BaseURL:    c.BaseURL,
		APIKey:     c.APIKey,
		Tokens:     store.NewTokenStore(repo),
		HTTPClient: &http.Client{Timeout: c.RequestTimeout},
		Logger:     logger,
	})

	manager := session.NewManager(session.Config{
		Gateway:         client,
		DB:              db,
		Notifier:        &terminalNotifier{},
		Logger:          logger,
		RefreshInterval: c.RefreshInterval,
	})

	return &App{
		config:  c,
		client:  client,
		session: manager,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		log:     logger,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	u := a.session.User()
	if u == nil {
		return ""
	}
	s := u.Email
	if u.Plan != "" {
		s = s + " " + string(u.Plan)
	}
	return fmt.Sprintf("(%s)", s)
}

// Run restores a persisted session and hands control to the REPL. It blocks
// until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.session.Restore(ctx); err != nil {
		a.log.Warn(ctx, "failed to restore session", "error", err)
	}

	printlnFn("EasyFlow CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

// Close cancels the session scheduler and closes the local store. The
// persisted session survives for the next start.
func (a *App) Close() {
	a.session.Close()
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "failed to close database", "error", err)
	}
}
