package main

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/Rhymond/go-money"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/moneydash/moneydash/internal/config"
	"github.com/moneydash/moneydash/internal/database"
	"github.com/moneydash/moneydash/internal/database/repository"
	"github.com/moneydash/moneydash/internal/logger"
	"github.com/moneydash/moneydash/internal/merchant"
	"github.com/moneydash/moneydash/internal/service"
	"github.com/moneydash/moneydash/internal/timeline"
)

// app wires configuration, the database, repositories, and services for one
// command invocation.
type app struct {
	cfg config.Config
	db  *sql.DB
	log zerolog.Logger

	transactions *repository.TransactionRepo
	accounts     *repository.ChartOfAccountRepo
	merchants    *repository.MerchantRepo
	rules        *repository.MerchantSplitRuleRepo
	holdings     *repository.HoldingRepo
	invTxns      *repository.InvestmentTransactionRepo

	splitter    *service.SplitService
	categorizer *service.CategorizeService
	timelines   *service.TimelineService
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}
	if err := database.RunMigrations(cfg.Database.Path, cfg.Database.MigrationsPath); err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:          cfg,
		db:           db,
		log:          log,
		transactions: repository.NewTransactionRepo(db),
		accounts:     repository.NewChartOfAccountRepo(db),
		merchants:    repository.NewMerchantRepo(db),
		rules:        repository.NewMerchantSplitRuleRepo(db),
		holdings:     repository.NewHoldingRepo(db),
		invTxns:      repository.NewInvestmentTransactionRepo(db),
	}

	resolver := &merchant.Resolver{}
	if cfg.Lookup.Enabled {
		resolver.Lookup = a.merchants
	}
	matcher := timeline.NewMatcher(timeline.Config{
		MinWordLen:       cfg.Matcher.MinWordLen,
		MinStrongWordLen: cfg.Matcher.MinStrongWordLen,
	})

	a.splitter = &service.SplitService{
		Transactions: a.transactions,
		Accounts:     a.accounts,
		Splits:       repository.NewSplitRepo(db),
		Log:          log,
	}
	a.categorizer = &service.CategorizeService{
		Transactions: a.transactions,
		Merchants:    a.merchants,
		Rules:        a.rules,
		Splitter:     a.splitter,
		Resolver:     resolver,
		Log:          log,
	}
	a.timelines = &service.TimelineService{
		Holdings:               a.holdings,
		InvestmentTransactions: a.invTxns,
		Matcher:                matcher,
		Log:                    log,
	}
	return a, nil
}

func (a *app) Close() {
	_ = a.db.Close()
}

// formatMoney renders a decimal amount in the configured display currency.
func (a *app) formatMoney(d decimal.Decimal) string {
	return money.New(d.Shift(2).Round(0).IntPart(), a.cfg.UI.Currency).Display()
}
