package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pocketwatch/pocketwatch/internal/model"
	"github.com/shopspring/decimal"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements Store on a SQLite database. The ledger still owns
// the working state in memory; Save replaces the whole snapshot in one
// database transaction, and Load reads it back.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the full snapshot, seeding defaults when the database holds
// no settings row yet (first run).
func (s *SQLiteStore) Load(ctx context.Context) (*model.AppData, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	settings, found, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return DefaultAppData(), nil
	}

	transactions, err := s.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	budgets, err := s.loadBudgets(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}

	data := &model.AppData{
		Transactions: transactions,
		Budgets:      budgets,
		Categories:   categories,
		Settings:     settings,
	}
	data.Normalize()
	return data, nil
}

// Save replaces the stored snapshot inside one database transaction.
func (s *SQLiteStore) Save(ctx context.Context, data *model.AppData) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("%w: data", ErrNilParameter)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"transactions", "budgets", "categories", "settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := s.saveTransactionsTx(ctx, tx, data.Transactions); err != nil {
		return err
	}
	if err := s.saveBudgetsTx(ctx, tx, data.Budgets); err != nil {
		return err
	}
	if err := s.saveCategoriesTx(ctx, tx, data.Categories); err != nil {
		return err
	}
	if err := s.saveSettingsTx(ctx, tx, data.Settings); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) saveTransactionsTx(ctx context.Context, tx *sql.Tx, transactions []model.Transaction) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (id, date, category, description, notes, type, amount)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare transaction insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		_, err := stmt.ExecContext(ctx,
			txn.ID,
			txn.Date.Format("2006-01-02"),
			txn.Category,
			txn.Description,
			txn.Notes,
			string(txn.Type),
			txn.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
		}
	}
	return nil
}

func (s *SQLiteStore) saveBudgetsTx(ctx context.Context, tx *sql.Tx, budgets []model.Budget) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO budgets (id, name, categories, amount, period, start_date, notes, is_template)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare budget insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, b := range budgets {
		categories, marshalErr := json.Marshal(b.Categories)
		if marshalErr != nil {
			return fmt.Errorf("failed to encode budget categories: %w", marshalErr)
		}
		_, err := stmt.ExecContext(ctx,
			b.ID,
			b.Name,
			string(categories),
			b.Amount.String(),
			string(b.Period),
			b.StartDate.Format("2006-01-02"),
			b.Notes,
			b.IsTemplate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert budget %s: %w", b.ID, err)
		}
	}
	return nil
}

func (s *SQLiteStore) saveCategoriesTx(ctx context.Context, tx *sql.Tx, categories []model.Category) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO categories (id, name, type, color, icon)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare category insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range categories {
		if _, err := stmt.ExecContext(ctx, c.ID, c.Name, string(c.Type), c.Color, c.Icon); err != nil {
			return fmt.Errorf("failed to insert category %s: %w", c.ID, err)
		}
	}
	return nil
}

func (s *SQLiteStore) saveSettingsTx(ctx context.Context, tx *sql.Tx, settings model.Settings) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO settings (id, currency, first_day_of_month, theme, updated_at)
		VALUES (1, ?, ?, ?, ?)`,
		settings.Currency, settings.FirstDayOfMonth, settings.Theme, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert settings: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, category, description, notes, type, amount
		FROM transactions
		ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	transactions := []model.Transaction{}
	for rows.Next() {
		var (
			txn     model.Transaction
			date    string
			typ     string
			amount  string
		)
		if err := rows.Scan(&txn.ID, &date, &txn.Category, &txn.Description, &txn.Notes, &typ, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if txn.Date, err = time.Parse("2006-01-02", date); err != nil {
			return nil, fmt.Errorf("failed to parse transaction date %q: %w", date, err)
		}
		if txn.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse transaction amount %q: %w", amount, err)
		}
		txn.Type = model.TransactionType(typ)
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

func (s *SQLiteStore) loadBudgets(ctx context.Context) ([]model.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, categories, amount, period, start_date, notes, is_template
		FROM budgets
		ORDER BY start_date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	budgets := []model.Budget{}
	for rows.Next() {
		var (
			b          model.Budget
			categories string
			amount     string
			period     string
			startDate  string
		)
		if err := rows.Scan(&b.ID, &b.Name, &categories, &amount, &period, &startDate, &b.Notes, &b.IsTemplate); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		if err := json.Unmarshal([]byte(categories), &b.Categories); err != nil {
			return nil, fmt.Errorf("failed to decode budget categories: %w", err)
		}
		if b.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse budget amount %q: %w", amount, err)
		}
		if b.StartDate, err = time.Parse("2006-01-02", startDate); err != nil {
			return nil, fmt.Errorf("failed to parse budget start date %q: %w", startDate, err)
		}
		b.Period = model.BudgetPeriod(period)
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

func (s *SQLiteStore) loadCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type, color, icon
		FROM categories
		ORDER BY CAST(id AS INTEGER), id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := []model.Category{}
	for rows.Next() {
		var (
			c   model.Category
			typ string
		)
		if err := rows.Scan(&c.ID, &c.Name, &typ, &c.Color, &c.Icon); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Type = model.CategoryType(typ)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

func (s *SQLiteStore) loadSettings(ctx context.Context) (model.Settings, bool, error) {
	var settings model.Settings
	err := s.db.QueryRowContext(ctx, `
		SELECT currency, first_day_of_month, theme
		FROM settings
		WHERE id = 1`).Scan(&settings.Currency, &settings.FirstDayOfMonth, &settings.Theme)
	if err == sql.ErrNoRows {
		return model.Settings{}, false, nil
	}
	if err != nil {
		return model.Settings{}, false, fmt.Errorf("failed to query settings: %w", err)
	}
	return settings, true, nil
}
