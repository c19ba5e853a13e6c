package database

import (
	"fmt"
	"log"
	"time"

	"finsight/internal/config"
	"finsight/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

func New(cfg *config.DatabaseConfig) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.User{},
		&models.Budget{},
		&models.Transaction{},
		&models.Alert{},
		&models.Goal{},
		&models.Receipt{},
	)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (db *DB) Transaction(fn func(*gorm.DB) error) error {
	return db.DB.Transaction(fn)
}

func (db *DB) CreateIndexes() error {
	queries := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",
		"CREATE INDEX IF NOT EXISTS idx_users_deleted_at ON users(deleted_at) WHERE deleted_at IS NULL",
		// Budget indexes
		"CREATE INDEX IF NOT EXISTS idx_budgets_user_id ON budgets(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_budgets_name_lower ON budgets(LOWER(name))",
		// Transaction indexes
		"CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_txn_date ON transactions(txn_date)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_category_lower ON transactions(LOWER(category))",
		// Alert indexes: status and (message, created_at) back the analyzer's
		// active-alert lookups and the daily dedup check
		"CREATE INDEX IF NOT EXISTS idx_alerts_status ON alerts(status)",
		"CREATE INDEX IF NOT EXISTS idx_alerts_message_created_at ON alerts(message, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts(created_at)",
		// Goal and receipt indexes
		"CREATE INDEX IF NOT EXISTS idx_goals_user_id ON goals(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_receipts_user_id ON receipts(user_id)",
	}

	for _, query := range queries {
		if err := db.DB.Exec(query).Error; err != nil {
			log.Printf("Failed to create index: %s, error: %v", query, err)
		}
	}

	return nil
}

func (db *DB) SeedAdminUser(email, passwordHash, firstName, lastName string) (*models.User, error) {
	var existingUser models.User
	if err := db.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		return &existingUser, nil
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         models.RoleAdmin,
	}

	if err := db.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	return user, nil
}

// Initialize creates and configures the database connection
func Initialize(cfg *config.Config) (*gorm.DB, error) {
	db, err := New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	// Get the underlying sql.DB for migration runner
	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Run SQL-based migrations using golang-migrate if enabled
	if err := RunMigrationsIfEnabled(sqlDB); err != nil {
		log.Printf("Warning: migration runner failed: %v", err)
		log.Println("Falling back to GORM AutoMigrate...")

		// Fallback to GORM AutoMigrate
		if err := db.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if err := db.CreateIndexes(); err != nil {
		log.Printf("Warning: failed to create some indexes: %v", err)
	}

	log.Println("Database initialized successfully")

	return db.DB, nil
}
