package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-backoffice/models"
	"hotel-backoffice/utils"

	mysqlcfg "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}
	port := u.Port()
	if port == "" {
		port = "3306"
	}
	pass, _ := u.User.Password()

	c := mysqlcfg.NewConfig()
	c.User = u.User.Username()
	c.Passwd = pass
	c.Net = "tcp"
	c.Addr = u.Hostname() + ":" + port
	c.DBName = dbName
	c.ParseTime = true
	c.Loc = time.Local
	c.Params = map[string]string{"charset": "utf8mb4"}
	for k, v := range u.Query() {
		if len(v) > 0 && k != "parseTime" && k != "loc" {
			c.Params[k] = v[0]
		}
	}
	return c.FormatDSN(), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	c := mysqlcfg.NewConfig()
	c.User = utils.EnvOrDefault("DB_USER", "root")
	c.Passwd = utils.EnvOrDefault("DB_PASS", "")
	c.Net = "tcp"
	c.Addr = utils.EnvOrDefault("DB_HOST", "127.0.0.1") + ":" + utils.EnvOrDefault("DB_PORT", "3306")
	c.DBName = utils.EnvOrDefault("DB_NAME", "hotel_db")
	c.ParseTime = true
	c.Loc = time.Local
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c.FormatDSN(), nil
}

func resolvePostgresDSN() string {
	if raw := strings.TrimSpace(os.Getenv("DATABASE_URL")); raw != "" {
		return raw
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		utils.EnvOrDefault("DB_HOST", "127.0.0.1"),
		utils.EnvOrDefault("DB_PORT", "5432"),
		utils.EnvOrDefault("DB_USER", "postgres"),
		utils.EnvOrDefault("DB_PASS", ""),
		utils.EnvOrDefault("DB_NAME", "hotel_db"),
		utils.EnvOrDefault("DB_SSLMODE", "disable"),
	)
}

func dialector(cfg *Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "mysql":
		dsn, err := resolveMySQLDSN()
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(resolvePostgresDSN()), nil
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}

// NewGormLogger routes SQL logging through the application logger.
func NewGormLogger(log *logrus.Logger, level string) logger.Interface {
	return logger.New(log, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormLogLevel(level),
		IgnoreRecordNotFoundError: true,
	})
}

// ConnectDatabase opens the configured database, migrates the schema and
// seeds reference data.
func ConnectDatabase(cfg *Config, log *logrus.Logger) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(d, &gorm.Config{
		Logger:         NewGormLogger(log, cfg.DBLogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := Seed(db, log, cfg.SeedDemo); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table, parents before children.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.RolePermission{},
		&models.Client{},
		&models.User{},
		&models.Room{},
		&models.Tariff{},
		&models.Service{},
		&models.Reservation{},
		&models.ReservationService{},
		&models.Consumption{},
		&models.Invoice{},
		&models.Review{},
		&models.AuditLog{},
	)
}
