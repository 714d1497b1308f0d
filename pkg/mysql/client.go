package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	dialRetries       = 10
	dialRetryInterval = 2 * time.Second
)

// Client 封裝 GORM DB 實例
type Client struct {
	db *gorm.DB
}

// NewClient 建立並回傳一個新的 MySQL 客戶端實例 (GORM)
//
// 參數:
//
//	cfg: Config - MySQL 連線配置
//
// 回傳值:
//
//	*Client: 封裝後的 MySQL 客戶端
//	error: 若連線失敗則回傳錯誤
//
// 容器環境下 DB 可能晚於服務啟動，因此帶重試機制
func NewClient(cfg Config) (*Client, error) {
	db, err := dial(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to mysql at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	// 取得底層 sql.DB 物件以設定連線池，防止資料庫連線耗盡
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.db: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &Client{db: db}, nil
}

// dial 嘗試連線並 ping，失敗就間隔重試
func dial(cfg Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		// 帳本變更自己開交易 (見 adapter)，預設單句操作不需要隱式事務
		SkipDefaultTransaction: true,
		Logger:                 newLogger(cfg.LogLevel),
	}

	var lastErr error
	for attempt := 1; attempt <= dialRetries; attempt++ {
		db, err := gorm.Open(mysql.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				if pingErr = sqlDB.Ping(); pingErr == nil {
					return db, nil
				}
			}
			err = pingErr
		}
		lastErr = err
		if attempt < dialRetries {
			log.Printf("MySQL not ready (attempt %d/%d): %v. Retrying in %v...", attempt, dialRetries, err, dialRetryInterval)
			time.Sleep(dialRetryInterval)
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", dialRetries, lastErr)
}

// DB 回傳底層的 *gorm.DB 實例，供業務邏輯層使用
func (c *Client) DB() *gorm.DB {
	return c.db
}

// Close 關閉資料庫連線
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// newLogger 根據配置建立 GORM Logger
func newLogger(level string) logger.Interface {
	var logLevel logger.LogLevel
	switch level {
	case "info":
		logLevel = logger.Info
	case "warn":
		logLevel = logger.Warn
	case "silent":
		logLevel = logger.Silent
	default:
		logLevel = logger.Error
	}
	return logger.Default.LogMode(logLevel)
}
