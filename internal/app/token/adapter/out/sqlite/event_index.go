// Package sqlite 以 SQLite 檔案索引轉帳通知事件
// 對應 Host 的「投遞/索引」責任：核心只發出事件，落地與查詢在這裡
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/JoeShih716/go-token-ledger/internal/app/token/domain"

	_ "modernc.org/sqlite"
)

const busyTimeoutMs = 5000

// EventIndex 將 TransferEvent 寫入 SQLite 的接收端
type EventIndex struct {
	mu sync.Mutex
	db *sql.DB
}

// IndexedTransfer 一筆已索引的轉帳紀錄
type IndexedTransfer struct {
	Seq        int64
	From       domain.AccountID
	To         domain.AccountID
	Value      uint256.Int
	RecordedAt time.Time
}

// NewEventIndex 開啟 (或建立) 索引檔並確保 schema 存在
func NewEventIndex(path string) (*EventIndex, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeoutMs)); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	ix := &EventIndex{db: db}
	if err := ix.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return ix, nil
}

func (ix *EventIndex) ensureSchema() error {
	_, err := ix.db.Exec(`CREATE TABLE IF NOT EXISTS transfers (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		from_id TEXT NOT NULL,
		to_id TEXT NOT NULL,
		value TEXT NOT NULL,
		recorded_at INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create transfers table: %w", err)
	}
	return nil
}

// OnTransfer 實作 domain.TransferSink
// Sink 介面不回傳錯誤，寫入失敗只記 log，不影響帳本操作
func (ix *EventIndex) OnTransfer(ev domain.TransferEvent) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	_, err := ix.db.Exec(
		`INSERT INTO transfers (from_id, to_id, value, recorded_at) VALUES (?, ?, ?, ?)`,
		ev.From.String(), ev.To.String(), ev.Value.Dec(), time.Now().UnixMilli(),
	)
	if err != nil {
		log.Printf("event index: record transfer failed: %v", err)
	}
}

// Count 已索引的轉帳筆數
func (ix *EventIndex) Count(ctx context.Context) (int64, error) {
	var count int64
	err := ix.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transfers`).Scan(&count)
	return count, err
}

// Recent 取最近 limit 筆轉帳，新到舊
func (ix *EventIndex) Recent(ctx context.Context, limit int) ([]IndexedTransfer, error) {
	rows, err := ix.db.QueryContext(ctx,
		`SELECT seq, from_id, to_id, value, recorded_at FROM transfers ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []IndexedTransfer
	for rows.Next() {
		var (
			tr         IndexedTransfer
			fromID     string
			toID       string
			value      string
			recordedAt int64
		)
		if err := rows.Scan(&tr.Seq, &fromID, &toID, &value, &recordedAt); err != nil {
			return nil, err
		}
		if tr.From, err = uuid.Parse(fromID); err != nil {
			return nil, fmt.Errorf("corrupt from_id: %w", err)
		}
		if tr.To, err = uuid.Parse(toID); err != nil {
			return nil, fmt.Errorf("corrupt to_id: %w", err)
		}
		parsed, err := uint256.FromDecimal(value)
		if err != nil {
			return nil, fmt.Errorf("corrupt value: %w", err)
		}
		tr.Value = *parsed
		tr.RecordedAt = time.UnixMilli(recordedAt)
		transfers = append(transfers, tr)
	}
	return transfers, rows.Err()
}

// Close 關閉索引檔
func (ix *EventIndex) Close() error {
	return ix.db.Close()
}

var _ domain.TransferSink = (*EventIndex)(nil)
