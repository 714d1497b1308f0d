package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/JoeShih716/go-token-ledger/internal/app/token/domain"
	"github.com/JoeShih716/go-token-ledger/internal/app/token/usecase"
	"github.com/JoeShih716/go-token-ledger/pkg/wal"
)

// eventBuffer 在鎖內先收下轉帳事件，鎖釋放後才投遞給真正的 sink。
// 慢 sink (如同步落地的索引) 不得卡住持鎖中的帳本
type eventBuffer struct {
	events []domain.TransferEvent
}

func (b *eventBuffer) OnTransfer(ev domain.TransferEvent) {
	b.events = append(b.events, ev)
}

func (b *eventBuffer) drain() []domain.TransferEvent {
	events := b.events
	b.events = nil
	return events
}

// MutexLedger 以單一 Mutex 保護 domain.Ledger 的帳本實作
//
// 結構:
//
//	ledger: 核心狀態機 (不自帶鎖，序列化由這裡保證)
//	mu: RWMutex，每個操作整段持鎖，維持「先驗證、後寫入」的原子性
//	processed: 已處理過的操作 Map (RefID 冪等)
//	wal: Write-Ahead Log 實例 (可為 nil)
//	buffer: 鎖內暫存的轉帳事件
//	sink: 轉帳事件的對外接收端，投遞發生在鎖外
type MutexLedger struct {
	ledger    *domain.Ledger
	mu        sync.RWMutex
	processed map[uuid.UUID]time.Time
	wal       *wal.WAL
	buffer    eventBuffer
	sink      domain.TransferSink
}

// NewMutexLedger 建立一個新的 MutexLedger 實例
//
// 參數:
//
//	ledger: 初始帳本 (genesis 或自快照還原)，sink 先不要掛
//	journal: Write-Ahead Log 實例，nil 表示不記錄
//	sink: 轉帳事件接收端，重放完成後才生效，避免歷史事件重複通知
//
// 回傳:
//
//	*MutexLedger: MutexLedger 實例
//	error: 初始化錯誤 (如 WAL 恢復失敗)
func NewMutexLedger(ledger *domain.Ledger, journal *wal.WAL, sink domain.TransferSink) (*MutexLedger, error) {
	m := &MutexLedger{
		ledger:    ledger,
		processed: make(map[uuid.UUID]time.Time),
		wal:       journal,
	}
	m.ledger.SetTransferSink(nil)
	if m.wal != nil {
		if err := m.recoverFromWAL(); err != nil {
			return nil, err
		}
	}
	// 核心只對 buffer 發事件，對外投遞由 Apply 在鎖外做
	m.ledger.SetTransferSink(&m.buffer)
	m.sink = sink
	return m, nil
}

// recoverFromWAL 從 WAL 檔案恢復帳本狀態
func (m *MutexLedger) recoverFromWAL() error {
	history := make([]domain.Operation, 0)

	err := m.wal.ReadAll(func(jsonRaw []byte) error {
		var op domain.Operation
		if err := json.Unmarshal(jsonRaw, &op); err != nil {
			return err
		}
		history = append(history, op)
		return nil
	})
	if err != nil {
		return err
	}

	now := time.Now()
	for i := range history {
		op := &history[i]
		if _, ok := m.processed[op.RefID]; ok {
			continue
		}
		// 重放不寫 WAL、不需要鎖 (NewMutexLedger 裡單執行緒)
		if err := m.dispatch(op); err != nil {
			// 重放結果必須與當初一致；業務錯誤代表這筆當初就失敗了,
			// 不會被記入 processed
			continue
		}
		m.processed[op.RefID] = now
	}
	return nil
}

// Apply 處理一筆帳本變更
// 狀態變更整段持鎖；事件投遞在鎖釋放後，慢 sink 不會卡住其他操作
//
// 參數:
//
//	ctx: 上下文
//	op: 變更請求
//
// 回傳:
//
//	error: 處理錯誤 (如餘額不足)
func (m *MutexLedger) Apply(ctx context.Context, op *domain.Operation) error {
	events, err := m.apply(op)
	if m.sink != nil {
		for _, ev := range events {
			m.sink.OnTransfer(ev)
		}
	}
	return err
}

// apply 持鎖執行變更，回傳這筆操作產生的事件
func (m *MutexLedger) apply(op *domain.Operation) ([]domain.TransferEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.processed[op.RefID]; ok {
		return nil, nil
	}

	// 1. 寫入 WAL (Critical Path)
	if m.wal != nil {
		if err := m.wal.Write(op); err != nil {
			return nil, domain.ErrWALWriteFailed
		}
		// 刷入硬碟
		if err := m.wal.Flush(); err != nil {
			return nil, domain.ErrWALWriteFailed
		}
	}

	// 2. 核心操作分發
	err := m.dispatch(op)
	if err == nil {
		m.processed[op.RefID] = time.Now()
	}
	return m.buffer.drain(), err
}

// dispatch 依 op.Type 呼叫對應的核心操作
func (m *MutexLedger) dispatch(op *domain.Operation) error {
	switch op.Type {
	case domain.OperationTypeTransfer:
		return m.ledger.Transfer(op.Caller, op.Account, &op.Amount)
	case domain.OperationTypeTransferFrom:
		return m.ledger.TransferFrom(op.Caller, op.Account, &op.Amount)
	case domain.OperationTypeBurn:
		m.ledger.Burn(op.Caller, &op.Amount)
		return nil
	case domain.OperationTypeIssue:
		return m.ledger.Issue(op.Account, &op.Amount)
	default:
		return domain.ErrUnknownOperation
	}
}

// TotalSupply 取得總發行量
func (m *MutexLedger) TotalSupply(ctx context.Context) (*uint256.Int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ledger.TotalSupply(), nil
}

// BalanceOf 取得帳戶餘額，未知帳戶為 0
func (m *MutexLedger) BalanceOf(ctx context.Context, account domain.AccountID) (*uint256.Int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ledger.BalanceOf(account), nil
}

// AllowanceOf 取得授權額度，未知組合為 0
func (m *MutexLedger) AllowanceOf(ctx context.Context, owner, spender domain.AccountID) (*uint256.Int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ledger.AllowanceOf(owner, spender), nil
}

// Snapshot 匯出目前帳本狀態 (持讀鎖)
func (m *MutexLedger) Snapshot() domain.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ledger.Snapshot()
}

var _ usecase.Ledger = (*MutexLedger)(nil)
