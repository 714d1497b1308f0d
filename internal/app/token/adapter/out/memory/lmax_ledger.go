package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/JoeShih716/go-token-ledger/internal/app/token/domain"
	"github.com/JoeShih716/go-token-ledger/internal/app/token/usecase"
	"github.com/JoeShih716/go-token-ledger/pkg/wal"
)

// opRequest 變更請求包裝channel，讓 Apply 可以等待結果
type opRequest struct {
	op     *domain.Operation
	result chan error
	// run loop 處理完後帶回的事件，由呼叫者的 goroutine 投遞
	events []domain.TransferEvent
}

// LMAXLedger 單一寫入者的帳本實作 (LMAX 輸送帶模型的簡化版)
//
// 所有變更經由 channel 送進唯一的 run goroutine，寫入路徑彼此不搶鎖；
// mu 只用來讓查詢讀到一致狀態 (run goroutine 寫入時短暫持有寫鎖)。
// 事件跟著結果帶回呼叫者的 goroutine 投遞，慢 sink 不佔用輸送帶
type LMAXLedger struct {
	ledger    *domain.Ledger
	mu        sync.RWMutex
	processed map[uuid.UUID]bool
	wal       *wal.WAL
	// 輸送帶 負責接收變更請求
	requests chan *opRequest
	// Pool 減少 GC 壓力
	requestPool sync.Pool
	buffer      eventBuffer
	sink        domain.TransferSink
}

// NewLMAXLedger 建立一個新的 LMAXLedger 實例
// 回傳後要呼叫 Start 啟動輸送帶，否則 Apply 會永遠等待
//
// 參數:
//
//	ledger: 初始帳本 (genesis 或自快照還原)，sink 先不要掛
//	journal: Write-Ahead Log 實例，nil 表示不記錄
//	sink: 轉帳事件接收端，重放完成後才生效
//
// 回傳:
//
//	*LMAXLedger: LMAXLedger 實例
//	error: 初始化錯誤 (如 WAL 恢復失敗)
func NewLMAXLedger(ledger *domain.Ledger, journal *wal.WAL, sink domain.TransferSink) (*LMAXLedger, error) {
	l := &LMAXLedger{
		ledger:    ledger,
		processed: make(map[uuid.UUID]bool),
		wal:       journal,
		requests:  make(chan *opRequest, 1000), // Buffer 1000
		requestPool: sync.Pool{
			New: func() interface{} {
				return &opRequest{
					result: make(chan error, 1),
				}
			},
		},
	}

	// 在啟動前先恢復資料
	l.ledger.SetTransferSink(nil)
	if l.wal != nil {
		if err := l.recoverFromWAL(); err != nil {
			return nil, err
		}
	}
	l.ledger.SetTransferSink(&l.buffer)
	l.sink = sink

	return l, nil
}

// recoverFromWAL 從 WAL 檔案恢復帳本狀態
// 不寫 WAL、不透過 Channel，在 NewLMAXLedger 裡單執行緒跑
func (l *LMAXLedger) recoverFromWAL() error {
	history := make([]domain.Operation, 0)

	err := l.wal.ReadAll(func(jsonRaw []byte) error {
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

	for i := range history {
		op := &history[i]
		if l.processed[op.RefID] {
			continue
		}
		// 業務錯誤代表這筆當初就失敗了，不記入 processed
		if err := l.dispatch(op); err != nil {
			continue
		}
		l.processed[op.RefID] = true
	}
	return nil
}

// Apply 把變更請求放上輸送帶並等待結果
//
// Apply(等待) -> Channel -> Run Loop (核心) -> WAL -> 狀態更新 -> Result Channel -> Apply(收到結果、投遞事件)
func (l *LMAXLedger) Apply(ctx context.Context, op *domain.Operation) error {
	// 1. 放入輸送帶 (使用 sync.Pool 減少 GC)
	req := l.requestPool.Get().(*opRequest)
	req.op = op
	// 清空 Channel (雖然理論上應該是空的，但保險起見)
	select {
	case <-req.result:
	default:
	}

	l.requests <- req
	err := <-req.result

	events := req.events
	req.events = nil
	l.requestPool.Put(req)

	// 2. 事件在呼叫者的 goroutine 投遞，不佔用輸送帶
	if l.sink != nil {
		for _, ev := range events {
			l.sink.OnTransfer(ev)
		}
	}
	return err
}

// Start 啟動核心引擎 (非同步)
// ctx 取消時把輸送帶上剩餘的請求處理完才停
func (l *LMAXLedger) Start(ctx context.Context) {
	go l.run(ctx)
}

func (l *LMAXLedger) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			// 收到關閉信號，把剩下的請求處理完
			l.drain()
			return
		case req := <-l.requests:
			l.process(req)
		}
	}
}

func (l *LMAXLedger) drain() {
	for {
		select {
		case req := <-l.requests:
			l.process(req)
		default:
			return
		}
	}
}

// process 處理單筆變更並回傳結果 (只在 run goroutine 裡跑)
func (l *LMAXLedger) process(req *opRequest) {
	op := req.op

	// 0. Idempotency Check (Thread Safe in Loop)
	if l.processed[op.RefID] {
		req.result <- nil
		return
	}

	// 1. 寫入 WAL (Critical Path)
	if l.wal != nil {
		if err := l.wal.Write(op); err != nil {
			req.result <- domain.ErrWALWriteFailed
			return
		}
		if err := l.wal.Flush(); err != nil {
			req.result <- domain.ErrWALWriteFailed
			return
		}
	}

	// 2. 執行業務邏輯 (寫鎖只圍住狀態更新，查詢才讀得到一致狀態)
	l.mu.Lock()
	err := l.dispatch(op)
	req.events = l.buffer.drain()
	l.mu.Unlock()

	// 3. 更新 Idempotency
	if err == nil {
		l.processed[op.RefID] = true
	}

	// 4. 回傳結果
	req.result <- err
}

// dispatch 依 op.Type 呼叫對應的核心操作
func (l *LMAXLedger) dispatch(op *domain.Operation) error {
	switch op.Type {
	case domain.OperationTypeTransfer:
		return l.ledger.Transfer(op.Caller, op.Account, &op.Amount)
	case domain.OperationTypeTransferFrom:
		return l.ledger.TransferFrom(op.Caller, op.Account, &op.Amount)
	case domain.OperationTypeBurn:
		l.ledger.Burn(op.Caller, &op.Amount)
		return nil
	case domain.OperationTypeIssue:
		return l.ledger.Issue(op.Account, &op.Amount)
	default:
		return domain.ErrUnknownOperation
	}
}

// TotalSupply 取得總發行量
func (l *LMAXLedger) TotalSupply(ctx context.Context) (*uint256.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ledger.TotalSupply(), nil
}

// BalanceOf 取得帳戶餘額，未知帳戶為 0
func (l *LMAXLedger) BalanceOf(ctx context.Context, account domain.AccountID) (*uint256.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ledger.BalanceOf(account), nil
}

// AllowanceOf 取得授權額度，未知組合為 0
func (l *LMAXLedger) AllowanceOf(ctx context.Context, owner, spender domain.AccountID) (*uint256.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ledger.AllowanceOf(owner, spender), nil
}

// Snapshot 匯出目前帳本狀態 (持讀鎖)
func (l *LMAXLedger) Snapshot() domain.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ledger.Snapshot()
}

var _ usecase.Ledger = (*LMAXLedger)(nil)
