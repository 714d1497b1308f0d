package domain

import "github.com/holiman/uint256"

// Ledger 是同質化代幣帳本的核心狀態機
//
// 結構:
//
//	totalSupply: 建立時的總發行量 (Burn/Issue 不會調整它，見各方法說明)
//	balances: 帳戶餘額 Map，不存在的 key 視為餘額 0
//	allowances: (owner, spender) 授權額度 Map，不存在的 key 視為額度 0
//	  (參考合約沒有 approve 訊息，此 Map 只讀不寫，查詢永遠得到 0)
//	sink: 轉帳事件接收端 (可為 nil)
//
// 所有驗證 (含溢位檢查) 都在第一次寫入 Map 之前完成，
// 失敗的操作保證不留下任何部分更新。
// Ledger 本身不做鎖定，單一實例的序列化由外層 (Host / adapter) 保證。
type Ledger struct {
	totalSupply uint256.Int
	balances    map[AccountID]uint256.Int
	allowances  map[AllowanceKey]uint256.Int
	sink        TransferSink
}

// Option 建構 Ledger 時的配置選項
type Option func(*Ledger)

// WithTransferSink 設定轉帳事件的接收端
func WithTransferSink(sink TransferSink) Option {
	return func(l *Ledger) {
		l.sink = sink
	}
}

// NewLedger 建立帳本並將全部初始發行量記入建立者帳戶
//
// 參數:
//
//	creator: 建立者帳戶 (Host 提供的呼叫者身份)
//	initialSupply: 初始發行量
//
// 回傳:
//
//	*Ledger: 可直接使用的帳本，無錯誤路徑
func NewLedger(creator AccountID, initialSupply *uint256.Int, opts ...Option) *Ledger {
	l := &Ledger{
		balances:   make(map[AccountID]uint256.Int),
		allowances: make(map[AllowanceKey]uint256.Int),
	}
	l.totalSupply.Set(initialSupply)
	l.balances[creator] = *new(uint256.Int).Set(initialSupply)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewDefaultLedger 建立發行量為零的空帳本，委派給 NewLedger
func NewDefaultLedger(creator AccountID, opts ...Option) *Ledger {
	return NewLedger(creator, uint256.NewInt(0), opts...)
}

// SetTransferSink 更換事件接收端
// 開機重放 (WAL / snapshot) 期間先拆掉 sink，重放完成後再掛回，
// 避免歷史轉帳被重複通知
func (l *Ledger) SetTransferSink(sink TransferSink) {
	l.sink = sink
}

// TotalSupply 回傳建立時儲存的總發行量
// 注意: Burn/Issue 不調整此值，它可能與餘額總和不一致 (既定合約行為)
func (l *Ledger) TotalSupply() *uint256.Int {
	return new(uint256.Int).Set(&l.totalSupply)
}

// BalanceOf 查詢帳戶餘額，未知帳戶回傳 0
func (l *Ledger) BalanceOf(account AccountID) *uint256.Int {
	balance := l.balances[account]
	return &balance
}

// AllowanceOf 查詢 (owner, spender) 授權額度，未知組合回傳 0
func (l *Ledger) AllowanceOf(owner, spender AccountID) *uint256.Int {
	allowance := l.allowances[AllowanceKey{Owner: owner, Spender: spender}]
	return &allowance
}

// Transfer 將 caller 自己的餘額轉給 to
//
// 參數:
//
//	caller: 呼叫者 (扣款方)
//	to: 收款帳戶，不存在時自動建立
//	value: 轉帳金額
//
// 回傳:
//
//	error: ErrInsufficientBalance 餘額不足 / ErrBalanceOverflow 入帳溢位
//
// 成功時發出一筆 TransferEvent。允許自轉 (caller == to)，淨額不變。
func (l *Ledger) Transfer(caller, to AccountID, value *uint256.Int) error {
	if err := l.move(caller, to, value); err != nil {
		return err
	}
	if l.sink != nil {
		l.sink.OnTransfer(TransferEvent{From: caller, To: to, Value: *new(uint256.Int).Set(value)})
	}
	return nil
}

// TransferFrom 從 from 的餘額轉出 value，入帳給 caller 本人
//
// 注意: 此操作不檢查、也不扣減 allowances — 任何呼叫者都能把任意帳戶
// 的餘額轉給自己。這是對參考合約行為的忠實重現 (其授權檢查從未實作)，
// 不是安全建議；修正它屬於行為變更，需明確擴充規格。
// 不發出轉帳通知 (通知僅在 Transfer 路徑發出)。
func (l *Ledger) TransferFrom(caller, from AccountID, value *uint256.Int) error {
	return l.move(from, caller, value)
}

// Burn 銷毀 caller 自己的餘額
// 餘額不足時直接歸零 (clamp)，不回傳錯誤；totalSupply 不調整
func (l *Ledger) Burn(caller AccountID, value *uint256.Int) {
	balance := l.balances[caller]
	var remaining uint256.Int
	if !balance.Lt(value) {
		remaining.Sub(&balance, value)
	}
	l.balances[caller] = remaining
}

// Issue 無條件替 to 增發 value，帳戶不存在時自動建立
// totalSupply 不調整；唯一的失敗路徑是入帳溢位
func (l *Ledger) Issue(to AccountID, value *uint256.Int) error {
	current := l.balances[to]
	var credited uint256.Int
	if _, overflow := credited.AddOverflow(&current, value); overflow {
		return ErrBalanceOverflow
	}
	l.balances[to] = credited
	return nil
}

// move 共用的扣款/入帳流程
// 先完成全部讀取、比較與溢位檢查，確認無誤後才寫入兩個帳戶，
// 確保任何失敗都發生在第一次寫入之前
func (l *Ledger) move(from, to AccountID, value *uint256.Int) error {
	fromBalance := l.balances[from]
	if fromBalance.Lt(value) {
		return ErrInsufficientBalance
	}
	var debited uint256.Int
	debited.Sub(&fromBalance, value)

	// 自轉時入帳以扣款後的餘額為基準，淨額維持不變
	toBalance := l.balances[to]
	if from == to {
		toBalance = debited
	}
	var credited uint256.Int
	if _, overflow := credited.AddOverflow(&toBalance, value); overflow {
		return ErrBalanceOverflow
	}

	l.balances[from] = debited
	l.balances[to] = credited
	return nil
}

// Snapshot 帳本狀態的完整複本，供持久層在呼叫間載入/儲存
type Snapshot struct {
	TotalSupply uint256.Int
	Balances    map[AccountID]uint256.Int
	Allowances  map[AllowanceKey]uint256.Int
}

// Snapshot 匯出目前狀態的深複本
func (l *Ledger) Snapshot() Snapshot {
	snap := Snapshot{
		Balances:   make(map[AccountID]uint256.Int, len(l.balances)),
		Allowances: make(map[AllowanceKey]uint256.Int, len(l.allowances)),
	}
	snap.TotalSupply.Set(&l.totalSupply)
	for account, balance := range l.balances {
		snap.Balances[account] = balance
	}
	for key, allowance := range l.allowances {
		snap.Allowances[key] = allowance
	}
	return snap
}

// RestoreLedger 從快照重建帳本 (開機時由持久層呼叫)
func RestoreLedger(snap Snapshot, opts ...Option) *Ledger {
	l := &Ledger{
		balances:   make(map[AccountID]uint256.Int, len(snap.Balances)),
		allowances: make(map[AllowanceKey]uint256.Int, len(snap.Allowances)),
	}
	l.totalSupply.Set(&snap.TotalSupply)
	for account, balance := range snap.Balances {
		l.balances[account] = balance
	}
	for key, allowance := range snap.Allowances {
		l.allowances[key] = allowance
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}
