package domain

import (
	"github.com/google/uuid"
	"github.com/holiman/uint256"
)

// OperationType 操作類型
// 為了節省記憶體與 WAL 空間，使用 uint8
type OperationType uint8

const (
	// 轉帳: Caller -> Account
	OperationTypeTransfer OperationType = 1
	// 代轉: Account -> Caller (不檢查 allowance，見 Ledger.TransferFrom)
	OperationTypeTransferFrom OperationType = 2
	// 銷毀 Caller 自己的餘額
	OperationTypeBurn OperationType = 3
	// 增發給 Account (無呼叫者授權檢查)
	OperationTypeIssue OperationType = 4
)

// Operation 一筆帳本變更請求，WAL 與網路層共用的格式
type Operation struct {
	// RefID: 外部追蹤號 (UUID)，重放與重送時的冪等依據
	RefID uuid.UUID `json:"ref_id"`
	// Caller: Host 提供的呼叫者身份
	Caller AccountID `json:"caller"`
	// Account: 對手帳戶
	// Transfer/Issue 時為收款方，TransferFrom 時為扣款來源，Burn 不使用
	Account AccountID `json:"account"`
	// Amount: 金額
	Amount uint256.Int `json:"amount"`
	// CreatedAt: 建立時間 (UnixNano)
	CreatedAt int64 `json:"created_at"`
	// Type: 放到最後面，利用 Padding 空間
	Type OperationType `json:"type"`
}

// LockAccounts 回傳此操作涉及、需要鎖定的帳戶
// 以位元組序排序確保跨交易的一致鎖定順序，避免死鎖；
// 兩個帳戶相同時 (自轉) 只回傳一個
func (op *Operation) LockAccounts() []AccountID {
	ids := make([]AccountID, 0, 2)
	switch op.Type {
	case OperationTypeTransfer:
		ids = append(ids, op.Caller, op.Account)
	case OperationTypeTransferFrom:
		ids = append(ids, op.Account, op.Caller)
	case OperationTypeBurn:
		ids = append(ids, op.Caller)
	case OperationTypeIssue:
		ids = append(ids, op.Account)
	}
	if len(ids) == 2 {
		switch compareAccountID(ids[0], ids[1]) {
		case 0:
			ids = ids[:1]
		case 1:
			ids[0], ids[1] = ids[1], ids[0]
		}
	}
	return ids
}
