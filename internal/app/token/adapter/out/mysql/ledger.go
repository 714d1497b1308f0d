package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JoeShih716/go-token-ledger/internal/app/token/domain"
	"github.com/JoeShih716/go-token-ledger/internal/app/token/usecase"
	"github.com/JoeShih716/go-token-ledger/pkg/mysql"
)

// metaRowID token_ledger_meta 只有一列
const metaRowID = 1

// sqlAccount 對應資料庫的 token_accounts 表
// Balance 以十進位字串儲存，varchar(78) 足以容納 2^256-1
type sqlAccount struct {
	ID        []byte `gorm:"primaryKey;type:binary(16)"`
	Balance   string `gorm:"type:varchar(78);not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli"` // 自動更新時間
}

func (*sqlAccount) TableName() string {
	return "token_accounts"
}

// sqlAllowance 對應資料庫的 token_allowances 表
// 參考合約只讀不寫此表，保留 schema 供查詢介面使用
type sqlAllowance struct {
	Owner   []byte `gorm:"primaryKey;type:binary(16)"`
	Spender []byte `gorm:"primaryKey;type:binary(16)"`
	Amount  string `gorm:"type:varchar(78);not null"`
}

func (*sqlAllowance) TableName() string {
	return "token_allowances"
}

// sqlLedgerMeta 對應資料庫的 token_ledger_meta 表 (單列)
// TotalSupply 只在 genesis 寫入一次，Burn/Issue 不調整 (既定合約行為)
type sqlLedgerMeta struct {
	ID          uint8  `gorm:"primaryKey"`
	Creator     []byte `gorm:"type:binary(16)"`
	TotalSupply string `gorm:"type:varchar(78);not null"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli"`
}

func (*sqlLedgerMeta) TableName() string {
	return "token_ledger_meta"
}

// sqlOperation 對應資料庫的 token_operations 表
// ref_id 唯一索引提供跨重送的冪等，整表兼作稽核紀錄
type sqlOperation struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	RefID     []byte `gorm:"column:ref_id;type:binary(16);uniqueIndex"`
	CallerID  []byte `gorm:"type:binary(16)"`
	AccountID []byte `gorm:"type:binary(16)"`
	Amount    string `gorm:"type:varchar(78)"`
	Type      uint8
	CreatedAt int64 `gorm:"autoCreateTime:milli"` // 自動寫入時間
}

func (*sqlOperation) TableName() string {
	return "token_operations"
}

// MySQLLedger GORM 實作的持久化帳本
type MySQLLedger struct {
	client *mysql.Client
	sink   domain.TransferSink
}

func NewMySQLLedger(client *mysql.Client, sink domain.TransferSink) *MySQLLedger {
	return &MySQLLedger{
		client: client,
		sink:   sink,
	}
}

// AutoMigrate 建立/更新資料表結構
func (l *MySQLLedger) AutoMigrate() error {
	return l.client.DB().AutoMigrate(
		&sqlAccount{},
		&sqlAllowance{},
		&sqlLedgerMeta{},
		&sqlOperation{},
	)
}

// InitGenesis 建立帳本：寫入 meta 並將全部發行量記入 creator
// 已初始化過則為 no-op (重啟安全)
func (l *MySQLLedger) InitGenesis(ctx context.Context, creator domain.AccountID, initialSupply *uint256.Int) error {
	return l.client.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meta sqlLedgerMeta
		err := tx.Where("id = ?", metaRowID).First(&meta).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("query ledger meta: %w", err)
		}
		meta = sqlLedgerMeta{
			ID:          metaRowID,
			Creator:     creator[:],
			TotalSupply: initialSupply.Dec(),
		}
		if err := tx.Create(&meta).Error; err != nil {
			return err
		}
		account := sqlAccount{ID: creator[:], Balance: initialSupply.Dec()}
		return tx.Create(&account).Error
	})
}

// Apply 在單一 DB 交易內執行一筆帳本變更
//
// 流程: 冪等檢查 -> 鎖定涉及帳戶 (SELECT FOR UPDATE，固定順序) ->
// 驗證與計算 -> 寫回餘額 -> 建立操作紀錄
// 任何錯誤整筆回滾，與核心「先驗證、後寫入」的保證一致
func (l *MySQLLedger) Apply(ctx context.Context, op *domain.Operation) error {
	applied := false
	err := l.client.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先檢查是否有這筆操作紀錄
		var record sqlOperation
		err := tx.Where("ref_id = ?", op.RefID[:]).First(&record).Error
		if err == nil {
			// 已處理過，回傳成功
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrSelectOperationFailed
		}

		// 取得鎖定帳號 悲觀鎖，固定順序避免死鎖
		lockIDs := op.LockAccounts()
		rawIDs := make([][]byte, 0, len(lockIDs))
		for _, id := range lockIDs {
			rawIDs = append(rawIDs, append([]byte(nil), id[:]...))
		}
		var accounts []sqlAccount
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", rawIDs).
			Find(&accounts).Error; err != nil {
			return err
		}
		balances := make(map[domain.AccountID]*uint256.Int, len(lockIDs))
		for i := range accounts {
			id, err := uuid.FromBytes(accounts[i].ID)
			if err != nil {
				return fmt.Errorf("corrupt account id: %w", err)
			}
			balance, err := uint256.FromDecimal(accounts[i].Balance)
			if err != nil {
				return fmt.Errorf("corrupt balance for %s: %w", id, err)
			}
			balances[id] = balance
		}
		// 不存在的帳戶視為餘額 0
		for _, id := range lockIDs {
			if _, ok := balances[id]; !ok {
				balances[id] = uint256.NewInt(0)
			}
		}

		// 依 Type 執行業務邏輯，扣款需檢查餘額、入帳需檢查溢位
		switch op.Type {
		case domain.OperationTypeTransfer:
			if err := move(balances, op.Caller, op.Account, &op.Amount); err != nil {
				return err
			}
		case domain.OperationTypeTransferFrom:
			// 不檢查 allowance (見 domain.Ledger.TransferFrom)
			if err := move(balances, op.Account, op.Caller, &op.Amount); err != nil {
				return err
			}
		case domain.OperationTypeBurn:
			balance := balances[op.Caller]
			if balance.Lt(&op.Amount) {
				balance.Clear()
			} else {
				balance.Sub(balance, &op.Amount)
			}
		case domain.OperationTypeIssue:
			balance := balances[op.Account]
			if _, overflow := balance.AddOverflow(balance, &op.Amount); overflow {
				return domain.ErrBalanceOverflow
			}
		default:
			return domain.ErrUnknownOperation
		}

		// 寫回餘額 (upsert: 新帳戶在此建立)
		for id, balance := range balances {
			account := sqlAccount{ID: append([]byte(nil), id[:]...), Balance: balance.Dec()}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"balance"}),
			}).Create(&account).Error; err != nil {
				return err
			}
		}

		// 建立操作紀錄
		record = sqlOperation{
			RefID:     op.RefID[:],
			CallerID:  op.Caller[:],
			AccountID: op.Account[:],
			Amount:    op.Amount.Dec(),
			Type:      uint8(op.Type),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return err
	}

	// commit 之後才通知，回滾的轉帳不會外流
	if applied && l.sink != nil && op.Type == domain.OperationTypeTransfer {
		l.sink.OnTransfer(domain.TransferEvent{
			From:  op.Caller,
			To:    op.Account,
			Value: *new(uint256.Int).Set(&op.Amount),
		})
	}
	return nil
}

// move 共用的扣款/入帳計算，直接操作鎖定中的餘額 map
func move(balances map[domain.AccountID]*uint256.Int, from, to domain.AccountID, value *uint256.Int) error {
	fromBalance := balances[from]
	if fromBalance.Lt(value) {
		return domain.ErrInsufficientBalance
	}
	toBalance := balances[to]
	if from == to {
		// 自轉: 同一個 *uint256.Int，先扣後加淨額不變
		fromBalance.Sub(fromBalance, value)
		toBalance.Add(toBalance, value)
		return nil
	}
	var credited uint256.Int
	if _, overflow := credited.AddOverflow(toBalance, value); overflow {
		return domain.ErrBalanceOverflow
	}
	fromBalance.Sub(fromBalance, value)
	toBalance.Set(&credited)
	return nil
}

// TotalSupply 取得 genesis 寫入的總發行量，未初始化回傳錯誤
func (l *MySQLLedger) TotalSupply(ctx context.Context) (*uint256.Int, error) {
	var meta sqlLedgerMeta
	err := l.client.DB().WithContext(ctx).Where("id = ?", metaRowID).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrLedgerNotInitialized
	}
	if err != nil {
		return nil, err
	}
	supply, err := uint256.FromDecimal(meta.TotalSupply)
	if err != nil {
		return nil, fmt.Errorf("corrupt total supply: %w", err)
	}
	return supply, nil
}

// BalanceOf 取得帳戶餘額，未知帳戶為 0
func (l *MySQLLedger) BalanceOf(ctx context.Context, account domain.AccountID) (*uint256.Int, error) {
	var row sqlAccount
	err := l.client.DB().WithContext(ctx).Where("id = ?", account[:]).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uint256.NewInt(0), nil
	}
	if err != nil {
		return nil, err
	}
	balance, err := uint256.FromDecimal(row.Balance)
	if err != nil {
		return nil, fmt.Errorf("corrupt balance: %w", err)
	}
	return balance, nil
}

// AllowanceOf 取得授權額度，未知組合為 0
func (l *MySQLLedger) AllowanceOf(ctx context.Context, owner, spender domain.AccountID) (*uint256.Int, error) {
	var row sqlAllowance
	err := l.client.DB().WithContext(ctx).
		Where("owner = ? AND spender = ?", owner[:], spender[:]).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uint256.NewInt(0), nil
	}
	if err != nil {
		return nil, err
	}
	allowance, err := uint256.FromDecimal(row.Amount)
	if err != nil {
		return nil, fmt.Errorf("corrupt allowance: %w", err)
	}
	return allowance, nil
}

// LoadState 載入整個帳本狀態，供開機時還原記憶體帳本
func (l *MySQLLedger) LoadState(ctx context.Context) (domain.Snapshot, error) {
	snap := domain.Snapshot{
		Balances:   make(map[domain.AccountID]uint256.Int),
		Allowances: make(map[domain.AllowanceKey]uint256.Int),
	}

	supply, err := l.TotalSupply(ctx)
	if err != nil {
		return snap, err
	}
	snap.TotalSupply.Set(supply)

	var accounts []sqlAccount
	if err := l.client.DB().WithContext(ctx).Find(&accounts).Error; err != nil {
		return snap, err
	}
	for i := range accounts {
		id, err := uuid.FromBytes(accounts[i].ID)
		if err != nil {
			return snap, fmt.Errorf("corrupt account id: %w", err)
		}
		balance, err := uint256.FromDecimal(accounts[i].Balance)
		if err != nil {
			return snap, fmt.Errorf("corrupt balance for %s: %w", id, err)
		}
		snap.Balances[id] = *balance
	}

	var allowances []sqlAllowance
	if err := l.client.DB().WithContext(ctx).Find(&allowances).Error; err != nil {
		return snap, err
	}
	for i := range allowances {
		owner, err := uuid.FromBytes(allowances[i].Owner)
		if err != nil {
			return snap, fmt.Errorf("corrupt owner id: %w", err)
		}
		spender, err := uuid.FromBytes(allowances[i].Spender)
		if err != nil {
			return snap, fmt.Errorf("corrupt spender id: %w", err)
		}
		amount, err := uint256.FromDecimal(allowances[i].Amount)
		if err != nil {
			return snap, fmt.Errorf("corrupt allowance: %w", err)
		}
		snap.Allowances[domain.AllowanceKey{Owner: owner, Spender: spender}] = *amount
	}
	return snap, nil
}

var _ usecase.Ledger = (*MySQLLedger)(nil)
