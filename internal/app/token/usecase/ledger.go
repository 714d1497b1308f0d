package usecase

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/JoeShih716/go-token-ledger/internal/app/token/domain"
)

// Ledger 是代幣帳本的介面
type Ledger interface {
	// 不再分 Transfer/Burn/Issue 方法，直接看 op.Type 決定
	Apply(ctx context.Context, op *domain.Operation) error
	// TotalSupply 取得建立時的總發行量
	TotalSupply(ctx context.Context) (*uint256.Int, error)
	// BalanceOf 取得帳戶餘額，未知帳戶為 0
	BalanceOf(ctx context.Context, account domain.AccountID) (*uint256.Int, error)
	// AllowanceOf 取得 (owner, spender) 授權額度，未知組合為 0
	AllowanceOf(ctx context.Context, owner, spender domain.AccountID) (*uint256.Int, error)
}
