package usecase

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/JoeShih716/go-token-ledger/internal/app/token/domain"
)

// CoreUseCase 是核心業務邏輯層
type CoreUseCase struct {
	ledger Ledger
}

func NewCoreUseCase(ledger Ledger) *CoreUseCase {
	return &CoreUseCase{
		ledger: ledger,
	}
}

// Apply 執行一筆帳本變更
func (c *CoreUseCase) Apply(ctx context.Context, op *domain.Operation) error {
	return c.ledger.Apply(ctx, op)
}

// TotalSupply 取得總發行量
func (c *CoreUseCase) TotalSupply(ctx context.Context) (*uint256.Int, error) {
	return c.ledger.TotalSupply(ctx)
}

// BalanceOf 取得帳戶餘額
func (c *CoreUseCase) BalanceOf(ctx context.Context, account domain.AccountID) (*uint256.Int, error) {
	return c.ledger.BalanceOf(ctx, account)
}

// AllowanceOf 取得授權額度
func (c *CoreUseCase) AllowanceOf(ctx context.Context, owner, spender domain.AccountID) (*uint256.Int, error) {
	return c.ledger.AllowanceOf(ctx, owner, spender)
}
