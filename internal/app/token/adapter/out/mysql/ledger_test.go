package mysql

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"github.com/JoeShih716/go-token-ledger/internal/app/token/domain"
)

func acct(b byte) domain.AccountID {
	var id domain.AccountID
	for i := range id {
		id[i] = b
	}
	return id
}

func TestMove(t *testing.T) {
	from := acct(0x1)
	to := acct(0x2)
	balances := map[domain.AccountID]*uint256.Int{
		from: uint256.NewInt(100),
		to:   uint256.NewInt(5),
	}

	if err := move(balances, from, to, uint256.NewInt(40)); err != nil {
		t.Fatalf("move() error = %v", err)
	}
	if !balances[from].Eq(uint256.NewInt(60)) || !balances[to].Eq(uint256.NewInt(45)) {
		t.Errorf("balances = %s/%s, want 60/45", balances[from].Dec(), balances[to].Dec())
	}

	err := move(balances, from, to, uint256.NewInt(61))
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("move() error = %v, want ErrInsufficientBalance", err)
	}
	if !balances[from].Eq(uint256.NewInt(60)) || !balances[to].Eq(uint256.NewInt(45)) {
		t.Errorf("failed move mutated balances")
	}
}

func TestMoveSelf(t *testing.T) {
	self := acct(0x3)
	balances := map[domain.AccountID]*uint256.Int{
		self: uint256.NewInt(100),
	}
	if err := move(balances, self, self, uint256.NewInt(100)); err != nil {
		t.Fatalf("move() error = %v", err)
	}
	if !balances[self].Eq(uint256.NewInt(100)) {
		t.Errorf("self move changed balance to %s", balances[self].Dec())
	}
}

func TestMoveOverflow(t *testing.T) {
	from := acct(0x1)
	to := acct(0x2)
	balances := map[domain.AccountID]*uint256.Int{
		from: uint256.NewInt(10),
		to:   new(uint256.Int).SetAllOne(),
	}
	err := move(balances, from, to, uint256.NewInt(1))
	if !errors.Is(err, domain.ErrBalanceOverflow) {
		t.Fatalf("move() error = %v, want ErrBalanceOverflow", err)
	}
	if !balances[from].Eq(uint256.NewInt(10)) {
		t.Errorf("failed move mutated source balance")
	}
}
