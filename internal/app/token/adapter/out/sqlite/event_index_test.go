package sqlite

import (
	"context"
	"path/filepath"
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

func TestEventIndex(t *testing.T) {
	ctx := context.Background()
	ix, err := NewEventIndex(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("NewEventIndex() error = %v", err)
	}
	defer ix.Close()

	from := acct(0x1)
	to := acct(0x2)
	for i := uint64(1); i <= 3; i++ {
		ix.OnTransfer(domain.TransferEvent{From: from, To: to, Value: *uint256.NewInt(i * 10)})
	}

	count, err := ix.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}

	recent, err := ix.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Recent() returned %d rows, want 2", len(recent))
	}
	// newest first
	if !recent[0].Value.Eq(uint256.NewInt(30)) || !recent[1].Value.Eq(uint256.NewInt(20)) {
		t.Errorf("Recent() values = %s, %s, want 30, 20", recent[0].Value.Dec(), recent[1].Value.Dec())
	}
	if recent[0].From != from || recent[0].To != to {
		t.Errorf("Recent() accounts mismatch: %+v", recent[0])
	}
}

func TestEventIndexReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "events.db")

	ix, err := NewEventIndex(path)
	if err != nil {
		t.Fatalf("NewEventIndex() error = %v", err)
	}
	ix.OnTransfer(domain.TransferEvent{From: acct(0x1), To: acct(0x2), Value: *uint256.NewInt(1)})
	if err := ix.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	ix, err = NewEventIndex(path)
	if err != nil {
		t.Fatalf("NewEventIndex() reopen error = %v", err)
	}
	defer ix.Close()
	count, err := ix.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1 after reopen", count)
	}
}
