package stream

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
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

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	// wait for registration
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	from := acct(0x1)
	to := acct(0x2)
	hub.OnTransfer(domain.TransferEvent{From: from, To: to, Value: *uint256.NewInt(42)})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}

	var payload transferPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if payload.From != from.String() || payload.To != to.String() || payload.Value != "42" {
		t.Errorf("unexpected payload %+v", payload)
	}
}

func TestHubBroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	// must not block or panic
	hub.OnTransfer(domain.TransferEvent{From: acct(0x1), To: acct(0x2), Value: *uint256.NewInt(1)})
}
