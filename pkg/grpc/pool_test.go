package grpc

import (
	"testing"
)

func TestPoolReusesConnection(t *testing.T) {
	pool := NewPool()
	defer pool.Close()

	// grpc.NewClient 是 lazy connection，不需要真的伺服器
	first, err := pool.Get("localhost:50051")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	second, err := pool.Get("localhost:50051")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if first != second {
		t.Error("Get() returned a new connection for the same target")
	}

	other, err := pool.Get("localhost:50052")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if other == first {
		t.Error("Get() shared a connection across targets")
	}
}

func TestPoolClose(t *testing.T) {
	pool := NewPool()
	if _, err := pool.Get("localhost:50051"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Close 後再取應建立新連線
	conn, err := pool.Get("localhost:50051")
	if err != nil {
		t.Fatalf("Get() after Close error = %v", err)
	}
	if conn == nil {
		t.Fatal("Get() returned nil connection")
	}
	pool.Close()
}
