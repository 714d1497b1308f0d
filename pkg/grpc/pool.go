// Package grpc 提供共用的 gRPC 客戶端連線池
package grpc

import (
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

// Pool 以目標地址為 key 共用 gRPC 連線，同一個目標只維護一條連線。
// 所有方法皆為執行緒安全。
type Pool struct {
	mu          sync.RWMutex
	conns       map[string]*grpc.ClientConn
	interceptor grpc.UnaryClientInterceptor
	keepalive   keepalive.ClientParameters
}

type PoolOption func(*Pool)

// WithUnaryInterceptor 為池中每條連線掛上同一個客戶端攔截器
// (logging、metrics、auth token 注入等)
func WithUnaryInterceptor(interceptor grpc.UnaryClientInterceptor) PoolOption {
	return func(p *Pool) {
		p.interceptor = interceptor
	}
}

// WithKeepalive 覆寫預設的 keepalive 參數
func WithKeepalive(params keepalive.ClientParameters) PoolOption {
	return func(p *Pool) {
		p.keepalive = params
	}
}

func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{
		conns: make(map[string]*grpc.ClientConn),
		keepalive: keepalive.ClientParameters{
			// 閒置 10 秒發一次 ping，1 秒沒回應視為斷線
			Time:                10 * time.Second,
			Timeout:             time.Second,
			PermitWithoutStream: true,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Get 取得目標地址的連線，不存在或已 Shutdown 時建立新連線。
//
// 參數:
//
//	target: 目標伺服器地址 (e.g., "localhost:50051" 或 K8s DNS)
//	opts: 可選的額外 grpc.DialOption
//
// 回傳:
//
//	*grpc.ClientConn: gRPC 客戶端連線物件
//	error: 建立連線失敗
func (p *Pool) Get(target string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	p.mu.RLock()
	conn, ok := p.conns[target]
	p.mu.RUnlock()
	if ok && conn.GetState() != connectivity.Shutdown {
		return conn, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// 加鎖期間可能已有其他 goroutine 建好了
	if conn, ok := p.conns[target]; ok {
		if conn.GetState() != connectivity.Shutdown {
			return conn, nil
		}
		delete(p.conns, target)
	}

	// 內部服務走私有網路，預設不加 TLS
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(p.keepalive),
	}
	if p.interceptor != nil {
		dialOpts = append(dialOpts, grpc.WithUnaryInterceptor(p.interceptor))
	}
	dialOpts = append(dialOpts, opts...)

	// grpc.NewClient 是 lazy connection，真正的網路連線在第一次呼叫時才建立
	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("create grpc client for %s: %w", target, err)
	}
	p.conns[target] = conn
	return conn, nil
}

// Close 關閉池中所有連線，回傳第一個發生的錯誤
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for target, conn := range p.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.conns, target)
	}
	return firstErr
}
