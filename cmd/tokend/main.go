package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
	"gopkg.in/yaml.v3"

	grpc_adapter "github.com/JoeShih716/go-token-ledger/internal/app/token/adapter/in/grpc"
	memory_adapter "github.com/JoeShih716/go-token-ledger/internal/app/token/adapter/out/memory"
	mysql_adapter "github.com/JoeShih716/go-token-ledger/internal/app/token/adapter/out/mysql"
	"github.com/JoeShih716/go-token-ledger/internal/app/token/adapter/out/sqlite"
	"github.com/JoeShih716/go-token-ledger/internal/app/token/adapter/out/stream"
	"github.com/JoeShih716/go-token-ledger/internal/app/token/domain"
	"github.com/JoeShih716/go-token-ledger/internal/app/token/usecase"
	"github.com/JoeShih716/go-token-ledger/pkg/mysql"
	"github.com/JoeShih716/go-token-ledger/pkg/wal"
	pb "github.com/JoeShih716/go-token-ledger/proto"
)

type GenesisConfig struct {
	Creator       string `yaml:"creator"`
	InitialSupply string `yaml:"initial_supply"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type Config struct {
	// gRPC 服務地址
	Listen string `yaml:"listen"`
	// 帳本後端: "memory" 或 "mysql"
	Backend string `yaml:"backend"`
	// memory 後端的 WAL 檔案路徑，空字串表示不記錄
	WALPath string `yaml:"wal_path"`
	// 轉帳事件索引 (SQLite) 路徑，空字串表示不索引
	EventIndexPath string `yaml:"event_index_path"`
	// WebSocket 廣播服務地址，空字串表示不啟用
	StreamListen string `yaml:"stream_listen"`

	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Genesis   GenesisConfig   `yaml:"genesis"`
	MySQL     mysql.Config    `yaml:"mysql"`
}

func main() {
	// 1. 載入設定
	cfg := loadConfig()

	creator, err := uuid.Parse(cfg.Genesis.Creator)
	if err != nil {
		log.Fatalf("Invalid genesis creator: %v", err)
	}
	initialSupply, err := uint256.FromDecimal(cfg.Genesis.InitialSupply)
	if err != nil {
		log.Fatalf("Invalid genesis initial_supply: %v", err)
	}

	// 2. 初始化轉帳事件接收端 (Notification Sinks)
	var sinks domain.MultiSink

	if cfg.EventIndexPath != "" {
		eventIndex, err := sqlite.NewEventIndex(cfg.EventIndexPath)
		if err != nil {
			log.Fatalf("Failed to open event index: %v", err)
		}
		defer eventIndex.Close()
		sinks = append(sinks, eventIndex)
		log.Printf("Event index at %s", cfg.EventIndexPath)
	}

	var hub *stream.Hub
	if cfg.StreamListen != "" {
		hub = stream.NewHub()
		defer hub.Close()
		sinks = append(sinks, hub)
	}

	var sink domain.TransferSink
	if len(sinks) > 0 {
		sink = sinks
	}

	// 3. 初始化帳本後端
	var usedLedger usecase.Ledger
	switch cfg.Backend {
	case "mysql":
		repo, dbClient := newMySQLLedger(cfg, sink)
		defer dbClient.Close()
		if err := repo.InitGenesis(context.Background(), creator, initialSupply); err != nil {
			log.Fatalf("Failed to init genesis: %v", err)
		}
		usedLedger = repo
	case "memory", "lmax":
		var ledger *domain.Ledger
		if cfg.MySQL.Host != "" {
			// 有配置 MySQL 就拿它當冷啟動來源
			repo, dbClient := newMySQLLedger(cfg, nil)
			if err := repo.InitGenesis(context.Background(), creator, initialSupply); err != nil {
				log.Fatalf("Failed to init genesis: %v", err)
			}
			snap, err := repo.LoadState(context.Background())
			if err != nil {
				log.Fatalf("Failed to load state from MySQL: %v", err)
			}
			dbClient.Close()
			ledger = domain.RestoreLedger(snap)
			log.Printf("Hydrated %d accounts from MySQL", len(snap.Balances))
		} else {
			ledger = domain.NewLedger(creator, initialSupply)
		}

		var journal *wal.WAL
		if cfg.WALPath != "" {
			journal, err = wal.NewWAL(cfg.WALPath)
			if err != nil {
				log.Fatalf("Failed to init WAL: %v", err)
			}
			defer journal.Close()
		}

		if cfg.Backend == "lmax" {
			lmaxLedger, err := memory_adapter.NewLMAXLedger(ledger, journal, sink)
			if err != nil {
				log.Fatalf("Failed to init LMAXLedger: %v", err)
			}
			// 關機時先停 gRPC 再取消，輸送帶上的殘餘請求會被處理完
			engineCtx, engineStop := context.WithCancel(context.Background())
			defer engineStop()
			lmaxLedger.Start(engineCtx)
			usedLedger = lmaxLedger
		} else {
			mutexLedger, err := memory_adapter.NewMutexLedger(ledger, journal, sink)
			if err != nil {
				log.Fatalf("Failed to init MutexLedger: %v", err)
			}
			usedLedger = mutexLedger
		}
	default:
		log.Fatalf("Invalid backend: %q", cfg.Backend)
	}

	// 4. 初始化 UseCase 與 gRPC Adapter (Driving Adapter)
	coreUseCase := usecase.NewCoreUseCase(usedLedger)
	grpcServer := grpc_adapter.NewGrpcServer(coreUseCase)

	// 5. 啟動 WebSocket 廣播服務
	var streamSrv *http.Server
	if hub != nil {
		streamSrv = &http.Server{Addr: cfg.StreamListen, Handler: hub}
		go func() {
			log.Printf("Starting stream server on %s", cfg.StreamListen)
			if err := streamSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("stream server failed: %v", err)
			}
		}()
	}

	// 6. 啟動 gRPC Server
	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	var serverOpts []grpc.ServerOption
	if cfg.RateLimit.RPS > 0 {
		limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
		serverOpts = append(serverOpts, grpc.UnaryInterceptor(grpc_adapter.RateLimitInterceptor(limiter)))
	}

	s := grpc.NewServer(serverOpts...)
	pb.RegisterLedgerServiceServer(s, grpcServer)
	reflection.Register(s) // 方便 gRPC Client 測試 (如 Postman/BloomRPC)

	go func() {
		log.Printf("Starting gRPC server on %s (backend=%s)", cfg.Listen, cfg.Backend)
		if err := s.Serve(lis); err != nil {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	s.GracefulStop()
	if streamSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		streamSrv.Shutdown(ctx)
	}
	log.Println("Server exited")
}

func newMySQLLedger(cfg Config, sink domain.TransferSink) (*mysql_adapter.MySQLLedger, *mysql.Client) {
	dbClient, err := mysql.NewClient(cfg.MySQL)
	if err != nil {
		log.Fatalf("Failed to connect to MySQL: %v", err)
	}
	log.Println("Connected to MySQL successfully")

	repo := mysql_adapter.NewMySQLLedger(dbClient, sink)
	if err := repo.AutoMigrate(); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}
	return repo, dbClient
}

func loadConfig() Config {
	path := "config/config.yaml"
	if v := os.Getenv("TOKEND_CONFIG"); v != "" {
		path = v
	}
	cfgData, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}

	// 補全預設配置 (如果 yaml 沒寫)
	if cfg.Listen == "" {
		cfg.Listen = ":50051"
	}
	if cfg.Backend == "" {
		cfg.Backend = "memory"
	}
	if cfg.RateLimit.RPS > 0 && cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = int(cfg.RateLimit.RPS)
	}
	if cfg.MySQL.MaxOpenConns == 0 {
		cfg.MySQL.MaxOpenConns = 100
	}
	if cfg.MySQL.MaxIdleConns == 0 {
		cfg.MySQL.MaxIdleConns = 10
	}
	if cfg.MySQL.ConnMaxLifetime == 0 {
		cfg.MySQL.ConnMaxLifetime = 30 * time.Minute
	}
	return cfg
}
