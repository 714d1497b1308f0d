package grpc

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"golang.org/x/time/rate"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/JoeShih716/go-token-ledger/internal/app/token/adapter/out/memory"
	"github.com/JoeShih716/go-token-ledger/internal/app/token/domain"
	"github.com/JoeShih716/go-token-ledger/internal/app/token/usecase"
	pb "github.com/JoeShih716/go-token-ledger/proto"
)

func newTestServer(t *testing.T, creator domain.AccountID, supply uint64) *GrpcServer {
	t.Helper()
	ledger := domain.NewLedger(creator, uint256.NewInt(supply))
	mutexLedger, err := memory.NewMutexLedger(ledger, nil, nil)
	if err != nil {
		t.Fatalf("NewMutexLedger() error = %v", err)
	}
	return NewGrpcServer(usecase.NewCoreUseCase(mutexLedger))
}

func TestApplyTransfer(t *testing.T) {
	ctx := context.Background()
	creator := uuid.New()
	receiver := uuid.New()
	srv := newTestServer(t, creator, 1000)

	resp, err := srv.Apply(ctx, &pb.ApplyRequest{
		RefId:     uuid.New().String(),
		Type:      pb.OperationType_OPERATION_TYPE_TRANSFER,
		CallerId:  creator.String(),
		AccountId: receiver.String(),
		Value:     "400",
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !resp.Success {
		t.Fatalf("Apply() success = false, message = %q", resp.Message)
	}
	// Transfer 回傳 caller 的餘額
	if resp.CurrentBalance != "600" {
		t.Errorf("CurrentBalance = %q, want 600", resp.CurrentBalance)
	}

	bal, err := srv.GetBalance(ctx, &pb.GetBalanceRequest{AccountId: receiver.String()})
	if err != nil {
		t.Fatalf("GetBalance() error = %v", err)
	}
	if bal.Balance != "400" {
		t.Errorf("Balance = %q, want 400", bal.Balance)
	}
}

func TestApplySoftFailures(t *testing.T) {
	ctx := context.Background()
	creator := uuid.New()
	srv := newTestServer(t, creator, 100)

	cases := []struct {
		name string
		req  *pb.ApplyRequest
	}{
		{
			name: "bad ref_id",
			req: &pb.ApplyRequest{
				RefId:     "not-a-uuid",
				Type:      pb.OperationType_OPERATION_TYPE_TRANSFER,
				CallerId:  creator.String(),
				AccountId: uuid.New().String(),
				Value:     "1",
			},
		},
		{
			name: "bad value",
			req: &pb.ApplyRequest{
				RefId:     uuid.New().String(),
				Type:      pb.OperationType_OPERATION_TYPE_TRANSFER,
				CallerId:  creator.String(),
				AccountId: uuid.New().String(),
				Value:     "12x",
			},
		},
		{
			name: "unknown type",
			req: &pb.ApplyRequest{
				RefId:     uuid.New().String(),
				Type:      pb.OperationType_OPERATION_TYPE_UNSPECIFIED,
				CallerId:  creator.String(),
				AccountId: uuid.New().String(),
				Value:     "1",
			},
		},
		{
			name: "insufficient balance",
			req: &pb.ApplyRequest{
				RefId:     uuid.New().String(),
				Type:      pb.OperationType_OPERATION_TYPE_TRANSFER,
				CallerId:  creator.String(),
				AccountId: uuid.New().String(),
				Value:     "10000",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := srv.Apply(ctx, tc.req)
			if err != nil {
				t.Fatalf("Apply() gRPC error = %v, want soft failure", err)
			}
			if resp.Success {
				t.Errorf("Apply() success = true, want false")
			}
			if resp.Message == "" {
				t.Errorf("Apply() message is empty")
			}
		})
	}
}

func TestApplyBurnClampsToZero(t *testing.T) {
	ctx := context.Background()
	creator := uuid.New()
	srv := newTestServer(t, creator, 50)

	resp, err := srv.Apply(ctx, &pb.ApplyRequest{
		RefId:     uuid.New().String(),
		Type:      pb.OperationType_OPERATION_TYPE_BURN,
		CallerId:  creator.String(),
		AccountId: creator.String(),
		Value:     "9999",
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !resp.Success {
		t.Fatalf("Apply() success = false, message = %q", resp.Message)
	}
	if resp.CurrentBalance != "0" {
		t.Errorf("CurrentBalance = %q, want 0", resp.CurrentBalance)
	}
}

func TestGetBalanceInvalidArgument(t *testing.T) {
	srv := newTestServer(t, uuid.New(), 1)
	_, err := srv.GetBalance(context.Background(), &pb.GetBalanceRequest{AccountId: "oops"})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("GetBalance() code = %v, want InvalidArgument", status.Code(err))
	}
}

func TestGetAllowanceAlwaysZero(t *testing.T) {
	srv := newTestServer(t, uuid.New(), 1)
	resp, err := srv.GetAllowance(context.Background(), &pb.GetAllowanceRequest{
		OwnerId:   uuid.New().String(),
		SpenderId: uuid.New().String(),
	})
	if err != nil {
		t.Fatalf("GetAllowance() error = %v", err)
	}
	if resp.Allowance != "0" {
		t.Errorf("Allowance = %q, want 0", resp.Allowance)
	}
}

func TestGetTotalSupply(t *testing.T) {
	srv := newTestServer(t, uuid.New(), 777)
	resp, err := srv.GetTotalSupply(context.Background(), &pb.GetTotalSupplyRequest{})
	if err != nil {
		t.Fatalf("GetTotalSupply() error = %v", err)
	}
	if resp.TotalSupply != "777" {
		t.Errorf("TotalSupply = %q, want 777", resp.TotalSupply)
	}
}

func TestRateLimitInterceptor(t *testing.T) {
	// burst 2, 之後立即拒絕
	limiter := rate.NewLimiter(rate.Limit(1), 2)
	interceptor := RateLimitInterceptor(limiter)

	handler := func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	}
	info := &grpclib.UnaryServerInfo{FullMethod: "/ledger.LedgerService/Apply"}

	for i := 0; i < 2; i++ {
		if _, err := interceptor(context.Background(), nil, info, handler); err != nil {
			t.Fatalf("request %d rejected: %v", i, err)
		}
	}
	_, err := interceptor(context.Background(), nil, info, handler)
	if status.Code(err) != codes.ResourceExhausted {
		t.Errorf("code = %v, want ResourceExhausted", status.Code(err))
	}
}
