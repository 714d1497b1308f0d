package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/JoeShih716/go-token-ledger/internal/app/token/domain"
	"github.com/JoeShih716/go-token-ledger/internal/app/token/usecase"
	pb "github.com/JoeShih716/go-token-ledger/proto"
)

type GrpcServer struct {
	pb.UnimplementedLedgerServiceServer
	core *usecase.CoreUseCase
}

func NewGrpcServer(core *usecase.CoreUseCase) *GrpcServer {
	return &GrpcServer{
		core: core,
	}
}

// softFail 業務邏輯錯誤，回傳 Success=false (Soft Failure)，不帶 gRPC error
func softFail(msg string) (*pb.ApplyResponse, error) {
	return &pb.ApplyResponse{
		Success: false,
		Message: msg,
	}, nil
}

func (s *GrpcServer) Apply(ctx context.Context, req *pb.ApplyRequest) (*pb.ApplyResponse, error) {
	// 1. UUID 解析
	refID, err := uuid.Parse(req.RefId)
	if err != nil {
		return softFail("invalid ref_id: " + err.Error())
	}
	caller, err := uuid.Parse(req.CallerId)
	if err != nil {
		return softFail("invalid caller_id: " + err.Error())
	}
	account, err := uuid.Parse(req.AccountId)
	if err != nil {
		return softFail("invalid account_id: " + err.Error())
	}

	// 2. 金額解析 (十進位字串，uint256 範圍)
	value, err := uint256.FromDecimal(req.Value)
	if err != nil {
		return softFail("invalid value: " + err.Error())
	}

	// 3. 轉換操作類型
	var opType domain.OperationType
	switch req.Type {
	case pb.OperationType_OPERATION_TYPE_TRANSFER:
		opType = domain.OperationTypeTransfer
	case pb.OperationType_OPERATION_TYPE_TRANSFER_FROM:
		opType = domain.OperationTypeTransferFrom
	case pb.OperationType_OPERATION_TYPE_BURN:
		opType = domain.OperationTypeBurn
	case pb.OperationType_OPERATION_TYPE_ISSUE:
		opType = domain.OperationTypeIssue
	default:
		return softFail("invalid operation type")
	}

	// 4. 組裝 Domain Operation
	op := &domain.Operation{
		RefID:     refID,
		Caller:    caller,
		Account:   account,
		Amount:    *value,
		CreatedAt: time.Now().UnixNano(),
		Type:      opType,
	}

	// 5. 執行變更
	if err := s.core.Apply(ctx, op); err != nil {
		return softFail(err.Error())
	}

	// 6. [Optional] 取得最新餘額 (Best Effort)
	// Transfer/Burn 回傳 caller 的餘額，TransferFrom/Issue 回傳 account 的餘額
	target := caller
	if opType == domain.OperationTypeTransferFrom || opType == domain.OperationTypeIssue {
		target = account
	}

	resp := &pb.ApplyResponse{Success: true}
	if balance, err := s.core.BalanceOf(ctx, target); err == nil {
		resp.CurrentBalance = balance.Dec()
	}
	return resp, nil
}

func (s *GrpcServer) GetBalance(ctx context.Context, req *pb.GetBalanceRequest) (*pb.GetBalanceResponse, error) {
	account, err := uuid.Parse(req.AccountId)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid account_id: "+err.Error())
	}
	balance, err := s.core.BalanceOf(ctx, account)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &pb.GetBalanceResponse{
		Balance: balance.Dec(),
	}, nil
}

func (s *GrpcServer) GetAllowance(ctx context.Context, req *pb.GetAllowanceRequest) (*pb.GetAllowanceResponse, error) {
	owner, err := uuid.Parse(req.OwnerId)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid owner_id: "+err.Error())
	}
	spender, err := uuid.Parse(req.SpenderId)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid spender_id: "+err.Error())
	}
	allowance, err := s.core.AllowanceOf(ctx, owner, spender)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &pb.GetAllowanceResponse{
		Allowance: allowance.Dec(),
	}, nil
}

func (s *GrpcServer) GetTotalSupply(ctx context.Context, req *pb.GetTotalSupplyRequest) (*pb.GetTotalSupplyResponse, error) {
	supply, err := s.core.TotalSupply(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &pb.GetTotalSupplyResponse{
		TotalSupply: supply.Dec(),
	}, nil
}
