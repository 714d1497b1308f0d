package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	grpcpool "github.com/JoeShih716/go-token-ledger/pkg/grpc"
	pb "github.com/JoeShih716/go-token-ledger/proto"
)

func main() {
	var (
		target      = flag.String("target", "localhost:50051", "ledger gRPC address")
		totalCount  = flag.Int("n", 100000, "total transfer requests")
		concurrency = flag.Int("c", 500, "concurrent in-flight requests")
		amount      = flag.String("amount", "1", "value per transfer (decimal)")
	)
	flag.Parse()

	pool := grpcpool.NewPool()
	defer pool.Close()

	conn, err := pool.Get(*target)
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}
	c := pb.NewLedgerServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	// 先發行一筆大額給壓測帳戶，確保轉帳不會因餘額不足失敗
	sender := uuid.New()
	receiver := uuid.New()
	issue, err := c.Apply(ctx, &pb.ApplyRequest{
		RefId:     uuid.New().String(),
		Type:      pb.OperationType_OPERATION_TYPE_ISSUE,
		CallerId:  sender.String(),
		AccountId: sender.String(),
		Value:     "1000000000000000000",
	})
	if err != nil {
		log.Fatalf("issue failed: %v", err)
	}
	if !issue.Success {
		log.Fatalf("issue rejected: %s", issue.Message)
	}
	log.Printf("Funded sender %s, balance=%s", sender, issue.CurrentBalance)

	var wg sync.WaitGroup
	wg.Add(*totalCount)
	sem := make(chan struct{}, *concurrency)

	var failed atomic.Int64
	startTime := time.Now()

	for i := 0; i < *totalCount; i++ {
		sem <- struct{}{}

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			resp, err := c.Apply(ctx, &pb.ApplyRequest{
				RefId:     uuid.New().String(),
				Type:      pb.OperationType_OPERATION_TYPE_TRANSFER,
				CallerId:  sender.String(),
				AccountId: receiver.String(),
				Value:     *amount,
			})
			if err != nil || !resp.Success {
				failed.Add(1)
				if idx%10000 == 0 {
					log.Printf("transfer %d failed: err=%v resp=%v", idx, err, resp)
				}
			}
		}(i)
	}

	wg.Wait()

	elapsed := time.Since(startTime)
	fmt.Printf("Completed %d requests in %v (%d failed)\n", *totalCount, elapsed, failed.Load())
	fmt.Printf("TPS: %.2f\n", float64(*totalCount)/elapsed.Seconds())

	supply, err := c.GetTotalSupply(ctx, &pb.GetTotalSupplyRequest{})
	if err == nil {
		fmt.Printf("Total supply: %s\n", supply.TotalSupply)
	}
	balance, err := c.GetBalance(ctx, &pb.GetBalanceRequest{AccountId: receiver.String()})
	if err == nil {
		fmt.Printf("Receiver balance: %s\n", balance.Balance)
	}
}
