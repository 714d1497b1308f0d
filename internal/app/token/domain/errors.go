package domain

import "errors"

var (
	// ErrInsufficientBalance 餘額不足，扣款來源帳戶餘額小於請求金額
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrBalanceOverflow 入帳後餘額超過 256-bit 上限
	ErrBalanceOverflow = errors.New("balance overflow")

	// ErrUnknownOperation 未知的操作類型
	ErrUnknownOperation = errors.New("unknown operation type")

	// ErrLedgerNotInitialized 帳本尚未建立 (缺少 genesis)
	ErrLedgerNotInitialized = errors.New("ledger not initialized")

	// ErrWALWriteFailed WAL 寫入失敗
	ErrWALWriteFailed = errors.New("wal write failed")

	// ErrSelectOperationFailed 查詢操作紀錄失敗
	ErrSelectOperationFailed = errors.New("select operation failed")
)
