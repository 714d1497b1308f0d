package domain

import "github.com/holiman/uint256"

// TransferEvent 轉帳通知事件
// 只有 Transfer 成功時發出一筆；TransferFrom/Burn/Issue 不發出通知
// (通知的不對稱性是既定合約行為，Host 負責投遞與索引)
type TransferEvent struct {
	From  AccountID   `json:"from"`
	To    AccountID   `json:"to"`
	Value uint256.Int `json:"value"`
}

// TransferSink 轉帳事件的接收端 (Host 的通知通道)
// OnTransfer 不得阻塞核心操作，實作端自行處理緩衝與失敗
type TransferSink interface {
	OnTransfer(ev TransferEvent)
}

// MultiSink 將一筆事件廣播給多個接收端
type MultiSink []TransferSink

func (m MultiSink) OnTransfer(ev TransferEvent) {
	for _, sink := range m {
		sink.OnTransfer(ev)
	}
}

var _ TransferSink = (MultiSink)(nil)
