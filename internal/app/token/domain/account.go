package domain

import (
	"bytes"

	"github.com/google/uuid"
)

// AccountID 代表一個帳戶身份
// 為不透明的固定長度識別碼 ([16]byte)，可比較、可當 map key，無排序語意
// 由 Host 提供並驗證，核心不做任何身份認證
type AccountID = uuid.UUID

// AllowanceKey 授權額度的複合鍵 (owner, spender)
// Spender 可以從 Owner 的餘額中轉出的剩餘額度
type AllowanceKey struct {
	Owner   AccountID
	Spender AccountID
}

// compareAccountID 依位元組序比較兩個帳戶 ID
// 僅用於決定鎖定順序 (避免死鎖)，帳戶 ID 本身無業務排序語意
func compareAccountID(a, b AccountID) int {
	return bytes.Compare(a[:], b[:])
}
