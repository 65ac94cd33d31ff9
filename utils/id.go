package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// IDLength là độ dài (ký tự hex) của ID do NewID sinh ra
const IDLength = 32

// NewID tạo một ID ngẫu nhiên 16 byte dạng hex
func NewID() (string, error) {
	b := make([]byte, IDLength/2)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// IsID báo s có đúng định dạng ID hay không
func IsID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
