package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier 密码存储与校验的可插拔接口
// 生产环境使用 bcrypt，测试可以替换为明文比较
type PasswordVerifier interface {
	Hash(password string) (string, error)
	Verify(password, stored string) bool
}

// BcryptVerifier 基于 bcrypt 的默认实现
type BcryptVerifier struct{}

// Hash 使用 bcrypt 对密码进行哈希处理
func (BcryptVerifier) Hash(password string) (string, error) {
	return HashPassword(password)
}

// Verify 比较密码和哈希值
func (BcryptVerifier) Verify(password, stored string) bool {
	return CheckPasswordHash(password, stored)
}

// PlaintextVerifier 明文比较实现，仅用于测试
type PlaintextVerifier struct{}

func (PlaintextVerifier) Hash(password string) (string, error) {
	return password, nil
}

func (PlaintextVerifier) Verify(password, stored string) bool {
	return password == stored
}

// HashPassword 使用 bcrypt 对密码进行哈希处理
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash 比较密码和哈希值
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
