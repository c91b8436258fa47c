package shortcode

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	// Alphanumeric 默认字符集
	Alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// DefaultLength 随机短路径的默认长度
	DefaultLength = 6
)

var (
	// ErrInvalidLength 长度必须为正数
	ErrInvalidLength = errors.New("shortcode: length must be positive")
	// ErrEmptyAlphabet 字符集为空
	ErrEmptyAlphabet = errors.New("shortcode: alphabet is empty")
)

// Generate 从字符集中均匀随机抽取字符组成指定长度的字符串。
// 不保证唯一，调用方需要自行检查冲突。
func Generate(length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}
	chars := []rune(alphabet)
	if len(chars) == 0 {
		return "", ErrEmptyAlphabet
	}

	max := big.NewInt(int64(len(chars)))
	b := make([]rune, length)
	for i := range b {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = chars[num.Int64()]
	}
	return string(b), nil
}
