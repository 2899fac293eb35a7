package pending

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewToken непрозрачный идентификатор заявки (UUIDv4 на crypto/rand)
func NewToken() string {
	return uuid.NewString()
}

// NewCode одноразовый код из A-Z0-9
func NewCode(length int) (string, error) {
	alphabetSize := big.NewInt(int64(len(codeAlphabet)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("%w: generate code: %v", ErrEncode, err)
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// NormalizeCode код сравнивается без учета регистра и пробелов по краям
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CodesEqual сравнение за постоянное время
func CodesEqual(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(NormalizeCode(submitted))) == 1
}
