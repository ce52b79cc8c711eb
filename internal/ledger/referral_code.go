package ledger

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/fhd3v0p/fsr-backend/internal/domain"
)

// CodeGenerator produces candidate referral codes
//
//go:generate mockgen -source=referral_code.go -destination=../mocks/referral_code.go -package=mocks -mock_names=CodeGenerator=MockCodeGenerator
type CodeGenerator interface {
	Generate() (string, error)
}

type randomCodeGenerator struct{}

// NewCodeGenerator returns a generator of "FSR" + 6 uniformly random [A-Z0-9] characters
func NewCodeGenerator() CodeGenerator {
	return &randomCodeGenerator{}
}

func (g *randomCodeGenerator) Generate() (string, error) {
	alphabet := domain.REFERRAL_CODE_ALPHABET
	size := big.NewInt(int64(len(alphabet)))

	buf := make([]byte, 0, len(domain.REFERRAL_CODE_PREFIX)+domain.REFERRAL_CODE_LENGTH)
	buf = append(buf, domain.REFERRAL_CODE_PREFIX...)
	for range domain.REFERRAL_CODE_LENGTH {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("failed to read random: %w", err)
		}
		buf = append(buf, alphabet[n.Int64()])
	}

	return string(buf), nil
}

// IsReferralCode reports whether s has the shape of a generated referral code
func IsReferralCode(s string) bool {
	if len(s) != len(domain.REFERRAL_CODE_PREFIX)+domain.REFERRAL_CODE_LENGTH {
		return false
	}
	if s[:len(domain.REFERRAL_CODE_PREFIX)] != domain.REFERRAL_CODE_PREFIX {
		return false
	}
	for _, c := range s[len(domain.REFERRAL_CODE_PREFIX):] {
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
