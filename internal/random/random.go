package random

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

func fromAlphabet(alphabet []rune, n uint) (string, error) {
	out := make([]rune, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}

// Letters returns n random ASCII letters.
func Letters(n uint) (string, error) {
	return fromAlphabet([]rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"), n)
}

// Digits returns n random decimal digits.
func Digits(n uint) (string, error) {
	return fromAlphabet([]rune("0123456789"), n)
}

// RedemptionCode returns a reward redemption code in the form "XXXX-XXXX-XXXX".
// The alphabet omits easily confused characters since citizens read these codes over the phone.
func RedemptionCode() (string, error) {
	alphabet := []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")
	groups := make([]string, 3)
	for i := range groups {
		group, err := fromAlphabet(alphabet, 4)
		if err != nil {
			return "", err
		}
		groups[i] = group
	}
	return strings.Join(groups, "-"), nil
}

// CaseNumber returns a case number in the form "PC-<year>-<6 digits>".
func CaseNumber(year int) (string, error) {
	digits, err := Digits(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PC-%d-%s", year, digits), nil
}
