package hub

import (
	"crypto/rand"
	"math/big"
)

// codeAlphabet drops the visually confusable symbols (0/O, 1/I/L) so codes
// survive being read aloud or scrawled on a whiteboard.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const CodeLength = 4

func GenerateCode() (string, error) {
	code := make([]byte, CodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}
