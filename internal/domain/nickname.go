package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Nickname and password rules
const (
	MaxNicknameRunes  = 32
	MinPasswordLength = 4
)

// NormalizeNickname folds full-width forms and NFKC-normalises a nickname so that
// visually identical names collide. It rejects empty, overlong and control-bearing input.
func NormalizeNickname(raw string) (string, error) {
	s := width.Fold.String(strings.TrimSpace(raw))
	s = strings.TrimSpace(norm.NFKC.String(s))

	n := utf8.RuneCountInString(s)
	if n == 0 || n > MaxNicknameRunes {
		return "", fmt.Errorf("%w: must be 1-%d characters", ErrInvalidNickname, MaxNicknameRunes)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: contains control characters", ErrInvalidNickname)
		}
	}
	return s, nil
}
