package auth

import (
	"unicode"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
)

// minPasswordLength はパスワードの最小文字数。
const minPasswordLength = 8

// ValidatePassword はパスワードポリシーを検証する。
// ポリシー: 8文字以上、英字と数字のみ、大文字・小文字・数字を各1文字以上含む。
// 違反時は理由を含む*model.APIErrorを返す。
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return model.NewInvalidPasswordError("must be at least 8 characters")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r) && r <= unicode.MaxASCII:
			hasUpper = true
		case unicode.IsLower(r) && r <= unicode.MaxASCII:
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			// 英字・数字以外（空白や記号を含む）は許可しない
			return model.NewInvalidPasswordError("must contain only letters and digits")
		}
	}

	if !hasUpper {
		return model.NewInvalidPasswordError("must contain at least one uppercase letter")
	}
	if !hasLower {
		return model.NewInvalidPasswordError("must contain at least one lowercase letter")
	}
	if !hasDigit {
		return model.NewInvalidPasswordError("must contain at least one digit")
	}

	return nil
}
