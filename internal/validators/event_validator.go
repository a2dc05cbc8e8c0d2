package validators

import (
	"slices"
	"strings"

	"socketCanvas/internal/errs"
)

const (
	maxNameLength     = 32
	maxChatTextLength = 512
)

func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || len(trimmed) > maxNameLength {
		return errs.ErrInvalidName
	}
	return nil
}

func ValidateChatText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len(trimmed) > maxChatTextLength {
		return errs.ErrInvalidChatText
	}
	return nil
}

func ValidateColor(color string, palette []string) error {
	if !slices.Contains(palette, color) {
		return errs.ErrInvalidColor
	}
	return nil
}
