// Package validation holds the publishing rules for post content.
package validation

import (
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"

	"chirp-lab/errors"
)

var validate = validator.New()

func init() {
	// The tag is also usable from API DTOs; the rule itself lives in isEmojiOnly.
	_ = validate.RegisterValidation("emoji", func(fl validator.FieldLevel) bool {
		return isEmojiOnly(fl.Field().String())
	})
}

type contentRequest struct {
	Content string `validate:"required,max=280,emoji"`
}

// ValidateContent reports whether content is publishable: non-empty, at most
// 280 characters, and composed solely of emoji-class characters.
func ValidateContent(content string) error {
	if err := validate.Struct(contentRequest{Content: content}); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidContent, err)
	}
	return nil
}

func isEmojiOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.Is(emojiClass, r) {
			return false
		}
	}
	return true
}

// emojiClass covers the Extended_Pictographic blocks plus the components an
// emoji sequence may contain (digits and #/* for keycaps, ZWJ, variation
// selectors, the combining keycap, regional indicators, skin tones, tags).
// Bare digits therefore pass, exactly like the Emoji_Component class.
var emojiClass = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0023, Hi: 0x0023, Stride: 1}, // #
		{Lo: 0x002A, Hi: 0x002A, Stride: 1}, // *
		{Lo: 0x0030, Hi: 0x0039, Stride: 1}, // 0-9
		{Lo: 0x00A9, Hi: 0x00A9, Stride: 1}, // ©
		{Lo: 0x00AE, Hi: 0x00AE, Stride: 1}, // ®
		{Lo: 0x200D, Hi: 0x200D, Stride: 1}, // zero width joiner
		{Lo: 0x203C, Hi: 0x203C, Stride: 1},
		{Lo: 0x2049, Hi: 0x2049, Stride: 1},
		{Lo: 0x20E3, Hi: 0x20E3, Stride: 1}, // combining enclosing keycap
		{Lo: 0x2122, Hi: 0x2122, Stride: 1},
		{Lo: 0x2139, Hi: 0x2139, Stride: 1},
		{Lo: 0x2194, Hi: 0x21AA, Stride: 1},
		{Lo: 0x231A, Hi: 0x231B, Stride: 1},
		{Lo: 0x2328, Hi: 0x2328, Stride: 1},
		{Lo: 0x23CF, Hi: 0x23FA, Stride: 1},
		{Lo: 0x24C2, Hi: 0x24C2, Stride: 1},
		{Lo: 0x25AA, Hi: 0x25FE, Stride: 1},
		{Lo: 0x2600, Hi: 0x27BF, Stride: 1},
		{Lo: 0x2934, Hi: 0x2935, Stride: 1},
		{Lo: 0x2B05, Hi: 0x2BFF, Stride: 1},
		{Lo: 0x3030, Hi: 0x3030, Stride: 1},
		{Lo: 0x303D, Hi: 0x303D, Stride: 1},
		{Lo: 0x3297, Hi: 0x3299, Stride: 1},
		{Lo: 0xFE0E, Hi: 0xFE0F, Stride: 1}, // variation selectors
	},
	R32: []unicode.Range32{
		{Lo: 0x1F000, Hi: 0x1F0FF, Stride: 1}, // mahjong, dominoes, cards
		{Lo: 0x1F170, Hi: 0x1F1FF, Stride: 1}, // enclosed + regional indicators
		{Lo: 0x1F200, Hi: 0x1F2FF, Stride: 1},
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1}, // misc symbols and pictographs
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}, // emoticons
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1}, // transport
		{Lo: 0x1F700, Hi: 0x1F77F, Stride: 1},
		{Lo: 0x1F780, Hi: 0x1F7FF, Stride: 1},
		{Lo: 0x1F800, Hi: 0x1F8FF, Stride: 1},
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1}, // supplemental symbols
		{Lo: 0x1FA00, Hi: 0x1FAFF, Stride: 1}, // extended-A
		{Lo: 0xE0020, Hi: 0xE007F, Stride: 1}, // tag characters
	},
}
