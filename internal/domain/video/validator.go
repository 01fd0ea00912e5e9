package video

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/narwhalmedia/catalog/internal/domain/validation"
)

const (
	titleMaxLength       = 255
	descriptionMaxLength = 4000
)

// Validator checks the field rules of a video. It never stops at the first failure.
type Validator struct{}

// Validate appends every violation found on v to n
func (Validator) Validate(v *Video, n *validation.Notification) {
	checkText(n, "title", v.title, titleMaxLength)
	checkText(n, "description", v.description, descriptionMaxLength)
	if v.launchedAt == nil {
		n.AppendMessage("'launchedAt' should not be null")
	}
	if v.rating == nil {
		n.AppendMessage("'rating' should not be null")
	}
}

func checkText(n *validation.Notification, field string, value *string, max int) {
	if value == nil {
		n.AppendMessage(fmt.Sprintf("'%s' should not be null", field))
		return
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		n.AppendMessage(fmt.Sprintf("'%s' should not be empty", field))
		return
	}
	if l := utf8.RuneCountInString(trimmed); l < 1 || l > max {
		n.AppendMessage(fmt.Sprintf("'%s' must be between 1 and %d characters", field, max))
	}
}
