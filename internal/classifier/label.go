package classifier

import (
	"fmt"
	"strings"

	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

type Label string

const (
	AppealDismissed Label = "Appeal Dismissed"
	AppealAllowed   Label = "Appeal Allowed"
)

var labelAliases = map[string]Label{
	"appeal dismissed": AppealDismissed,
	"dismissed":        AppealDismissed,
	"respondent wins":  AppealDismissed,
	"appeal allowed":   AppealAllowed,
	"allowed":          AppealAllowed,
	"petitioner wins":  AppealAllowed,
}

// ParseLabel maps a class name from the training data onto a Label.
func ParseLabel(s string) (Label, error) {
	l, ok := labelAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("classifier: unknown class %q", s)
	}
	return l, nil
}

func (l Label) Valid() bool {
	return l == AppealDismissed || l == AppealAllowed
}

// Key is the localization key for the label's display text.
func (l Label) Key() i18n.Key {
	if l == AppealAllowed {
		return i18n.LabelAppealAllowed
	}
	return i18n.LabelAppealDismiss
}

func (l Label) Localized(lang i18n.Lang) string {
	return i18n.T(lang, l.Key())
}

type Prediction struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
}
