package prompt

import (
	"fmt"
	"strings"

	"github.com/suPer8Hu/legal-assistant/internal/classifier"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

const disclaimerSeparator = "\n\n---\n"

// DisclaimerChunk is the final chunk of every generated answer.
func DisclaimerChunk(lang i18n.Lang) string {
	return disclaimerSeparator + "*" + i18n.T(lang, i18n.Disclaimer) + "*"
}

// WithDisclaimer appends the disclaimer unless body already ends with it.
func WithDisclaimer(body string, lang i18n.Lang) string {
	chunk := DisclaimerChunk(lang)
	if strings.HasSuffix(body, chunk) {
		return body
	}
	return body + chunk
}

// StripDisclaimer removes a trailing disclaimer so history replayed to the
// model does not teach it to write its own.
func StripDisclaimer(content string) string {
	for _, l := range i18n.Languages() {
		if chunk := DisclaimerChunk(l); strings.HasSuffix(content, chunk) {
			return strings.TrimRight(strings.TrimSuffix(content, chunk), "\n ")
		}
	}
	return content
}

// PredictionHeader is the localized preamble shown above an explanation.
func PredictionHeader(lang i18n.Lang, p classifier.Prediction) string {
	return fmt.Sprintf("**⚖️ %s:** `%s` (%s: %.0f%%)\n\n**🔎 %s:**\n\n",
		i18n.T(lang, i18n.PredictedOutcome),
		p.Label.Localized(lang),
		i18n.T(lang, i18n.Confidence),
		p.Confidence*100,
		i18n.T(lang, i18n.ModelExplanation),
	)
}
