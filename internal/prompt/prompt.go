// Package prompt builds the chat messages sent to the language model for case
// explanations and legal-aid answers.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/suPer8Hu/legal-assistant/internal/ai"
	"github.com/suPer8Hu/legal-assistant/internal/classifier"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

var ErrEmptyRequest = errors.New("prompt: neither prediction nor question given")

// MaxCaseRunes caps the case text placed in a prompt.
const MaxCaseRunes = 12000

type Request struct {
	Lang       i18n.Lang
	Prediction *classifier.Prediction
	CaseText   string
	Question   string
	// History is prior conversation, oldest first. Used for legal aid only.
	History []ai.Message
}

// Build returns the system prompt followed by any history and the user turn.
// A request with a prediction is a case explanation; otherwise the question
// is answered as general legal aid.
func Build(req Request) ([]ai.Message, error) {
	lang := req.Lang
	if !lang.Valid() {
		lang = i18n.Default
	}
	if req.Prediction != nil {
		return buildExplanation(lang, req), nil
	}
	if strings.TrimSpace(req.Question) == "" {
		return nil, ErrEmptyRequest
	}
	return buildLegalAid(lang, req), nil
}

func languageDirective(lang i18n.Lang) string {
	return fmt.Sprintf(
		"Respond entirely in %s (%s). Every heading, sentence and list item must be in %s, even if the case text or question is in another language. Keep statute names and case citations as they are.",
		lang.Name(), lang.NativeName(), lang.Name(),
	)
}

const noDisclaimer = "Do not add any disclaimer, warning about legal advice, or suggestion to consult a lawyer at the end; one is appended automatically."

func sections(lang i18n.Lang, keys ...i18n.Key) string {
	var b strings.Builder
	for i, k := range keys {
		fmt.Fprintf(&b, "%d. ## %s\n", i+1, i18n.T(lang, k))
	}
	return b.String()
}

func buildExplanation(lang i18n.Lang, req Request) []ai.Message {
	p := req.Prediction
	caseText := Truncate(strings.TrimSpace(req.CaseText), MaxCaseRunes)

	var sys strings.Builder
	sys.WriteString("You are a legal assistant helping people in India understand court cases in plain language.\n")
	sys.WriteString("A statistical text classifier has already predicted the likely outcome of the case below. ")
	sys.WriteString("Explain the prediction: summarise the facts, point out what in them supports the predicted outcome, and state the conclusion. ")
	sys.WriteString("Do not contradict or change the predicted outcome; if the facts are weak, say so in the analysis.\n\n")
	sys.WriteString(languageDirective(lang))
	sys.WriteString("\n\nUse exactly these Markdown sections, in this order, with these headings:\n")
	sys.WriteString(sections(lang, i18n.SectionFacts, i18n.SectionAnalysis, i18n.SectionConclusion))
	sys.WriteString("\n")
	sys.WriteString(noDisclaimer)

	var user strings.Builder
	fmt.Fprintf(&user, "Predicted outcome: %s (%s)\n", p.Label, p.Label.Localized(lang))
	fmt.Fprintf(&user, "Classifier confidence: %.0f%%\n\n", p.Confidence*100)
	if caseText != "" {
		user.WriteString("Case facts:\n\"\"\"\n")
		user.WriteString(caseText)
		user.WriteString("\n\"\"\"\n")
	}
	if q := strings.TrimSpace(req.Question); q != "" {
		fmt.Fprintf(&user, "\nThe user also asks: %s\n", q)
	}

	return []ai.Message{
		{Role: ai.RoleSystem, Content: sys.String()},
		{Role: ai.RoleUser, Content: user.String()},
	}
}

func buildLegalAid(lang i18n.Lang, req Request) []ai.Message {
	var sys strings.Builder
	sys.WriteString("You are a legal aid assistant for people in India who cannot easily afford a lawyer. ")
	sys.WriteString("Answer the user's legal question with practical, accurate general information. ")
	sys.WriteString("Name the relevant Indian laws and authorities where you can, such as district legal services authorities, consumer commissions, or police helplines, and never invent section numbers.\n\n")
	sys.WriteString(languageDirective(lang))
	sys.WriteString("\n\nUse exactly these Markdown sections, in this order, with these headings:\n")
	sys.WriteString(sections(lang, i18n.SectionUnderstanding, i18n.SectionSteps, i18n.SectionLaws, i18n.SectionContacts))
	sys.WriteString("\n")
	sys.WriteString(noDisclaimer)

	out := make([]ai.Message, 0, len(req.History)+2)
	out = append(out, ai.Message{Role: ai.RoleSystem, Content: sys.String()})
	for _, h := range req.History {
		if h.Role != ai.RoleUser && h.Role != ai.RoleAssistant {
			continue
		}
		out = append(out, ai.Message{Role: h.Role, Content: StripDisclaimer(h.Content)})
	}

	user := strings.TrimSpace(req.Question)
	if ct := Truncate(strings.TrimSpace(req.CaseText), MaxCaseRunes); ct != "" {
		user = fmt.Sprintf("Background document:\n\"\"\"\n%s\n\"\"\"\n\nQuestion: %s", ct, user)
	}
	out = append(out, ai.Message{Role: ai.RoleUser, Content: user})
	return out
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
