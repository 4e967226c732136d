package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/suPer8Hu/legal-assistant/internal/ai"
	"github.com/suPer8Hu/legal-assistant/internal/classifier"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

func TestBuild_ExplanationCarriesLanguageLabelAndSections(t *testing.T) {
	msgs, err := Build(Request{
		Lang:       i18n.Hindi,
		Prediction: &classifier.Prediction{Label: classifier.AppealAllowed, Confidence: 0.82},
		CaseText:   "The tenant was evicted without notice.",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Role != ai.RoleSystem || msgs[1].Role != ai.RoleUser {
		t.Fatalf("unexpected message shape: %+v", msgs)
	}
	sys, user := msgs[0].Content, msgs[1].Content

	if !strings.Contains(sys, "Respond entirely in Hindi (हिन्दी)") {
		t.Fatalf("missing language directive: %s", sys)
	}
	for _, k := range []i18n.Key{i18n.SectionFacts, i18n.SectionAnalysis, i18n.SectionConclusion} {
		if !strings.Contains(sys, i18n.T(i18n.Hindi, k)) {
			t.Fatalf("missing localized section %s", k)
		}
	}
	if !strings.Contains(sys, "Do not add any disclaimer") {
		t.Fatalf("missing no-disclaimer instruction")
	}
	if !strings.Contains(user, string(classifier.AppealAllowed)) || !strings.Contains(user, "82%") {
		t.Fatalf("prediction not injected: %s", user)
	}
	if !strings.Contains(user, "evicted without notice") {
		t.Fatalf("case text not injected")
	}
}

func TestBuild_LegalAidSectionsAndHistory(t *testing.T) {
	hist := []ai.Message{
		{Role: ai.RoleAssistant, Content: "Welcome!"},
		{Role: ai.RoleUser, Content: "My landlord kept my deposit."},
		{Role: ai.RoleAssistant, Content: WithDisclaimer("You can send a notice.", i18n.Tamil)},
		{Role: ai.RoleSystem, Content: "ignored"},
	}
	msgs, err := Build(Request{Lang: i18n.Tamil, Question: "What next?", History: hist})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(msgs) != 5 {
		t.Fatalf("expected system + 3 history + question, got %d", len(msgs))
	}
	for _, k := range []i18n.Key{i18n.SectionUnderstanding, i18n.SectionSteps, i18n.SectionLaws, i18n.SectionContacts} {
		if !strings.Contains(msgs[0].Content, i18n.T(i18n.Tamil, k)) {
			t.Fatalf("missing localized section %s", k)
		}
	}
	if msgs[3].Content != "You can send a notice." {
		t.Fatalf("disclaimer not stripped from history: %q", msgs[3].Content)
	}
	if last := msgs[len(msgs)-1]; last.Role != ai.RoleUser || last.Content != "What next?" {
		t.Fatalf("unexpected final message %+v", last)
	}
}

func TestBuild_EmptyRequest(t *testing.T) {
	_, err := Build(Request{Lang: i18n.English, CaseText: "facts only", Question: "  "})
	if !errors.Is(err, ErrEmptyRequest) {
		t.Fatalf("expected ErrEmptyRequest, got %v", err)
	}
}

func TestBuild_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	msgs, err := Build(Request{Lang: i18n.Lang("fr"), Question: "help"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(msgs[0].Content, "Respond entirely in English") {
		t.Fatalf("expected english directive")
	}
}

func TestBuild_TruncatesCaseText(t *testing.T) {
	long := strings.Repeat("क", MaxCaseRunes+500)
	msgs, err := Build(Request{
		Lang:       i18n.English,
		Prediction: &classifier.Prediction{Label: classifier.AppealDismissed, Confidence: 0.6},
		CaseText:   long,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if n := strings.Count(msgs[1].Content, "क"); n != MaxCaseRunes {
		t.Fatalf("expected %d runes of case text, got %d", MaxCaseRunes, n)
	}
}

func TestWithDisclaimer_AppendsOnce(t *testing.T) {
	once := WithDisclaimer("Answer.\n", i18n.Bengali)
	twice := WithDisclaimer(once, i18n.Bengali)
	if once != twice {
		t.Fatalf("disclaimer appended twice")
	}
	if strings.Count(twice, i18n.T(i18n.Bengali, i18n.Disclaimer)) != 1 {
		t.Fatalf("expected one disclaimer")
	}
	if StripDisclaimer(once) != "Answer." {
		t.Fatalf("unexpected strip result %q", StripDisclaimer(once))
	}
}

func TestPredictionHeader_Localized(t *testing.T) {
	h := PredictionHeader(i18n.Hindi, classifier.Prediction{Label: classifier.AppealDismissed, Confidence: 0.71})
	if !strings.Contains(h, i18n.T(i18n.Hindi, i18n.LabelAppealDismiss)) || !strings.Contains(h, "71%") {
		t.Fatalf("unexpected header %q", h)
	}
}
