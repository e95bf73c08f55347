package service

import (
	"fmt"
	"strings"
)

// BuildQuestionPrompt asks the model for one short satisfaction question
// about criterion, listing every provenance source verbatim as a bullet.
func BuildQuestionPrompt(criterion string, provenance []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Crée une question amicale et engageante en français pour évaluer la satisfaction concernant le critère \"%s\" sur une échelle de 1 à 5 (1 étant très insatisfait et 5 très satisfait).\n", criterion)

	if len(provenance) > 0 {
		b.WriteString("\nPour t'aider à contextualiser, voici les sources de données liées à ce critère :\n")
		for _, source := range provenance {
			b.WriteString("- ")
			b.WriteString(source)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nLa question doit être courte, chaleureuse, positive, personnelle et faire référence aux sources mentionnées si possible.")
	return b.String()
}
