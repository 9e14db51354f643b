package chat

import (
	"fmt"
	"strings"

	"github.com/krishisahay/backend/internal/models"
)

// greeting seeds every fresh session so the advisor speaks first.
const greeting = "Namaste! I'm your farming advisor. Ask me anything about crops, pests, irrigation, government schemes, or market trends. How can I help you today?"

// persona is prepended to every send. It frames the advisor and pins the
// response style; the transcript and new message follow it.
const persona = `You are KrishiMitra, an experienced agricultural advisor helping Indian farmers. You give practical, actionable advice suited to small and medium farms. Prefer low-cost, locally available solutions. When discussing prices, schemes, or weather, use current information. Keep answers concise and easy to follow. Reply in the language the farmer writes in.`

// buildPrompt folds the persona, the running transcript, and the newest
// message into one instruction. The greeting turn is included so the model
// sees the conversation the farmer sees.
func buildPrompt(turns []models.ChatTurn, message string) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\nConversation so far:\n")
	for _, t := range turns {
		label := "Farmer"
		if t.Role == models.RoleAssistant {
			label = "Advisor"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, t.Content)
	}
	fmt.Fprintf(&b, "Farmer: %s\nAdvisor:", message)
	return b.String()
}
