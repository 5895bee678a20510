package llm

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kaiwa-hq/reddit-scout/internal/leads"
)

const scoringPromptHeader = `You are scoring Reddit posts for Kaiwa, an AI conversation partner app for language learners who can read and study but struggle to actually speak.

Rate each post 1-10 for how strongly the author needs conversational speaking practice:
- 1-3: No real speaking need. Test prep, homework, translation requests, media consumption, resource shopping.
- 4-6: General language learning interest. Speaking is mentioned but not the pain point.
- 7-8: Clear speaking pain. Anxiety about conversations, can read but freezes when talking, wants practice partners.
- 9-10: Urgent and specific. A deadline (moving abroad, meeting in-laws, job interview) or strong emotional distress about not being able to speak.

Also assign each post one category: %s.

Return a JSON object with a 'results' key containing an array of objects, one per post, in the same order. It is CRITICAL that the array has exactly %d entries. Each object MUST have:
- index (integer, matching the [ID] below)
- score (integer 1-10)
- category (string, from the list above)

Posts:
`

const judgmentPromptHeader = `You are the outreach gatekeeper for Kaiwa, an AI conversation partner app. A post already scored high for speaking-practice need. Decide whether a founder should personally reach out.

Say no when the post is:
- primarily venting with no intent to act
- about a child or a third party rather than the author
- hostile to apps or AI tools
- older than the conversation it describes (the moment has passed)

Otherwise say yes.

Return a JSON object: {"worthy": true/false, "reason": "<one sentence>"}.

Post:
`

const publicDraftPrompt = `Write a Reddit comment replying to this post for Kaiwa, an AI conversation partner app. Requirements:
- Lead with genuine empathy for the specific struggle described. Reference a concrete detail from the post.
- Share one practical, non-product tip they can act on today.
- Mention Kaiwa in one short sentence near the end, as something that helped people in the same situation. No link, no hard sell.
- 3-5 sentences, casual Reddit register, no emoji, no bullet points.

Post:
`

const dmDraftPrompt = `Write a short Reddit direct message to the author of this post for Kaiwa, an AI conversation partner app. Requirements:
- Open by saying you saw their post in the subreddit and what specifically resonated.
- Be honest that you work on Kaiwa. One sentence on what it does for their exact situation.
- End with a soft question, not a pitch.
- 4 sentences maximum, warm and human.

Post:
`

func buildScoringPrompt(batch []leads.Lead, maxBodyLen int) string {
	categories := strings.Join([]string{
		CategorySpeakingAnxiety,
		CategoryLifeEvent,
		CategoryAppFrustration,
		CategoryHeritageSpeaker,
		CategoryPlateau,
		CategoryPartnerSearch,
		DefaultCategory,
	}, ", ")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(scoringPromptHeader, categories, len(batch)))

	for i, lead := range batch {
		sb.WriteString(fmt.Sprintf("[%d] r/%s | %s\n%s\n\n",
			i,
			lead.Post.Subreddit,
			lead.Post.Title,
			truncate(lead.Post.Body, maxBodyLen)))
	}

	return sb.String()
}

func buildJudgmentPrompt(lead leads.ScoredLead, maxBodyLen int) string {
	return judgmentPromptHeader + formatLead(lead, maxBodyLen)
}

func buildPublicDraftPrompt(lead leads.ScoredLead, maxBodyLen int) string {
	return publicDraftPrompt + formatLead(lead, maxBodyLen)
}

func buildDMDraftPrompt(lead leads.ScoredLead, maxBodyLen int) string {
	return dmDraftPrompt + formatLead(lead, maxBodyLen)
}

func formatLead(lead leads.ScoredLead, maxBodyLen int) string {
	return fmt.Sprintf("Subreddit: r/%s\nAuthor: u/%s\nScore: %d (%s)\nCategory: %s\nTitle: %s\nBody: %s\n",
		lead.Post.Subreddit,
		lead.Post.Author,
		lead.Score,
		lead.Band,
		lead.Category,
		lead.Post.Title,
		truncate(lead.Post.Body, maxBodyLen))
}

func truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)

	return string(runes[:max]) + "..."
}
