package ai

import (
	"encoding/json"
	"fmt"

	"github.com/untibullet/syncflow/internal/models"
)

// ReviewSystemPrompt instructs the model to act as a code reviewer and answer
// with a single JSON object
const ReviewSystemPrompt = `You are a senior code reviewer. Analyze the provided code diff or PR information and provide:
1. A brief summary (2-3 sentences)
2. Risk level (Low, Medium, or High)
3. A checklist of items to review (3-6 items)

Respond in JSON format:
{
  "summary": "Brief description of what this PR does",
  "riskLevel": "Low|Medium|High",
  "checklist": [
    { "id": "c1", "text": "Check item description", "checked": false },
    { "id": "c2", "text": "Another check item", "checked": false }
  ]
}`

// ChatSystemPrompt is the assistant persona for the chat endpoint
const ChatSystemPrompt = `You are SyncFlow AI Assistant, a helpful assistant for a collaborative task management platform. You help users with:
- Project management and task organization
- Code review best practices
- Architecture decisions (ADRs)
- Team collaboration and communication
- Time zone coordination for distributed teams

Be concise, friendly, and helpful. Keep responses under 150 words unless more detail is needed.`

// Analysis is the structured result of a PR analysis
type Analysis struct {
	Summary   string           `json:"summary"`
	RiskLevel string           `json:"riskLevel"`
	Checklist models.Checklist `json:"checklist"`
}

// ReviewUserPrompt wraps the diff or PR reference for the model
func ReviewUserPrompt(content string) string {
	return fmt.Sprintf("Analyze this code change:\n\n%s", content)
}

// ParseAnalysis decodes the model reply. Unparseable output is an error;
// missing or out-of-range fields fall back to safe defaults instead.
func ParseAnalysis(text string) (Analysis, error) {
	var a Analysis
	if err := json.Unmarshal([]byte(text), &a); err != nil {
		return Analysis{}, fmt.Errorf("%w: unparseable analysis: %v", ErrService, err)
	}

	if a.Summary == "" {
		a.Summary = "Analysis completed"
	}
	if !models.ValidRiskLevel(a.RiskLevel) {
		a.RiskLevel = models.RiskMedium
	}
	if a.Checklist == nil {
		a.Checklist = models.Checklist{}
	}

	return a, nil
}
