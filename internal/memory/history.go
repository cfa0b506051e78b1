package memory

import (
	"context"
	"fmt"
	"strings"

	"standup-relay/internal/observability"
)

const (
	roleAgent = "agent"
	roleUser  = "user"

	// maxSummaryLen bounds each bullet so the agent prompt stays short.
	maxSummaryLen = 280
)

// HistoryProvider builds context from the member's stored transcripts.
type HistoryProvider struct {
	reader       TranscriptReader
	depth        int
	leadQuestion string
	logger       *observability.Logger
}

func NewHistoryProvider(reader TranscriptReader, depth int, leadQuestion string, logger *observability.Logger) *HistoryProvider {
	if depth < 1 {
		depth = 1
	}
	return &HistoryProvider{
		reader:       reader,
		depth:        depth,
		leadQuestion: leadQuestion,
		logger:       logger,
	}
}

// GetContext summarises the most recent transcript as "yesterday" and
// collects blocker answers from the last depth transcripts.
func (p *HistoryProvider) GetContext(ctx context.Context, userID string) (string, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "user_id", Value: userID})

	transcripts, err := p.reader.ListRecentTranscripts(ctx, userID, p.depth)
	if err != nil {
		p.logger.Error(ctx, "failed to load standup history", err)
		return "", fmt.Errorf("failed to load standup history: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Member %s — recent context:", userID)

	if len(transcripts) == 0 {
		b.WriteString("\n• Yesterday: No previous standup on record")
	} else {
		latest := parseTurns(transcripts[0].Transcript)
		summary := truncate(strings.Join(answers(latest), " "), maxSummaryLen)
		if summary == "" {
			summary = "No answers recorded"
		}
		fmt.Fprintf(&b, "\n• Yesterday (%s): %s", transcripts[0].Date, summary)

		for _, t := range transcripts {
			for _, blocker := range blockers(parseTurns(t.Transcript)) {
				fmt.Fprintf(&b, "\n• Blocker (%s): %s", t.Date, truncate(blocker, maxSummaryLen))
			}
		}
	}

	if p.leadQuestion != "" {
		fmt.Fprintf(&b, "\n• Custom question from lead: %s", p.leadQuestion)
	}

	p.logger.Info(ctx, "built context from standup history",
		observability.Field{Key: "transcripts", Value: len(transcripts)},
	)
	return b.String(), nil
}

type turn struct {
	role    string
	message string
}

// parseTurns reverses transcript flattening. Lines without a role prefix
// continue the previous turn.
func parseTurns(text string) []turn {
	var turns []turn
	for _, line := range strings.Split(text, "\n") {
		role, message, ok := strings.Cut(line, ": ")
		if !ok || strings.ContainsAny(role, " \t") {
			if len(turns) > 0 && strings.TrimSpace(line) != "" {
				turns[len(turns)-1].message += " " + strings.TrimSpace(line)
			}
			continue
		}
		turns = append(turns, turn{role: role, message: strings.TrimSpace(message)})
	}
	return turns
}

func answers(turns []turn) []string {
	var out []string
	for _, t := range turns {
		if t.role == roleUser && t.message != "" {
			out = append(out, t.message)
		}
	}
	return out
}

// blockers returns member answers to agent turns that ask about blockers,
// skipping answers that deny having any.
func blockers(turns []turn) []string {
	var out []string
	for i := 1; i < len(turns); i++ {
		prev, cur := turns[i-1], turns[i]
		if prev.role != roleAgent || cur.role != roleUser {
			continue
		}
		if !strings.Contains(strings.ToLower(prev.message), "block") {
			continue
		}
		if isNegative(cur.message) {
			continue
		}
		out = append(out, cur.message)
	}
	return out
}

func isNegative(answer string) bool {
	normalized := strings.ToLower(strings.Trim(strings.TrimSpace(answer), ".!"))
	switch normalized {
	case "", "no", "nope", "none", "nothing", "no blockers", "not really", "nothing blocking me":
		return true
	}
	return strings.HasPrefix(normalized, "no blockers") || strings.HasPrefix(normalized, "nothing is blocking")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
