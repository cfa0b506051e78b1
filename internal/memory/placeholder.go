package memory

import (
	"context"
	"fmt"
)

const placeholderContext = "Member %s — recent context:\n" +
	"• Yesterday: Worked on API integration\n" +
	"• Blocker: Waiting on design review\n" +
	"• Custom question from lead: How is the migration going?"

// PlaceholderProvider returns fixed sample context. It never fails.
type PlaceholderProvider struct{}

func NewPlaceholderProvider() PlaceholderProvider {
	return PlaceholderProvider{}
}

func (PlaceholderProvider) GetContext(_ context.Context, userID string) (string, error) {
	return fmt.Sprintf(placeholderContext, userID), nil
}
