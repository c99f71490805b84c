package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	msdomain "github.com/marketsense/marketsense/internal/domain"
	"github.com/marketsense/marketsense/internal/gateway"
)

const newsSystemPrompt = "You are a market news analyst. Provide factual, up-to-date news items based on current market trends and developments. Focus on accuracy and relevance."

const trendsSystemPrompt = "You are a market trend analyst. Provide data-driven insights on current market trends and future projections. Focus on accuracy, relevance, and actionable insights."

func newsPrompt(topic string) string {
	return fmt.Sprintf(`Generate 4 recent news items about %s. For each news item, provide:
1. A concise title
2. A brief summary (1-2 sentences)
3. The category (e.g., Technology, Finance, Healthcare)
4. The impact level (High, Medium, or Low)
5. A relative time (e.g., "2 hours ago", "1 day ago")

Format the response as a JSON array with the following structure:
[
  {
    "title": "News title",
    "summary": "Brief summary",
    "category": "Category",
    "impact": "Impact level",
    "time": "Relative time"
  },
  ...
]

Do not include any markdown formatting or code blocks in your response.`, topic)
}

func trendsPrompt(sector string) string {
	return fmt.Sprintf(`Analyze current market trends in the %s sector. Provide 5 key trends with:
1. A concise title
2. A brief description (2-3 sentences)
3. The category (e.g., Technology, Finance, Healthcare)
4. The growth projection (e.g., "+15%% YoY", "Moderate growth")

Format the response as a JSON array with the following structure:
[
  {
    "title": "Trend title",
    "description": "Brief description",
    "category": "Category",
    "growth": "Growth projection"
  },
  ...
]

Do not include any markdown formatting or code blocks in your response.`, sector)
}

// Generator is the slice of the LLM gateway the feed needs.
type Generator interface {
	Generate(ctx context.Context, prompt, domain string) string
}

// FeedService produces the news and trends feeds from the LLM,
// falling back to canned seed data when the response cannot be parsed.
type FeedService struct {
	generator Generator
	logger    *zap.Logger
}

// NewFeedService creates a new feed service
func NewFeedService(generator Generator, logger *zap.Logger) *FeedService {
	return &FeedService{generator: generator, logger: logger}
}

// News generates recent news items for a topic.
func (s *FeedService) News(ctx context.Context, topic string) []msdomain.NewsItem {
	text := s.generator.Generate(ctx, newsSystemPrompt+"\n\n"+newsPrompt(topic), "default")

	raw, ok := gateway.FirstJSONArray(text)
	if ok {
		var items []msdomain.NewsItem
		if err := json.Unmarshal([]byte(raw), &items); err == nil && len(items) > 0 {
			return items
		}
	}
	s.logger.Warn("falling back to seed news items",
		zap.String("topic", topic),
		zap.Error(msdomain.ErrParse),
	)
	return seedNewsItems()
}

// Trends analyzes current market trends in a sector.
func (s *FeedService) Trends(ctx context.Context, sector string) []msdomain.Trend {
	text := s.generator.Generate(ctx, trendsSystemPrompt+"\n\n"+trendsPrompt(sector), "default")

	raw, ok := gateway.FirstJSONArray(text)
	if ok {
		var items []msdomain.Trend
		if err := json.Unmarshal([]byte(raw), &items); err == nil && len(items) > 0 {
			return items
		}
	}
	s.logger.Warn("falling back to seed trends",
		zap.String("sector", sector),
		zap.Error(msdomain.ErrParse),
	)
	return seedTrends()
}
