package service

import msdomain "github.com/marketsense/marketsense/internal/domain"

// seedNewsItems returns the canned news feed used when the LLM
// response cannot be parsed. Callers get a fresh copy.
func seedNewsItems() []msdomain.NewsItem {
	return []msdomain.NewsItem{
		{
			Title:    "AI Startup Secures Major Funding",
			Summary:  "Leading AI startup announces $50M Series B funding round led by top venture capital firms.",
			Category: "Technology",
			Impact:   "Medium",
			Time:     "3 hours ago",
		},
		{
			Title:    "Market Volatility Increases Amid Economic Data",
			Summary:  "Stock markets experience increased volatility following the release of mixed economic indicators.",
			Category: "Finance",
			Impact:   "High",
			Time:     "1 day ago",
		},
		{
			Title:    "New Regulation Impacts Tech Sector",
			Summary:  "Regulatory changes announced that will affect data privacy practices across the technology industry.",
			Category: "Regulation",
			Impact:   "High",
			Time:     "2 days ago",
		},
		{
			Title:    "Supply Chain Improvements for Electronics",
			Summary:  "Major improvements in semiconductor supply chain reported, potentially easing constraints for consumer electronics.",
			Category: "Manufacturing",
			Impact:   "Medium",
			Time:     "4 days ago",
		},
	}
}

// seedTrends returns the canned trends feed used when the LLM
// response cannot be parsed. Callers get a fresh copy.
func seedTrends() []msdomain.Trend {
	return []msdomain.Trend{
		{
			Title:       "AI Integration Across Industries",
			Description: "Companies across sectors are rapidly integrating AI into core business processes. This trend is accelerating with improved accessibility of large language models and specialized AI tools.",
			Category:    "Technology",
			Growth:      "+32% YoY",
		},
		{
			Title:       "Sustainable Technology Investment",
			Description: "Investment in sustainable and green technologies continues to grow significantly. Companies are prioritizing ESG initiatives both for regulatory compliance and consumer demand.",
			Category:    "Sustainability",
			Growth:      "+24% YoY",
		},
		{
			Title:       "Remote Work Technology Evolution",
			Description: "The tools and platforms supporting distributed workforces are evolving beyond basic communication. Advanced collaboration features and productivity analytics are driving the next wave of adoption.",
			Category:    "Workplace",
			Growth:      "+18% YoY",
		},
		{
			Title:       "Cybersecurity Spending Increase",
			Description: "Organizations are significantly increasing cybersecurity budgets in response to growing threats. Zero-trust architecture and AI-powered security solutions are seeing the fastest adoption rates.",
			Category:    "Security",
			Growth:      "+29% YoY",
		},
		{
			Title:       "Edge Computing Expansion",
			Description: "Edge computing infrastructure is expanding to support real-time processing needs. This growth is driven by IoT proliferation and applications requiring minimal latency.",
			Category:    "Infrastructure",
			Growth:      "+26% YoY",
		},
	}
}
