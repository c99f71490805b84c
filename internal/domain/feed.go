package domain

// NewsItem is one generated market news entry
type NewsItem struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
	Impact   string `json:"impact"` // High, Medium, Low
	Time     string `json:"time"`   // relative, e.g. "2 hours ago"
}

// Trend is one generated market trend entry
type Trend struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Growth      string `json:"growth"` // e.g. "+15% YoY"
}
