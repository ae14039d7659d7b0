package stats

import "time"

// Overview is the headline counter block of the dashboard.
type Overview struct {
	ActivePortfolioItems int     `json:"active_portfolio_items"`
	ApprovedTestimonials int     `json:"approved_testimonials"`
	TotalContacts        int     `json:"total_contacts"`
	NewContacts          int     `json:"new_contacts"`
	TotalViews           int     `json:"total_views"`
	AverageRating        float64 `json:"average_rating"`
}

// TopItem is a most-viewed portfolio entry.
type TopItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Views    int    `json:"views"`
}

// RecentContact is a dashboard summary of one enquiry.
type RecentContact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Occasion  string    `json:"occasion"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CategorySlice is one category's share of the active portfolio.
type CategorySlice struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// MonthCount is one month of the enquiry trend.
type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

// TestimonialBreakdown summarises review state and ratings.
type TestimonialBreakdown struct {
	Total    int         `json:"total"`
	Approved int         `json:"approved"`
	Pending  int         `json:"pending"`
	Featured int         `json:"featured"`
	ByRating map[int]int `json:"by_rating"`
}

// Dashboard is the full payload of the overview endpoint.
type Dashboard struct {
	Overview       Overview             `json:"overview"`
	TopViewed      []TopItem            `json:"top_viewed"`
	RecentContacts []RecentContact      `json:"recent_contacts"`
	Categories     []CategorySlice      `json:"categories"`
	ContactTrend   []MonthCount         `json:"contact_trend"`
	Testimonials   TestimonialBreakdown `json:"testimonials"`
}

// CategoryStats is the per-category block of the portfolio report.
type CategoryStats struct {
	Category     string  `json:"category"`
	Count        int     `json:"count"`
	Views        int     `json:"views"`
	AveragePrice float64 `json:"average_price"`
}

// PriceBucket is one price range of the portfolio report.
type PriceBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PortfolioReport is the full payload of the portfolio stats endpoint.
type PortfolioReport struct {
	Total       int             `json:"total"`
	Active      int             `json:"active"`
	Featured    int             `json:"featured"`
	TotalViews  int             `json:"total_views"`
	ByCategory  []CategoryStats `json:"by_category"`
	PriceRanges []PriceBucket   `json:"price_ranges"`
}
