package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Dashboard list sizes.
const (
	topViewedLimit     = 5
	recentContactLimit = 5
	trendMonths        = 6
)

// Repository computes dashboard aggregates over the application tables.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a stats repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Dashboard assembles the overview payload in a single pass.
func (r *Repository) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	var err error

	if d.Overview, err = r.overview(ctx); err != nil {
		return nil, err
	}
	if d.TopViewed, err = r.topViewed(ctx); err != nil {
		return nil, err
	}
	if d.RecentContacts, err = r.recentContacts(ctx); err != nil {
		return nil, err
	}
	if d.Categories, err = r.categorySlices(ctx); err != nil {
		return nil, err
	}
	if d.ContactTrend, err = r.contactTrend(ctx); err != nil {
		return nil, err
	}
	if d.Testimonials, err = r.testimonialBreakdown(ctx); err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *Repository) overview(ctx context.Context) (Overview, error) {
	var o Overview

	const query = `SELECT
		(SELECT COUNT(*) FROM portfolio_items WHERE is_active = 1),
		(SELECT COUNT(*) FROM testimonials WHERE is_approved = 1),
		(SELECT COUNT(*) FROM contact_messages),
		(SELECT COUNT(*) FROM contact_messages WHERE status = 'new'),
		(SELECT COALESCE(SUM(views), 0) FROM portfolio_items),
		(SELECT COALESCE(AVG(rating), 0) FROM testimonials WHERE is_approved = 1)`

	err := r.db.QueryRowContext(ctx, query).Scan(
		&o.ActivePortfolioItems, &o.ApprovedTestimonials,
		&o.TotalContacts, &o.NewContacts,
		&o.TotalViews, &o.AverageRating,
	)
	if err != nil {
		return o, fmt.Errorf("querying overview: %w", err)
	}
	return o, nil
}

func (r *Repository) topViewed(ctx context.Context) ([]TopItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, category, views FROM portfolio_items
		 WHERE is_active = 1 ORDER BY views DESC, created_at DESC LIMIT ?`,
		topViewedLimit)
	if err != nil {
		return nil, fmt.Errorf("querying top viewed: %w", err)
	}
	defer rows.Close()

	items := []TopItem{}
	for rows.Next() {
		var item TopItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Category, &item.Views); err != nil {
			return nil, fmt.Errorf("scanning top viewed: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *Repository) recentContacts(ctx context.Context) ([]RecentContact, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, occasion, status, created_at FROM contact_messages
		 ORDER BY created_at DESC LIMIT ?`,
		recentContactLimit)
	if err != nil {
		return nil, fmt.Errorf("querying recent contacts: %w", err)
	}
	defer rows.Close()

	contacts := []RecentContact{}
	for rows.Next() {
		var c RecentContact
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Occasion, &c.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning recent contact: %w", err)
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *Repository) categorySlices(ctx context.Context) ([]CategorySlice, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM portfolio_items
		 WHERE is_active = 1 GROUP BY category ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying category distribution: %w", err)
	}
	defer rows.Close()

	slices := []CategorySlice{}
	for rows.Next() {
		var s CategorySlice
		if err := rows.Scan(&s.Category, &s.Count); err != nil {
			return nil, fmt.Errorf("scanning category slice: %w", err)
		}
		slices = append(slices, s)
	}
	return slices, rows.Err()
}

// contactTrend counts enquiries per month for the last six months,
// including empty months.
func (r *Repository) contactTrend(ctx context.Context) ([]MonthCount, error) {
	since := time.Now().UTC().AddDate(0, -(trendMonths - 1), 0)
	sinceMonth := time.Date(since.Year(), since.Month(), 1, 0, 0, 0, 0, time.UTC)

	rows, err := r.db.QueryContext(ctx,
		`SELECT strftime('%Y-%m', created_at), COUNT(*) FROM contact_messages
		 WHERE created_at >= ? GROUP BY 1 ORDER BY 1`,
		sinceMonth.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("querying contact trend: %w", err)
	}
	defer rows.Close()

	byMonth := make(map[string]int)
	for rows.Next() {
		var month string
		var count int
		if err := rows.Scan(&month, &count); err != nil {
			return nil, fmt.Errorf("scanning contact trend: %w", err)
		}
		byMonth[month] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contact trend: %w", err)
	}

	trend := make([]MonthCount, 0, trendMonths)
	for i := 0; i < trendMonths; i++ {
		month := sinceMonth.AddDate(0, i, 0).Format("2006-01")
		trend = append(trend, MonthCount{Month: month, Count: byMonth[month]})
	}
	return trend, nil
}

func (r *Repository) testimonialBreakdown(ctx context.Context) (TestimonialBreakdown, error) {
	b := TestimonialBreakdown{ByRating: make(map[int]int)}

	const query = `SELECT
		COUNT(*),
		COALESCE(SUM(is_approved), 0),
		COALESCE(SUM(featured), 0)
		FROM testimonials`
	if err := r.db.QueryRowContext(ctx, query).Scan(&b.Total, &b.Approved, &b.Featured); err != nil {
		return b, fmt.Errorf("querying testimonial breakdown: %w", err)
	}
	b.Pending = b.Total - b.Approved

	rows, err := r.db.QueryContext(ctx,
		"SELECT rating, COUNT(*) FROM testimonials GROUP BY rating")
	if err != nil {
		return b, fmt.Errorf("querying rating distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return b, fmt.Errorf("scanning rating distribution: %w", err)
		}
		b.ByRating[rating] = count
	}
	return b, rows.Err()
}

// priceBuckets defines the report's price ranges. Upper bounds are
// exclusive; the last bucket is open-ended.
var priceBuckets = []struct {
	label string
	min   float64
	max   float64
}{
	{"under £50", 0, 50},
	{"£50-£150", 50, 150},
	{"£150-£350", 150, 350},
	{"£350-£600", 350, 600},
	{"£600+", 600, -1},
}

// PortfolioReport assembles the detailed portfolio stats payload.
func (r *Repository) PortfolioReport(ctx context.Context) (*PortfolioReport, error) {
	var report PortfolioReport

	const totals = `SELECT
		COUNT(*),
		COALESCE(SUM(is_active), 0),
		COALESCE(SUM(featured), 0),
		COALESCE(SUM(views), 0)
		FROM portfolio_items`
	err := r.db.QueryRowContext(ctx, totals).Scan(
		&report.Total, &report.Active, &report.Featured, &report.TotalViews)
	if err != nil {
		return nil, fmt.Errorf("querying portfolio totals: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COUNT(*), COALESCE(SUM(views), 0), COALESCE(AVG(price), 0)
		 FROM portfolio_items WHERE is_active = 1
		 GROUP BY category ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying category stats: %w", err)
	}
	defer rows.Close()

	report.ByCategory = []CategoryStats{}
	for rows.Next() {
		var cs CategoryStats
		if err := rows.Scan(&cs.Category, &cs.Count, &cs.Views, &cs.AveragePrice); err != nil {
			return nil, fmt.Errorf("scanning category stats: %w", err)
		}
		report.ByCategory = append(report.ByCategory, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category stats: %w", err)
	}

	report.PriceRanges = make([]PriceBucket, 0, len(priceBuckets))
	for _, bucket := range priceBuckets {
		var count int
		var err error
		if bucket.max < 0 {
			err = r.db.QueryRowContext(ctx,
				"SELECT COUNT(*) FROM portfolio_items WHERE is_active = 1 AND price >= ?",
				bucket.min).Scan(&count)
		} else {
			err = r.db.QueryRowContext(ctx,
				"SELECT COUNT(*) FROM portfolio_items WHERE is_active = 1 AND price >= ? AND price < ?",
				bucket.min, bucket.max).Scan(&count)
		}
		if err != nil {
			return nil, fmt.Errorf("counting price bucket %q: %w", bucket.label, err)
		}
		report.PriceRanges = append(report.PriceRanges, PriceBucket{Label: bucket.label, Count: count})
	}

	return &report, nil
}
