package services

import (
	"slices"
	"strings"

	"snapbook-backend/models"
)

// Listing sort orders.
const (
	SortRelevance = "relevance"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortRating    = "rating"
	SortReviews   = "reviews"
)

// SpecialtyFilters are the chips shown above the listing.
var SpecialtyFilters = []string{"All", "Weddings", "Corporate", "Family", "Fashion", "Events", "Portraits"}

type CatalogQuery struct {
	Search    string `form:"q"`
	Location  string `form:"location"`
	Specialty string `form:"specialty"`
	Sort      string `form:"sort"`
	Featured  bool   `form:"featured"`
}

// Catalog serves the public listing and profile pages from a fixed set of
// photographers.
type Catalog struct {
	photographers []models.PhotographerDetail
}

func NewCatalog() *Catalog {
	return &Catalog{photographers: catalogPhotographers()}
}

func (c *Catalog) List(q CatalogQuery) []models.PhotographerSummary {
	out := []models.PhotographerSummary{}
	for _, p := range c.photographers {
		if q.Featured && !p.Featured {
			continue
		}
		if !matches(p.PhotographerSummary, q) {
			continue
		}
		out = append(out, p.PhotographerSummary)
	}

	switch q.Sort {
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b models.PhotographerSummary) int { return a.StartingPrice - b.StartingPrice })
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b models.PhotographerSummary) int { return b.StartingPrice - a.StartingPrice })
	case SortRating:
		slices.SortStableFunc(out, func(a, b models.PhotographerSummary) int {
			switch {
			case a.Rating > b.Rating:
				return -1
			case a.Rating < b.Rating:
				return 1
			}
			return 0
		})
	case SortReviews:
		slices.SortStableFunc(out, func(a, b models.PhotographerSummary) int { return b.ReviewCount - a.ReviewCount })
	}
	return out
}

func (c *Catalog) Featured() []models.PhotographerSummary {
	return c.List(CatalogQuery{Featured: true})
}

func (c *Catalog) Get(id string) (models.PhotographerDetail, error) {
	for _, p := range c.photographers {
		if p.ID == id {
			return p, nil
		}
	}
	return models.PhotographerDetail{}, ErrPhotographerNotFound
}

func matches(p models.PhotographerSummary, q CatalogQuery) bool {
	if q.Specialty != "" && q.Specialty != models.AllCategories {
		if !slices.ContainsFunc(p.Specialties, func(s string) bool { return strings.EqualFold(s, q.Specialty) }) {
			return false
		}
	}
	if q.Location != "" && !containsFold(p.Location, q.Location) {
		return false
	}
	if q.Search != "" {
		hit := containsFold(p.Name, q.Search) || containsFold(p.Location, q.Search) ||
			slices.ContainsFunc(p.Specialties, func(s string) bool { return containsFold(s, q.Search) })
		if !hit {
			return false
		}
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

func catalogPhotographers() []models.PhotographerDetail {
	summaries := []models.PhotographerSummary{
		{ID: "1", Name: "Emma Rodriguez", Image: "/assets/photographer-1.jpg", Specialties: []string{"Weddings", "Portraits", "Couples"}, Location: "Los Angeles, CA", Rating: 4.9, ReviewCount: 127, StartingPrice: 800, Featured: true},
		{ID: "2", Name: "Marcus Chen", Image: "/assets/photographer-2.jpg", Specialties: []string{"Corporate", "Events", "Headshots"}, Location: "San Francisco, CA", Rating: 4.8, ReviewCount: 89, StartingPrice: 600, Featured: true},
		{ID: "3", Name: "Sofia Martinez", Image: "/assets/photographer-3.jpg", Specialties: []string{"Lifestyle", "Family", "Newborn"}, Location: "Austin, TX", Rating: 4.9, ReviewCount: 156, StartingPrice: 550, Featured: true},
		{ID: "4", Name: "David Kim", Image: "/assets/photographer-1.jpg", Specialties: []string{"Fashion", "Commercial", "Editorial"}, Location: "New York, NY", Rating: 4.7, ReviewCount: 203, StartingPrice: 1200},
		{ID: "5", Name: "Luna Thompson", Image: "/assets/photographer-2.jpg", Specialties: []string{"Nature", "Travel", "Adventure"}, Location: "Denver, CO", Rating: 4.8, ReviewCount: 94, StartingPrice: 450},
		{ID: "6", Name: "Alex Johnson", Image: "/assets/photographer-3.jpg", Specialties: []string{"Music", "Concert", "Entertainment"}, Location: "Nashville, TN", Rating: 4.6, ReviewCount: 67, StartingPrice: 700},
	}

	packages := []models.ProfilePackage{
		{Name: "Essential", Price: 800, Duration: "4 hours", Photos: "50-75 edited photos", Features: []string{"Online gallery", "High-resolution downloads", "Basic retouching"}},
		{Name: "Premium", Price: 1200, Duration: "6 hours", Photos: "100-150 edited photos", Features: []string{"Online gallery", "High-resolution downloads", "Advanced retouching", "USB drive", "Print release"}},
		{Name: "Luxury", Price: 1800, Duration: "8 hours", Photos: "200+ edited photos", Features: []string{"Online gallery", "High-resolution downloads", "Advanced retouching", "USB drive", "Print release", "Engagement session", "Second photographer"}},
	}
	reviews := []models.Review{
		{Name: "Sarah & Michael", Rating: 5, Text: "Emma captured our wedding day perfectly! Her attention to detail and ability to make us feel comfortable resulted in the most beautiful photos we could have imagined.", Event: "Wedding"},
		{Name: "Jennifer L.", Rating: 5, Text: "Professional, creative, and so easy to work with. The family portraits turned out amazing and our kids actually enjoyed the photo session!", Event: "Family Portraits"},
	}

	out := make([]models.PhotographerDetail, 0, len(summaries))
	for _, s := range summaries {
		portfolio := make([]string, 6)
		for i := range portfolio {
			portfolio[i] = s.Image
		}
		out = append(out, models.PhotographerDetail{
			PhotographerSummary: s,
			Bio:                 "With over 8 years of experience capturing life's most precious moments, I specialize in creating timeless, romantic imagery that tells your unique story. My approach combines photojournalistic style with fine art techniques to deliver stunning results.",
			Experience:          8,
			EventsCompleted:     200,
			Packages:            packages,
			Portfolio:           portfolio,
			Reviews:             reviews,
		})
	}
	return out
}

type AboutValue struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type AboutStat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type About struct {
	Headline string       `json:"headline"`
	Story    string       `json:"story"`
	Mission  string       `json:"mission"`
	Values   []AboutValue `json:"values"`
	Stats    []AboutStat  `json:"stats"`
}

func (c *Catalog) About() About {
	return About{
		Headline: "Connecting Stories with Storytellers",
		Story:    "SnapBook was founded on the belief that every moment deserves to be captured beautifully. We connect you with talented photographers who understand that your special occasions are more than just events. They're the chapters of your life story.",
		Mission:  "To make professional photography accessible to everyone, while empowering photographers to build thriving businesses doing what they love.",
		Values: []AboutValue{
			{Title: "Quality First", Description: "Every photographer is carefully vetted to ensure exceptional quality and professionalism."},
			{Title: "Community", Description: "Building a supportive community where photographers and clients connect meaningfully."},
			{Title: "Excellence", Description: "Continuously improving our platform to deliver the best experience for everyone."},
			{Title: "Passion", Description: "Driven by love for photography and the joy of preserving life's precious moments."},
		},
		Stats: []AboutStat{
			{Value: "500+", Label: "Professional Photographers"},
			{Value: "10k+", Label: "Events Captured"},
			{Value: "50+", Label: "Cities Covered"},
			{Value: "98%", Label: "Customer Satisfaction"},
		},
	}
}
