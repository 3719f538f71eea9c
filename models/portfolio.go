package models

// PortfolioCategories is the suggested set shown in the category picker.
// Any other string is accepted.
var PortfolioCategories = []string{"Wedding", "Portrait", "Event", "Corporate", "Family", "Maternity"}

const AllCategories = "All"

type PortfolioImage struct {
	ID          string `json:"id"`
	Src         string `json:"src"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (i PortfolioImage) EntityID() string { return i.ID }
