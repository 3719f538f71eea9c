package models

// PhotographerSummary is a listing card.
type PhotographerSummary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Image         string   `json:"image"`
	Specialties   []string `json:"specialties"`
	Location      string   `json:"location"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	StartingPrice int      `json:"startingPrice"`
	Featured      bool     `json:"featured"`
}

type ProfilePackage struct {
	Name     string   `json:"name"`
	Price    int      `json:"price"`
	Duration string   `json:"duration"`
	Photos   string   `json:"photos"`
	Features []string `json:"features"`
}

type Review struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
	Event  string `json:"event"`
}

// PhotographerDetail is the public profile page.
type PhotographerDetail struct {
	PhotographerSummary
	Bio             string           `json:"bio"`
	Experience      int              `json:"experience"`
	EventsCompleted int              `json:"eventsCompleted"`
	Packages        []ProfilePackage `json:"packages"`
	Portfolio       []string         `json:"portfolio"`
	Reviews         []Review         `json:"reviews"`
}

type Notification struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Time    string `json:"time"`
}
