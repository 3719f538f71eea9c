package models

import "strings"

type PricingPackage struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       int      `json:"price"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	IsPopular   bool     `json:"isPopular"`
}

func (p PricingPackage) EntityID() string { return p.ID }

// AddFeature appends a trimmed feature. Blank input is ignored.
func (p *PricingPackage) AddFeature(feature string) bool {
	feature = strings.TrimSpace(feature)
	if feature == "" {
		return false
	}
	p.Features = append(append([]string(nil), p.Features...), feature)
	return true
}

// RemoveFeature drops the feature at index i.
func (p *PricingPackage) RemoveFeature(i int) bool {
	if i < 0 || i >= len(p.Features) {
		return false
	}
	next := make([]string, 0, len(p.Features)-1)
	next = append(next, p.Features[:i]...)
	next = append(next, p.Features[i+1:]...)
	p.Features = next
	return true
}

type PricingAnalytics struct {
	TotalPackages int `json:"totalPackages"`
	AveragePrice  int `json:"averagePrice"`
	StartingFrom  int `json:"startingFrom"`
}
