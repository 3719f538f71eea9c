package models

type Profile struct {
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Location        string   `json:"location"`
	Bio             string   `json:"bio"`
	Website         string   `json:"website"`
	Specialties     []string `json:"specialties"`
	YearsExperience string   `json:"yearsExperience"`
	Avatar          string   `json:"avatar"`
}

// ProfileUpdate carries the fields a form submission changed.
type ProfileUpdate struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Location        *string `json:"location"`
	Bio             *string `json:"bio"`
	Website         *string `json:"website"`
	YearsExperience *string `json:"yearsExperience"`
}

func (p *Profile) Apply(u ProfileUpdate) {
	if u.FirstName != nil {
		p.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		p.LastName = *u.LastName
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.Website != nil {
		p.Website = *u.Website
	}
	if u.YearsExperience != nil {
		p.YearsExperience = *u.YearsExperience
	}
}
