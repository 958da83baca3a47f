package models

type Profile struct {
	ID          uint   `gorm:"primaryKey"`
	FirstName   string `gorm:"type:varchar(100);not null"`
	LastName    string `gorm:"type:varchar(100);not null"`
	Email       string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone       string `gorm:"type:varchar(20)"`
	Location    string `gorm:"type:varchar(255)"`
	LinkedInURL string `gorm:"column:linkedin_url;type:varchar(255)"`
	GithubURL   string `gorm:"type:varchar(255)"`
	WebsiteURL  string `gorm:"type:varchar(255)"`
	Title       string `gorm:"type:varchar(255);not null"`
	Summary     string `gorm:"type:text"`
	Active      bool   `gorm:"not null;index"`
	Versioned

	Experiences    []Experience    `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Educations     []Education     `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Skills         []Skill         `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Certifications []Certification `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}

func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
