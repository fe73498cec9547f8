package models

// ProfileRecord represents the structured data extracted from one profile page
type ProfileRecord struct {
	PersonalInfo        PersonalInfo      `json:"personal_info"`
	ProfessionalSummary string            `json:"professional_summary"`
	Experience          []ExperienceEntry `json:"experience"`
	Education           []EducationEntry  `json:"education"`
	Skills              []string          `json:"skills"`
	ContactInfo         map[string]string `json:"contact_info"`
	Certifications      []string          `json:"certifications"`
	Projects            []string          `json:"projects"`
}

// PersonalInfo holds the header fields of a profile. Empty means not found.
type PersonalInfo struct {
	FullName        string `json:"full_name,omitempty"`
	CurrentPosition string `json:"current_position,omitempty"`
	Location        string `json:"location,omitempty"`
}

// ExperienceEntry represents one position in the experience section
type ExperienceEntry struct {
	JobTitle    string `json:"job_title,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Duration    string `json:"duration,omitempty"`
}

// EducationEntry represents one school in the education section
type EducationEntry struct {
	InstitutionName string `json:"institution_name,omitempty"`
	Degree          string `json:"degree,omitempty"`
}

// NewProfileRecord returns a record with every container initialized,
// so empty sections serialize as [] and {} instead of null.
func NewProfileRecord() *ProfileRecord {
	return &ProfileRecord{
		Experience:     []ExperienceEntry{},
		Education:      []EducationEntry{},
		Skills:         []string{},
		ContactInfo:    map[string]string{},
		Certifications: []string{},
		Projects:       []string{},
	}
}

// HasData reports whether any section of the record was populated
func (p *ProfileRecord) HasData() bool {
	if p == nil {
		return false
	}
	return p.PersonalInfo != (PersonalInfo{}) ||
		p.ProfessionalSummary != "" ||
		len(p.Experience) > 0 ||
		len(p.Education) > 0 ||
		len(p.Skills) > 0
}
