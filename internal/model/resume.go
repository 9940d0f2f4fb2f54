package model

// Go models for the resume document. The JSON shape is the on-disk snapshot
// format and the remote document format; resume.schema.json mirrors it.

type PersonalInfo struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Location   string `json:"location"`
	LinkedIn   string `json:"linkedin"`
	GitHub     string `json:"github"`
	Summary    string `json:"summary"`
	ProfilePic string `json:"profile_pic"`
}

type Experience struct {
	Company      string `json:"company"`
	Position     string `json:"position"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Description  string `json:"description"`
	Technologies string `json:"technologies,omitempty"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
	GPA         string `json:"gpa"`
}

type Project struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	URL          string `json:"url"`
}

type Certification struct {
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	Date         string `json:"date"`
	CredentialID string `json:"credential_id"`
}

type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// Document is the root aggregate edited by one session at a time.
type Document struct {
	PersonalInfo   PersonalInfo    `json:"personal_info"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []string        `json:"skills"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Languages      []Language      `json:"languages"`
}

// NewDocument returns an empty document whose collections encode as [].
func NewDocument() Document {
	d := Document{}
	d.Normalize()
	return d
}

// Normalize replaces nil collections with empty ones.
func (d *Document) Normalize() {
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Skills == nil {
		d.Skills = []string{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	if d.Languages == nil {
		d.Languages = []Language{}
	}
}

// Clone returns a deep copy so renderers can rewrite fields freely.
func (d Document) Clone() Document {
	out := d
	out.Experience = append([]Experience{}, d.Experience...)
	out.Education = append([]Education{}, d.Education...)
	out.Skills = append([]string{}, d.Skills...)
	out.Projects = append([]Project{}, d.Projects...)
	out.Certifications = append([]Certification{}, d.Certifications...)
	out.Languages = append([]Language{}, d.Languages...)
	return out
}

// PersonalFields exposes personal info as a key/value record for the
// required-field check.
func (p PersonalInfo) PersonalFields() map[string]string {
	return map[string]string{
		"full_name":   p.FullName,
		"email":       p.Email,
		"phone":       p.Phone,
		"location":    p.Location,
		"linkedin":    p.LinkedIn,
		"github":      p.GitHub,
		"summary":     p.Summary,
		"profile_pic": p.ProfilePic,
	}
}

// Sample returns the demonstration document offered on the landing page.
func Sample() Document {
	return Document{
		PersonalInfo: PersonalInfo{
			FullName: "John Doe",
			Email:    "john.doe@email.com",
			Phone:    "+1-555-0123",
			Location: "New York, NY",
			LinkedIn: "https://linkedin.com/in/johndoe",
			GitHub:   "https://github.com/johndoe",
			Summary:  "Experienced software developer with 5+ years in full-stack development.",
		},
		Experience: []Experience{{
			Company:      "Tech Solutions Inc.",
			Position:     "Senior Developer",
			StartDate:    "2022-01",
			EndDate:      "Present",
			Description:  "Led development of web applications using React and Python.",
			Technologies: "React, Python, PostgreSQL",
		}},
		Education: []Education{{
			Institution: "University of Technology",
			Degree:      "Bachelor of Computer Science",
			Year:        "2019",
			GPA:         "3.8",
		}},
		Skills: []string{"Python", "JavaScript", "React", "Node.js", "SQL"},
		Projects: []Project{{
			Name:         "E-commerce Platform",
			Description:  "Built a full-stack e-commerce platform.",
			Technologies: "React, Node.js, MongoDB",
		}},
		Certifications: []Certification{{
			Name:         "AWS Certified Developer",
			Issuer:       "Amazon Web Services",
			Date:         "2023-01",
			CredentialID: "AWS-123456",
		}},
		Languages: []Language{
			{Name: "English", Proficiency: "Native"},
			{Name: "Spanish", Proficiency: "Intermediate"},
		},
	}
}
