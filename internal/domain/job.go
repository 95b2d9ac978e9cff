package domain

// JobSummary is one entry of the job list
type JobSummary struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	CompanyLogoURL  string  `json:"company_logo_url"`
	Rating          float64 `json:"rating"`
	EmploymentType  string  `json:"employment_type"`
	Location        string  `json:"location"`
	PackagePerAnnum string  `json:"package_per_annum"`
	JobDescription  string  `json:"job_description"`
}

// JobDetail is the full view of a single posting
type JobDetail struct {
	JobSummary
	CompanyWebsiteURL string        `json:"company_website_url"`
	LifeAtCompany     LifeAtCompany `json:"life_at_company"`
	Skills            []Skill       `json:"skills"`
}

// LifeAtCompany describes the employer's workplace
type LifeAtCompany struct {
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// Skill is a required skill with its icon, in the order the API lists them
type Skill struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// SimilarJob is the reduced record returned next to a job's detail.
// It carries no package information.
type SimilarJob struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	CompanyLogoURL string  `json:"company_logo_url"`
	Rating         float64 `json:"rating"`
	EmploymentType string  `json:"employment_type"`
	Location       string  `json:"location"`
	JobDescription string  `json:"job_description"`
}

// Profile is the signed-in user's profile card
type Profile struct {
	Name            string `json:"name"`
	ProfileImageURL string `json:"profile_image_url"`
	ShortBio        string `json:"short_bio"`
}

// JobDetailPage is one job's detail together with its similar jobs,
// both decoded from a single response
type JobDetailPage struct {
	Job     JobDetail    `json:"job"`
	Similar []SimilarJob `json:"similar"`
}
