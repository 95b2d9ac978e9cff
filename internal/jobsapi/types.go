package jobsapi

// Credentials is the login form payload
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	JWTToken string `json:"jwt_token"`
}

// jobWire mirrors a job entry in the list response
type jobWire struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	CompanyLogoURL  string  `json:"company_logo_url"`
	Rating          float64 `json:"rating"`
	EmploymentType  string  `json:"employment_type"`
	Location        string  `json:"location"`
	PackagePerAnnum string  `json:"package_per_annum"`
	JobDescription  string  `json:"job_description"`
}

// jobListResponse is the wrapped form of the list response.
// Some deployments return the bare array instead.
type jobListResponse struct {
	Jobs  *[]jobWire `json:"jobs"`
	Total int        `json:"total"`
}

type skillWire struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

type lifeAtCompanyWire struct {
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type jobDetailWire struct {
	jobWire
	CompanyWebsiteURL string             `json:"company_website_url"`
	LifeAtCompany     *lifeAtCompanyWire `json:"life_at_company"`
	Skills            []skillWire        `json:"skills"`
}

// similarJobWire has no package_per_annum
type similarJobWire struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	CompanyLogoURL string  `json:"company_logo_url"`
	Rating         float64 `json:"rating"`
	EmploymentType string  `json:"employment_type"`
	Location       string  `json:"location"`
	JobDescription string  `json:"job_description"`
}

type jobDetailResponse struct {
	JobDetails  *jobDetailWire    `json:"job_details"`
	SimilarJobs *[]similarJobWire `json:"similar_jobs"`
}

type profileWire struct {
	Name            string `json:"name"`
	ProfileImageURL string `json:"profile_image_url"`
	ShortBio        string `json:"short_bio"`
}

type profileResponse struct {
	ProfileDetails *profileWire `json:"profile_details"`
}
