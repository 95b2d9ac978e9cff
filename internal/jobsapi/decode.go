package jobsapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/project-tktt/jobby/internal/common/cleaner"
	"github.com/project-tktt/jobby/internal/domain"
)

var clean = cleaner.NewCleaner()

// DecodeJobList accepts either a bare array of jobs or {"jobs": [...]}.
// An empty list decodes to an empty, non-nil slice.
func DecodeJobList(body []byte) ([]domain.JobSummary, error) {
	var items []jobWire

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("parse job list: %w", err)
		}
	} else {
		var wrapper jobListResponse
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("parse job list: %w", err)
		}
		if wrapper.Jobs == nil {
			return nil, errors.New("parse job list: missing jobs")
		}
		items = *wrapper.Jobs
	}

	jobs := make([]domain.JobSummary, 0, len(items))
	for i, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("job %d: missing id", i)
		}
		job := item.summary()
		clean.Summary(&job)
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// DecodeJobDetail splits {"job_details": ..., "similar_jobs": [...]} into
// the detail and its similar jobs.
func DecodeJobDetail(body []byte) (domain.JobDetailPage, error) {
	var resp jobDetailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.JobDetailPage{}, fmt.Errorf("parse job detail: %w", err)
	}
	if resp.JobDetails == nil {
		return domain.JobDetailPage{}, errors.New("parse job detail: missing job_details")
	}
	if resp.SimilarJobs == nil {
		return domain.JobDetailPage{}, errors.New("parse job detail: missing similar_jobs")
	}

	wire := resp.JobDetails
	if wire.ID == "" {
		return domain.JobDetailPage{}, errors.New("job_details: missing id")
	}
	if wire.LifeAtCompany == nil {
		return domain.JobDetailPage{}, errors.New("job_details: missing life_at_company")
	}

	detail := domain.JobDetail{
		JobSummary:        wire.summary(),
		CompanyWebsiteURL: wire.CompanyWebsiteURL,
		LifeAtCompany: domain.LifeAtCompany{
			Description: wire.LifeAtCompany.Description,
			ImageURL:    wire.LifeAtCompany.ImageURL,
		},
		Skills: make([]domain.Skill, 0, len(wire.Skills)),
	}
	for _, s := range wire.Skills {
		detail.Skills = append(detail.Skills, domain.Skill{Name: s.Name, ImageURL: s.ImageURL})
	}
	clean.Detail(&detail)

	similar := make([]domain.SimilarJob, 0, len(*resp.SimilarJobs))
	for i, s := range *resp.SimilarJobs {
		if s.ID == "" {
			return domain.JobDetailPage{}, fmt.Errorf("similar job %d: missing id", i)
		}
		job := domain.SimilarJob{
			ID:             s.ID,
			Title:          s.Title,
			CompanyLogoURL: s.CompanyLogoURL,
			Rating:         s.Rating,
			EmploymentType: s.EmploymentType,
			Location:       s.Location,
			JobDescription: s.JobDescription,
		}
		clean.Similar(&job)
		similar = append(similar, job)
	}

	return domain.JobDetailPage{Job: detail, Similar: similar}, nil
}

// DecodeProfile reads {"profile_details": {...}}
func DecodeProfile(body []byte) (domain.Profile, error) {
	var resp profileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	if resp.ProfileDetails == nil {
		return domain.Profile{}, errors.New("parse profile: missing profile_details")
	}
	p := domain.Profile{
		Name:            resp.ProfileDetails.Name,
		ProfileImageURL: resp.ProfileDetails.ProfileImageURL,
		ShortBio:        resp.ProfileDetails.ShortBio,
	}
	clean.Profile(&p)
	return p, nil
}

// DecodeLogin reads {"jwt_token": "..."}
func DecodeLogin(body []byte) (string, error) {
	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse login: %w", err)
	}
	if resp.JWTToken == "" {
		return "", errors.New("parse login: missing jwt_token")
	}
	return resp.JWTToken, nil
}

func (w jobWire) summary() domain.JobSummary {
	return domain.JobSummary{
		ID:              w.ID,
		Title:           w.Title,
		CompanyLogoURL:  w.CompanyLogoURL,
		Rating:          w.Rating,
		EmploymentType:  w.EmploymentType,
		Location:        w.Location,
		PackagePerAnnum: w.PackagePerAnnum,
		JobDescription:  w.JobDescription,
	}
}
