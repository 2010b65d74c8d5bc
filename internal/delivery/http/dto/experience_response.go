package dto

import (
	"time"

	"portfolio-hub/internal/repository"

	"github.com/google/uuid"
)

type ExperienceResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	JobTitle  string     `json:"jobTitle"`
	Company   string     `json:"company"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	OwnerName string     `json:"ownerName,omitempty"`
}

func FromExperience(e repository.Experience) ExperienceResponse {
	return ExperienceResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		JobTitle:  e.JobTitle,
		Company:   e.Company,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
	}
}

func FromExperiences(items []repository.Experience) []ExperienceResponse {
	out := make([]ExperienceResponse, 0, len(items))
	for _, e := range items {
		out = append(out, FromExperience(e))
	}
	return out
}

func FromExperienceListRows(items []repository.ExperienceListRow) []ExperienceResponse {
	out := make([]ExperienceResponse, 0, len(items))
	for _, row := range items {
		res := FromExperience(row.Experience)
		res.OwnerName = row.OwnerName
		out = append(out, res)
	}
	return out
}
