package dto

import (
	"portfolio-hub/internal/repository"

	"github.com/google/uuid"
)

type ExpertResponse struct {
	UserID           uuid.UUID `json:"userId"`
	FullName         string    `json:"fullName"`
	Email            string    `json:"email"`
	Bio              string    `json:"bio"`
	SkillName        string    `json:"skillName"`
	ProficiencyLevel int       `json:"proficiencyLevel"`
	ProjectCount     int       `json:"projectCount"`
}

type ExpertSearchCriteria struct {
	Skill          string `json:"skill"`
	MinProficiency int    `json:"minProficiency"`
}

// ExpertSearchResponse echoes the criteria next to the matches so clients can
// label the results.
type ExpertSearchResponse struct {
	Experts        []ExpertResponse     `json:"experts"`
	SearchCriteria ExpertSearchCriteria `json:"searchCriteria"`
}

func FromExpertRows(items []repository.ExpertRow) []ExpertResponse {
	out := make([]ExpertResponse, 0, len(items))
	for _, e := range items {
		out = append(out, ExpertResponse{
			UserID:           e.UserID,
			FullName:         e.FullName,
			Email:            e.Email,
			Bio:              e.Bio,
			SkillName:        e.SkillName,
			ProficiencyLevel: e.ProficiencyLevel,
			ProjectCount:     e.ProjectCount,
		})
	}
	return out
}
