package dto

import (
	"portfolio-hub/internal/repository"
	"portfolio-hub/internal/usecase"
)

type AdminStatsResponse struct {
	Users            int `json:"users"`
	Projects         int `json:"projects"`
	Experience       int `json:"experience"`
	SkillDefinitions int `json:"skillDefinitions"`
	UserSkills       int `json:"userSkills"`
}

func FromCounts(c repository.Counts) AdminStatsResponse {
	return AdminStatsResponse{
		Users:            c.Users,
		Projects:         c.Projects,
		Experience:       c.Experience,
		SkillDefinitions: c.SkillDefinitions,
		UserSkills:       c.UserSkills,
	}
}

type PublicStatsResponse struct {
	Users            int `json:"users"`
	Projects         int `json:"projects"`
	SkillDefinitions int `json:"skills"`
}

func FromPublicCounts(c usecase.PublicCounts) PublicStatsResponse {
	return PublicStatsResponse{
		Users:            c.Users,
		Projects:         c.Projects,
		SkillDefinitions: c.SkillDefinitions,
	}
}
