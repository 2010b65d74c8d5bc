package dto

import (
	"time"

	"portfolio-hub/internal/usecase"

	"github.com/google/uuid"
)

// PortfolioResponse is the public aggregate; it exposes display fields only,
// never email or role.
type PortfolioResponse struct {
	UserID     uuid.UUID            `json:"userId"`
	FullName   string               `json:"fullName"`
	Bio        string               `json:"bio"`
	JoinDate   time.Time            `json:"joinDate"`
	Projects   []ProjectResponse    `json:"projects"`
	Experience []ExperienceResponse `json:"experience"`
	Skills     []UserSkillResponse  `json:"skills"`
}

func FromPortfolio(p usecase.Portfolio) PortfolioResponse {
	return PortfolioResponse{
		UserID:     p.User.ID,
		FullName:   p.User.FullName,
		Bio:        p.User.Bio,
		JoinDate:   p.User.JoinDate,
		Projects:   FromProjects(p.Projects),
		Experience: FromExperiences(p.Experience),
		Skills:     FromUserSkillRows(p.Skills),
	}
}
