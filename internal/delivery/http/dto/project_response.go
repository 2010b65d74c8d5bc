package dto

import (
	"time"

	"portfolio-hub/internal/repository"

	"github.com/google/uuid"
)

type ProjectResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	ProjectURL    string     `json:"projectUrl"`
	DateCompleted *time.Time `json:"dateCompleted"`
	OwnerName     string     `json:"ownerName,omitempty"`
}

func FromProject(p repository.Project) ProjectResponse {
	return ProjectResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Title:         p.Title,
		Description:   p.Description,
		ProjectURL:    p.ProjectURL,
		DateCompleted: p.DateCompleted,
	}
}

func FromProjects(items []repository.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromProject(p))
	}
	return out
}

func FromProjectListRows(items []repository.ProjectListRow) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(items))
	for _, row := range items {
		res := FromProject(row.Project)
		res.OwnerName = row.OwnerName
		out = append(out, res)
	}
	return out
}
