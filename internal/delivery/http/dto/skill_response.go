package dto

import (
	"portfolio-hub/internal/repository"

	"github.com/google/uuid"
)

type SkillDefinitionResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

func FromSkillDefinition(s repository.SkillDefinition) SkillDefinitionResponse {
	return SkillDefinitionResponse{ID: s.ID, Name: s.Name, Category: s.Category}
}

func FromSkillDefinitions(items []repository.SkillDefinition) []SkillDefinitionResponse {
	out := make([]SkillDefinitionResponse, 0, len(items))
	for _, s := range items {
		out = append(out, FromSkillDefinition(s))
	}
	return out
}

type UserSkillResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"userId"`
	SkillDefID       uuid.UUID `json:"skillDefId"`
	SkillName        string    `json:"skillName"`
	Category         string    `json:"category"`
	ProficiencyLevel int       `json:"proficiencyLevel"`
	OwnerName        string    `json:"ownerName,omitempty"`
}

func FromUserSkillRow(us repository.UserSkillRow) UserSkillResponse {
	return UserSkillResponse{
		ID:               us.ID,
		UserID:           us.UserID,
		SkillDefID:       us.SkillDefID,
		SkillName:        us.SkillName,
		Category:         us.Category,
		ProficiencyLevel: us.ProficiencyLevel,
	}
}

func FromUserSkillRows(items []repository.UserSkillRow) []UserSkillResponse {
	out := make([]UserSkillResponse, 0, len(items))
	for _, us := range items {
		out = append(out, FromUserSkillRow(us))
	}
	return out
}

func FromUserSkillListRows(items []repository.UserSkillListRow) []UserSkillResponse {
	out := make([]UserSkillResponse, 0, len(items))
	for _, row := range items {
		res := FromUserSkillRow(row.UserSkillRow)
		res.OwnerName = row.OwnerName
		out = append(out, res)
	}
	return out
}
