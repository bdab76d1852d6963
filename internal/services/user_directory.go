package services

import (
	"fmt"

	"github.com/portal-provas/exam-service/internal/models"
)

// StaticUserDirectory resolves display names from a fixed user list.
// Unknown users get a generated placeholder, matching how the portal labels
// takers the identity collaborator no longer knows about.
type StaticUserDirectory struct {
	names map[int64]string
}

func NewStaticUserDirectory(users []models.User) *StaticUserDirectory {
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return &StaticUserDirectory{names: names}
}

func (d *StaticUserDirectory) DisplayName(userID int64) string {
	if name, ok := d.names[userID]; ok {
		return name
	}
	return fmt.Sprintf("Usuário %d", userID)
}
