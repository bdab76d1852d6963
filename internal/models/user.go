package models

type UserRole string

const (
	RoleProfessor UserRole = "professor"
	RoleStudent   UserRole = "aluno"
	RoleAdmin     UserRole = "admin"
)

// User mirrors what the identity collaborator supplies. The core never
// authenticates; it trusts the (id, role) pair handed to it.
type User struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// Identity is the caller context attached by the auth layer in front of us.
type Identity struct {
	UserID int64
	Role   UserRole
}

func (i Identity) IsProfessor() bool { return i.Role == RoleProfessor }
func (i Identity) IsAdmin() bool     { return i.Role == RoleAdmin }
