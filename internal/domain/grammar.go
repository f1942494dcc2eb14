package domain

import "time"

type GrammarSet struct {
	ID          string
	UserID      string
	Name        string
	Description *string
	Grammars    []Grammar
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Grammar struct {
	ID           string
	UserID       string
	GrammarSetID string
	Name         string
	Description  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s GrammarSet) OwnedBy(userID string) bool {
	return s.UserID != "" && s.UserID == userID
}
