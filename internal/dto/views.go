// Package dto holds the view models handed to templates.
package dto

import (
	"time"

	"github.com/confessbox/confessbox/internal/models"
)

// UserView represents a user on a rendered page
type UserView struct {
	ID       uint64
	Username string
	Name     string
	Bio      string
	Pfp      string
}

// DisplayName prefers the optional display name over the username.
func (u UserView) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// ConfessionView represents a received confession on the dashboard
type ConfessionView struct {
	Content    string
	SentAt     time.Time
	Anonymous  bool
	SenderName string // empty for anonymous confessions
}

// DashboardView is the data for the dashboard page
type DashboardView struct {
	User        UserView
	Confessions []ConfessionView
	Page        int
	TotalPages  int
	Total       int64
}

// ToUserView converts a User model to UserView
func ToUserView(user models.User) UserView {
	return UserView{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Bio:      user.Bio,
		Pfp:      user.Pfp,
	}
}

// ToConfessionView converts a Confession model to ConfessionView
func ToConfessionView(confession models.Confession) ConfessionView {
	view := ConfessionView{
		Content:   confession.Content,
		SentAt:    confession.CreatedAt,
		Anonymous: confession.Anonymous(),
	}
	if confession.Sender != nil {
		view.SenderName = confession.Sender.Username
	}
	return view
}

// ToConfessionViews converts a page of confessions
func ToConfessionViews(confessions []models.Confession) []ConfessionView {
	views := make([]ConfessionView, len(confessions))
	for i, confession := range confessions {
		views[i] = ToConfessionView(confession)
	}
	return views
}
