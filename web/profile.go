package web

import (
	"net/http"

	"github.com/hvpham-yorku/StockSage-AI/domain"
	"github.com/hvpham-yorku/StockSage-AI/http/session"
)

type profileForm struct {
	Name          string `schema:"name" validate:"max=100"`
	Theme         string `schema:"theme" validate:"omitempty,oneof=light dark system"`
	Notifications bool   `schema:"notifications_enabled"`
	DefaultView   string `schema:"default_view" validate:"omitempty,oneof=dashboard portfolio stocks"`
}

type deleteProfileForm struct {
	Confirm    bool `schema:"confirm" validate:"required"`
	DeleteAuth bool `schema:"delete_auth"`
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	profile := load(r.Context(), h, h.client(r).Profile)
	h.page(w, r, profileTmpl, profile, profile)
}

// updateProfile saves the user's name and preferences.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	form := new(profileForm)
	if err := h.parser.ParseForm(r, form); err != nil {
		h.retry(w, r, ProfilePath, session.BadInputMsg, err)
		return
	}

	update := domain.ProfileUpdate{
		Name: form.Name,
		Preferences: &domain.Preferences{
			Theme:                form.Theme,
			NotificationsEnabled: form.Notifications,
			DefaultView:          form.DefaultView,
		},
	}

	if _, err := h.client(r).UpdateProfile(r.Context(), update); err != nil {
		h.fail(w, r, ProfilePath, err)
		return
	}

	h.done(w, r, ProfilePath, "Profile saved.")
}

// deleteProfile deletes the user's data, and their sign in too when asked,
// then signs the browser session out.
func (h *Handler) deleteProfile(w http.ResponseWriter, r *http.Request) {
	form := new(deleteProfileForm)
	if err := h.parser.ParseForm(r, form); err != nil {
		h.retry(w, r, ProfilePath, "Please confirm you want to delete your account.", err)
		return
	}

	if err := h.client(r).DeleteProfile(r.Context(), form.DeleteAuth); err != nil {
		h.fail(w, r, ProfilePath, err)
		return
	}

	h.signOut(w, r)
	h.done(w, r, HomePath, "Your account has been deleted.")
}
