package handlers

import "net/http"

// SocialLinks are the photographer's external profiles
type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	Website   string `json:"website,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Email     string `json:"email,omitempty"`
}

// ProfileResponse describes the photographer shown above the gallery
type ProfileResponse struct {
	Name         string      `json:"name"`
	Bio          string      `json:"bio"`
	ProfileImage string      `json:"profileImage"`
	SocialLinks  SocialLinks `json:"socialLinks"`
}

func (h *Handler) profileHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, ProfileResponse{
		Name:         h.profile.Name,
		Bio:          h.profile.Bio,
		ProfileImage: h.profile.Image,
		SocialLinks: SocialLinks{
			Instagram: h.profile.Instagram,
			Website:   h.profile.Website,
			Twitter:   h.profile.Twitter,
			Email:     h.profile.Email,
		},
	})
}
