package api

import (
	"github.com/vytor/ghlookup/internal/errors"
	"github.com/vytor/ghlookup/internal/models"
	"github.com/vytor/ghlookup/internal/search"
)

const (
	notAvailable   = "Not Available"
	joinDateLayout = "Mon Jan 02 2006"
)

// profileView is a Profile prepared for display.
type profileView struct {
	AvatarURL   string
	Name        string
	Login       string
	Bio         string
	PublicRepos int
	Followers   int
	Following   int
	Company     string
	Location    string
	Twitter     string
	Joined      string
}

func newProfileView(p *models.Profile) *profileView {
	if p == nil {
		return nil
	}
	return &profileView{
		AvatarURL:   p.AvatarURL,
		Name:        orNotAvailable(p.Name),
		Login:       "@" + p.Login,
		Bio:         models.StringValue(p.Bio),
		PublicRepos: p.PublicRepos,
		Followers:   p.Followers,
		Following:   p.Following,
		Company:     orNotAvailable(p.Company),
		Location:    orNotAvailable(p.Location),
		Twitter:     orNotAvailable(p.TwitterUsername),
		Joined:      p.CreatedAt.Format(joinDateLayout),
	}
}

func orNotAvailable(s *string) string {
	if v := models.StringValue(s); v != "" {
		return v
	}
	return notAvailable
}

// resultView is what the result panel renders for one pipeline state.
type resultView struct {
	Status  string
	Query   string
	Loading bool
	Profile *profileView
	Error   string
}

func newResultView(st search.State) resultView {
	rv := resultView{
		Status:  st.Status.String(),
		Query:   st.Query,
		Loading: st.Status == search.StatusLoading,
		Profile: newProfileView(st.Profile),
	}
	if st.HasError() {
		rv.Error = errors.LookupFailedMessage
	}
	return rv
}
