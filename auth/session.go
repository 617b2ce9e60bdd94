package auth

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	subjectKey     = "user_id"
	nameKey        = "name"
	pictureKey     = "picture"
	accessTokenKey = "access_token"
	stateKey       = "oauth_state"
)

// Profile is the identity snapshot stored in the cookie session after login
type Profile struct {
	Subject string
	Name    string
	Picture string
}

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LogInUser(profile Profile, accessToken string) {
	s.Set(subjectKey, profile.Subject)
	s.Set(nameKey, profile.Name)
	s.Set(pictureKey, profile.Picture)
	s.Set(accessTokenKey, accessToken)
	_ = s.Save()
}

func (s *Session) LogOutUser() {
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = s.Save()
}

// Profile returns the logged-in identity, ok=false for anonymous visitors
func (s *Session) Profile() (profile Profile, ok bool) {
	subject := s.Get(subjectKey)
	if subject == nil {
		return Profile{}, false
	}
	profile.Subject, _ = subject.(string)
	profile.Name, _ = s.Get(nameKey).(string)
	profile.Picture, _ = s.Get(pictureKey).(string)
	return profile, profile.Subject != ""
}

func (s *Session) AccessToken() string {
	token, _ := s.Get(accessTokenKey).(string)
	return token
}

func (s *Session) SetOAuthState(state string) {
	s.Set(stateKey, state)
	_ = s.Save()
}

func (s *Session) PopOAuthState() string {
	state, _ := s.Get(stateKey).(string)
	s.Delete(stateKey)
	_ = s.Save()
	return state
}

// Flash queues a one-shot message shown on the next rendered page
func (s *Session) Flash(message string) {
	s.AddFlash(message)
	_ = s.Save()
}

// PopFlashes drains the queued messages
func (s *Session) PopFlashes() []string {
	flashes := s.Flashes()
	if len(flashes) > 0 {
		_ = s.Save()
	}
	messages := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if m, ok := f.(string); ok {
			messages = append(messages, m)
		}
	}
	return messages
}
