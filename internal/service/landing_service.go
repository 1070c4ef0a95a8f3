package service

import (
	"strings"

	"askai/client/internal/navigation"
)

var suggestions = []string{"Attach", "Search", "Study", "Create image"}

// LandingService handles the pre-login query box.
type LandingService struct{}

func NewLandingService() *LandingService {
	return &LandingService{}
}

// Submit forwards a non-empty query to the dashboard, which picks it up as
// its external query. It reports whether navigation happened.
func (s *LandingService) Submit(nav navigation.Navigator, text string) bool {
	query := strings.TrimSpace(text)
	if query == "" {
		return false
	}
	nav.Navigate(navigation.Dashboard(query))
	return true
}

// Suggestions returns the quick-start labels offered under the query box.
func (s *LandingService) Suggestions() []string {
	out := make([]string, len(suggestions))
	copy(out, suggestions)
	return out
}
