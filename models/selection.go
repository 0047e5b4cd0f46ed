package models

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// Supported projection years for the budget package.
	MinYear = 2026
	MaxYear = 2030

	DefaultYear = 2029
)

// ConstituencyRef identifies one of the 650 Westminster constituencies.
type ConstituencyRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SelectionState is the full user selection: which constituency, which
// provisions are toggled on, and which projection year. It has exactly one
// canonical URL query representation, produced by Encode.
type SelectionState struct {
	Constituency *ConstituencyRef `json:"constituency,omitempty"`
	PolicyIDs    []string         `json:"policies"`
	Year         int              `json:"year"`
}

// DefaultSelection is the state implied by an empty query string: every
// provision selected, no constituency, year 2029.
func DefaultSelection() SelectionState {
	return SelectionState{
		PolicyIDs: ProvisionIDs(),
		Year:      DefaultYear,
	}
}

// DecodeSelection reads a SelectionState from URL query values. Unknown
// policy ids are dropped silently. The constituency name is not resolvable
// until the dataset is loaded, so the code doubles as a provisional name;
// ResolveConstituency replaces it once rows are available.
func DecodeSelection(values url.Values) SelectionState {
	state := DefaultSelection()

	if values.Has("policies") {
		raw := strings.Split(values.Get("policies"), ",")
		for i := range raw {
			raw[i] = strings.TrimSpace(raw[i])
		}
		state.PolicyIDs = FilterProvisionIDs(raw)
	}

	if code := strings.TrimSpace(values.Get("constituency")); code != "" {
		state.Constituency = &ConstituencyRef{Code: code, Name: code}
	}

	if y := values.Get("year"); y != "" {
		if year, err := strconv.Atoi(y); err == nil {
			if year < MinYear {
				year = MinYear
			}
			if year > MaxYear {
				year = MaxYear
			}
			state.Year = year
		}
	}

	return state
}

// Encode serializes the state to its canonical query representation. Keys
// are omitted when the corresponding state is empty or at its default, so
// the bare URL stays the default state.
func (s SelectionState) Encode() url.Values {
	values := url.Values{}
	if len(s.PolicyIDs) > 0 {
		values.Set("policies", strings.Join(FilterProvisionIDs(s.PolicyIDs), ","))
	}
	if s.Constituency != nil && s.Constituency.Code != "" {
		values.Set("constituency", s.Constituency.Code)
	}
	if s.Year != DefaultYear {
		values.Set("year", strconv.Itoa(s.Year))
	}
	return values
}

// ResolveConstituency performs the one-time placeholder correction: if the
// selected constituency still carries the code-as-name placeholder and the
// lookup knows the code, the full reference replaces it. Already-resolved
// selections are left alone.
func (s *SelectionState) ResolveConstituency(lookup func(code string) (ConstituencyRef, bool)) {
	if s.Constituency == nil || s.Constituency.Code != s.Constituency.Name {
		return
	}
	if ref, ok := lookup(s.Constituency.Code); ok {
		s.Constituency = &ref
	}
}
