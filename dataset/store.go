package dataset

import (
	"sort"
	"strconv"

	"github.com/PolicyEngine/Autumn-budget-local-area/models"
)

// Column names shared by both dataset files.
const (
	ColConstituencyCode = "constituency_code"
	ColConstituencyName = "constituency_name"
	ColYear             = "year"
	ColFamilyType       = "family_type"
	ColGrossIncome      = "gross_income"
	ColIncomeDecile     = "income_decile"
	ColHouseholdID      = "household_id"
	ColWeight           = "weight"
)

// Store holds the parsed datasets for the session. Rows are loaded once at
// startup and read-only afterwards, so handlers share it without locking.
type Store struct {
	ConstituencyRows []Row
	HouseholdRows    []Row

	constituencies []models.ConstituencyRef
	byCode         map[string]models.ConstituencyRef
}

func NewStore(constituencyRows, householdRows []Row) *Store {
	s := &Store{
		ConstituencyRows: constituencyRows,
		HouseholdRows:    householdRows,
	}
	s.indexConstituencies()
	return s
}

// indexConstituencies de-duplicates the constituency rows into display refs,
// ordered lexicographically by name.
func (s *Store) indexConstituencies() {
	s.byCode = make(map[string]models.ConstituencyRef)
	for _, row := range s.ConstituencyRows {
		code := row[ColConstituencyCode]
		if code == "" {
			continue
		}
		if _, seen := s.byCode[code]; seen {
			continue
		}
		ref := models.ConstituencyRef{Code: code, Name: row[ColConstituencyName]}
		s.byCode[code] = ref
		s.constituencies = append(s.constituencies, ref)
	}
	sort.Slice(s.constituencies, func(i, j int) bool {
		return s.constituencies[i].Name < s.constituencies[j].Name
	})
}

// Constituencies returns the deduplicated refs in display order.
func (s *Store) Constituencies() []models.ConstituencyRef {
	return s.constituencies
}

// Lookup resolves a constituency code to its full reference.
func (s *Store) Lookup(code string) (models.ConstituencyRef, bool) {
	ref, ok := s.byCode[code]
	return ref, ok
}

// Empty reports whether no constituency data is loaded. Handlers render
// empty series in that case rather than failing.
func (s *Store) Empty() bool {
	return len(s.ConstituencyRows) == 0
}

// FilterRows returns the rows matching the given constituency code and year.
// An empty code matches every constituency; year 0 matches every year.
func FilterRows(rows []Row, code string, year int) []Row {
	var matched []Row
	for _, row := range rows {
		if code != "" && row[ColConstituencyCode] != code {
			continue
		}
		if year != 0 && RowYear(row) != year {
			continue
		}
		matched = append(matched, row)
	}
	return matched
}

// RowYear parses the row's year column, 0 when absent or malformed.
func RowYear(row Row) int {
	y, err := strconv.Atoi(row[ColYear])
	if err != nil {
		return 0
	}
	return y
}

// Float parses a cell as a number. Missing or malformed cells count as 0 so
// one bad row only affects its own derived values.
func Float(row Row, column string) float64 {
	v, err := strconv.ParseFloat(row[column], 64)
	if err != nil {
		return 0
	}
	return v
}
