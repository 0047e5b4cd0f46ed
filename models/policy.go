package models

// PolicyProvision is one budget measure exposed to the dashboard. A provision
// maps to one or more impact columns in the datasets; the per-household effect
// of the provision is the sum of its column values.
type PolicyProvision struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Explanation string   `json:"explanation"`
	Columns     []string `json:"-"`
}

// Provisions is the full ordered catalog for the Autumn Budget 2025 package.
// Fixed at process start, never mutated.
var Provisions = []PolicyProvision{
	{
		ID:          "two_child_limit",
		Name:        "2 child limit repeal",
		Description: "Removes the two-child limit on Universal Credit and Tax Credits from April 2026.",
		Explanation: `The two-child limit restricts child-related payments in Universal Credit and Tax Credits to the first two children in a family. The Autumn Budget removes the limit from April 2026. See the <a href="https://policyengine.org/uk/research">PolicyEngine analysis</a> for methodology.`,
		Columns:     []string{"two_child_limit_impact"},
	},
	{
		ID:          "fuel_duty_freeze",
		Name:        "Fuel duty freeze extension",
		Description: "Extends the 5p fuel duty cut until September 2026, with a staggered reversal afterwards.",
		Explanation: `Without the budget, the 5p cut would have ended in March 2026 with RPI uprating from April 2027. The budget keeps the cut until September 2026 and phases the reversal. See the <a href="https://policyengine.org/uk/research/fuel-duty-freeze-2025">fuel duty analysis</a>.`,
		Columns:     []string{"fuel_duty_freeze_impact"},
	},
	{
		ID:          "rail_fares_freeze",
		Name:        "Rail fares freeze",
		Description: "Freezes regulated rail fares for one year from March 2026.",
		Explanation: `Regulated fares would otherwise have risen with RPI. Household gains scale with reported rail spending.`,
		Columns:     []string{"rail_fares_freeze_impact"},
	},
	{
		ID:          "threshold_freeze_extension",
		Name:        "Threshold freeze extension",
		Description: "Extends the freeze on the personal allowance and basic rate threshold beyond April 2028.",
		Explanation: `Income tax thresholds were due to resume CPI uprating from April 2028. The budget keeps the personal allowance at £12,570 and the basic rate threshold at £37,700, raising revenue through fiscal drag.`,
		Columns:     []string{"threshold_freeze_impact"},
	},
	{
		ID:          "unearned_income_tax",
		Name:        "Unearned income tax increase (+2pp)",
		Description: "Raises tax rates on dividend, savings and property income by two percentage points.",
		Explanation: `A single user-facing provision combining three modeled components: dividend, savings interest and property income each see basic, higher and additional rates rise by 2pp from April 2027.`,
		Columns: []string{
			"dividend_tax_impact",
			"savings_tax_impact",
			"property_tax_impact",
		},
	},
	{
		ID:          "freeze_student_loan_thresholds",
		Name:        "Freeze student loan repayment thresholds",
		Description: "Freezes Plan 1, 2 and 4 repayment thresholds for three years from April 2027.",
		Explanation: `Thresholds would otherwise rise with RPI. Freezing them increases repayments for graduates above the threshold.`,
		Columns:     []string{"student_loan_threshold_impact"},
	},
	{
		ID:          "salary_sacrifice_cap",
		Name:        "Salary sacrifice cap",
		Description: "Caps NI-free salary sacrifice pension contributions at £2,000 from April 2029.",
		Explanation: `Contributions above the cap become subject to employee and employer National Insurance. Affects households with large salary-sacrificed pension contributions from 2029 onwards.`,
		Columns:     []string{"salary_sacrifice_cap_impact"},
	},
	{
		ID:          "state_pension_triple_lock",
		Name:        "State pension triple lock",
		Description: "Uprates the state pension by 4.8% in April 2026 under the triple lock.",
		Explanation: `The earnings-growth leg of the triple lock sets the April 2026 uprating at 4.8%, ahead of CPI. Gains accrue to pensioner households.`,
		Columns:     []string{"state_pension_impact"},
	},
	{
		ID:          "national_living_wage_increase",
		Name:        "National Living Wage increase",
		Description: "Raises the National Living Wage to £12.71 from April 2026.",
		Explanation: `A 4.1% increase for workers aged 21 and over, with larger rises for younger workers. Modeled as a direct earnings effect for minimum wage employees.`,
		Columns:     []string{"minimum_wage_impact"},
	},
}

// provisionAliases maps legacy ids that older links may still carry to the
// catalog id that now covers them. The unearned income components shipped as
// separate reforms before they were combined into one provision.
var provisionAliases = map[string]string{
	"dividend_tax_increase_2pp": "unearned_income_tax",
	"savings_tax_increase_2pp":  "unearned_income_tax",
	"property_tax_increase_2pp": "unearned_income_tax",
}

var provisionIndex = buildProvisionIndex()

func buildProvisionIndex() map[string]*PolicyProvision {
	index := make(map[string]*PolicyProvision, len(Provisions))
	for i := range Provisions {
		index[Provisions[i].ID] = &Provisions[i]
	}
	return index
}

// GetProvision returns the provision for an id, resolving legacy aliases.
// The second return is false for unknown ids.
func GetProvision(id string) (*PolicyProvision, bool) {
	if canonical, ok := provisionAliases[id]; ok {
		id = canonical
	}
	p, ok := provisionIndex[id]
	return p, ok
}

// ProvisionIDs returns all catalog ids in display order.
func ProvisionIDs() []string {
	ids := make([]string, len(Provisions))
	for i, p := range Provisions {
		ids[i] = p.ID
	}
	return ids
}

// FilterProvisionIDs keeps only ids known to the catalog, resolving aliases,
// de-duplicating, and returning them in catalog order. Unknown ids are
// dropped silently.
func FilterProvisionIDs(ids []string) []string {
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		if p, ok := GetProvision(id); ok {
			selected[p.ID] = true
		}
	}
	filtered := make([]string, 0, len(selected))
	for _, p := range Provisions {
		if selected[p.ID] {
			filtered = append(filtered, p.ID)
		}
	}
	return filtered
}

// ImpactColumns returns the dataset columns contributing to the given
// provision ids, in catalog order.
func ImpactColumns(ids []string) []string {
	var columns []string
	for _, id := range FilterProvisionIDs(ids) {
		p := provisionIndex[id]
		columns = append(columns, p.Columns...)
	}
	return columns
}
