package aggregate

import (
	"sort"

	"github.com/PolicyEngine/Autumn-budget-local-area/dataset"
	"github.com/PolicyEngine/Autumn-budget-local-area/models"
)

// NetImpact is the composition law of the dashboard: the aggregate impact of
// a row is the sum, over the selected provisions, of that provision's signed
// column values. Deselecting a provision removes exactly its contribution;
// the empty selection is exactly zero. Missing or malformed cells count as 0
// for that row only.
func NetImpact(row dataset.Row, policyIDs []string) float64 {
	total := 0.0
	for _, column := range models.ImpactColumns(policyIDs) {
		total += dataset.Float(row, column)
	}
	return total
}

// ProvisionContribution is one provision's share of the aggregate impact.
type ProvisionContribution struct {
	PolicyID string  `json:"policy_id"`
	Name     string  `json:"name"`
	Impact   float64 `json:"impact"`
}

// Summary is the headline figure for the selected constituency and year:
// the mean net household impact plus the per-provision breakdown.
type Summary struct {
	NetImpact     float64                 `json:"net_impact"`
	Contributions []ProvisionContribution `json:"contributions"`
	Rows          int                     `json:"rows"`
}

// Summarize computes the mean net impact over the filtered constituency rows
// (all constituencies when no code is given, i.e. the national figure) along
// with each selected provision's contribution.
func Summarize(rows []dataset.Row, state models.SelectionState) Summary {
	code := ""
	if state.Constituency != nil {
		code = state.Constituency.Code
	}
	matched := dataset.FilterRows(rows, code, state.Year)

	summary := Summary{Rows: len(matched)}
	for _, id := range models.FilterProvisionIDs(state.PolicyIDs) {
		p, _ := models.GetProvision(id)
		contribution := 0.0
		for _, row := range matched {
			for _, column := range p.Columns {
				contribution += dataset.Float(row, column)
			}
		}
		if len(matched) > 0 {
			contribution /= float64(len(matched))
		}
		summary.Contributions = append(summary.Contributions, ProvisionContribution{
			PolicyID: id,
			Name:     p.Name,
			Impact:   contribution,
		})
		summary.NetImpact += contribution
	}
	return summary
}

// Bucket is one bar of a bucketed breakdown.
type Bucket struct {
	Label      string  `json:"label"`
	Impact     float64 `json:"impact"`
	Households float64 `json:"households"`
}

// ByFamilyType buckets household records by family type and returns the
// weighted mean net impact per bucket, labels sorted for stable output.
func ByFamilyType(households []dataset.Row, state models.SelectionState) []Bucket {
	code := ""
	if state.Constituency != nil {
		code = state.Constituency.Code
	}
	matched := dataset.FilterRows(households, code, state.Year)

	sums := map[string]float64{}
	weights := map[string]float64{}
	for _, row := range matched {
		label := row[dataset.ColFamilyType]
		if label == "" {
			continue
		}
		w := dataset.Float(row, dataset.ColWeight)
		if w == 0 {
			w = 1
		}
		sums[label] += w * NetImpact(row, state.PolicyIDs)
		weights[label] += w
	}

	labels := make([]string, 0, len(sums))
	for label := range sums {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	buckets := make([]Bucket, 0, len(labels))
	for _, label := range labels {
		buckets = append(buckets, Bucket{
			Label:      label,
			Impact:     sums[label] / weights[label],
			Households: weights[label],
		})
	}
	return buckets
}

// TimelinePoint is the aggregate impact for one projection year.
type TimelinePoint struct {
	Year   int     `json:"year"`
	Impact float64 `json:"impact"`
}

// Timeline holds the policy selection fixed and computes one aggregate value
// per supported year.
func Timeline(rows []dataset.Row, state models.SelectionState) []TimelinePoint {
	code := ""
	if state.Constituency != nil {
		code = state.Constituency.Code
	}

	points := make([]TimelinePoint, 0, models.MaxYear-models.MinYear+1)
	for year := models.MinYear; year <= models.MaxYear; year++ {
		matched := dataset.FilterRows(rows, code, year)
		total := 0.0
		for _, row := range matched {
			total += NetImpact(row, state.PolicyIDs)
		}
		if len(matched) > 0 {
			total /= float64(len(matched))
		}
		points = append(points, TimelinePoint{Year: year, Impact: total})
	}
	return points
}

// DecileImpact is one income band of the distributional breakdown: the
// weighted mean impact in pounds and the impact as a share of band income.
type DecileImpact struct {
	Decile   int     `json:"decile"`
	Absolute float64 `json:"absolute"`
	Relative float64 `json:"relative"`
}

// IncomeDistribution buckets household records by income decile (1–10) and
// returns absolute and relative impacts per band. Deciles with no records
// report zero.
func IncomeDistribution(households []dataset.Row, state models.SelectionState) []DecileImpact {
	code := ""
	if state.Constituency != nil {
		code = state.Constituency.Code
	}
	matched := dataset.FilterRows(households, code, state.Year)

	type band struct {
		impact float64
		income float64
		weight float64
	}
	bands := make([]band, 11)
	for _, row := range matched {
		decile := int(dataset.Float(row, dataset.ColIncomeDecile))
		if decile < 1 || decile > 10 {
			continue
		}
		w := dataset.Float(row, dataset.ColWeight)
		if w == 0 {
			w = 1
		}
		bands[decile].impact += w * NetImpact(row, state.PolicyIDs)
		bands[decile].income += w * dataset.Float(row, dataset.ColGrossIncome)
		bands[decile].weight += w
	}

	result := make([]DecileImpact, 0, 10)
	for decile := 1; decile <= 10; decile++ {
		b := bands[decile]
		d := DecileImpact{Decile: decile}
		if b.weight > 0 {
			d.Absolute = b.impact / b.weight
		}
		if b.income > 0 {
			d.Relative = 100 * b.impact / b.income
		}
		result = append(result, d)
	}
	return result
}

// ScatterPoint is one household record plotted as income vs net impact.
type ScatterPoint struct {
	HouseholdID string  `json:"household_id"`
	Income      float64 `json:"income"`
	Impact      float64 `json:"impact"`
}

// Scatter returns one point per underlying household record for the selected
// constituency and year.
func Scatter(households []dataset.Row, state models.SelectionState) []ScatterPoint {
	code := ""
	if state.Constituency != nil {
		code = state.Constituency.Code
	}
	matched := dataset.FilterRows(households, code, state.Year)

	points := make([]ScatterPoint, 0, len(matched))
	for _, row := range matched {
		points = append(points, ScatterPoint{
			HouseholdID: row[dataset.ColHouseholdID],
			Income:      dataset.Float(row, dataset.ColGrossIncome),
			Impact:      NetImpact(row, state.PolicyIDs),
		})
	}
	return points
}

// MapValue is the choropleth value for one constituency.
type MapValue struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Impact float64 `json:"impact"`
}

// MapSeries computes the mean net impact per constituency for the selected
// year, for map coloring. The constituency selection is ignored: the map
// always shows every area.
func MapSeries(rows []dataset.Row, state models.SelectionState) []MapValue {
	matched := dataset.FilterRows(rows, "", state.Year)

	sums := map[string]float64{}
	counts := map[string]int{}
	names := map[string]string{}
	for _, row := range matched {
		code := row[dataset.ColConstituencyCode]
		if code == "" {
			continue
		}
		sums[code] += NetImpact(row, state.PolicyIDs)
		counts[code]++
		names[code] = row[dataset.ColConstituencyName]
	}

	codes := make([]string, 0, len(sums))
	for code := range sums {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	values := make([]MapValue, 0, len(codes))
	for _, code := range codes {
		values = append(values, MapValue{
			Code:   code,
			Name:   names[code],
			Impact: sums[code] / float64(counts[code]),
		})
	}
	return values
}
