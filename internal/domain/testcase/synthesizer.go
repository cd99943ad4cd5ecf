package testcase

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/apitest/backend/internal/domain/spec"
)

// Candidate is one synthesized test case before persistence. Candidates
// carry everything needed to build a TestCase except the creator.
type Candidate struct {
	Name           string
	RequestParams  map[string]string
	RequestHeaders map[string]string
	ExpectedResult string
	Rule           Rule
}

// Synthesize derives the deterministic candidate list for one interface
// from its normalized parameter set. It never touches storage.
//
// The fixed partition order is: the single normal case, one
// missing-required case per required request parameter, then three
// boundary cases (minimum, maximum, out of range) per numeric request
// parameter that carries a min/max constraint. Each case varies at most
// one parameter away from the normal baseline; no combinatorial
// generation is attempted.
//
// Case names embed the interface name, the category and (when
// applicable) the parameter name, so re-synthesizing an unchanged
// parameter set reproduces the exact same ordered name list. That is
// what makes dedup-by-name safe.
func Synthesize(ifaceName string, params []spec.Parameter) []Candidate {
	ordered := orderParams(params)

	baseParams := make(map[string]string)
	baseHeaders := make(map[string]string)
	var responseParams []spec.Parameter
	for _, p := range ordered {
		switch p.Location {
		case spec.LocationPath, spec.LocationQuery, spec.LocationBody:
			if p.ExampleValue != "" {
				baseParams[p.Name] = p.ExampleValue
			}
		case spec.LocationHeader:
			if p.ExampleValue != "" {
				baseHeaders[p.Name] = p.ExampleValue
			}
		case spec.LocationResponse:
			responseParams = append(responseParams, p)
		}
	}

	candidates := []Candidate{normalCase(ifaceName, baseParams, baseHeaders, responseParams)}

	for _, p := range ordered {
		if p.Location == spec.LocationResponse || !p.Required {
			continue
		}
		candidates = append(candidates, missingRequiredCase(ifaceName, p, baseParams, baseHeaders))
	}

	for _, p := range ordered {
		if p.Location == spec.LocationResponse {
			continue
		}
		r := p.Range()
		if r == nil {
			continue
		}
		candidates = append(candidates,
			boundaryCase(ifaceName, p, p.Name+" minimum", r.Min.String(), baseParams, baseHeaders,
				NewRule(StatusIn(http.StatusOK, http.StatusBadRequest))),
			boundaryCase(ifaceName, p, p.Name+" maximum", r.Max.String(), baseParams, baseHeaders,
				NewRule(StatusIn(http.StatusOK, http.StatusBadRequest))),
			boundaryCase(ifaceName, p, p.Name+" out of range", r.OutOfRangeValue().String(), baseParams, baseHeaders,
				NewRule(StatusEquals(http.StatusBadRequest))),
		)
	}

	return candidates
}

// orderParams fixes the parameter traversal order (request locations in
// canonical order, then name) so synthesis is independent of storage
// ordering.
func orderParams(params []spec.Parameter) []spec.Parameter {
	ordered := make([]spec.Parameter, len(params))
	copy(ordered, params)
	rank := map[spec.ParamLocation]int{
		spec.LocationPath:     0,
		spec.LocationQuery:    1,
		spec.LocationBody:     2,
		spec.LocationHeader:   3,
		spec.LocationResponse: 4,
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if rank[ordered[i].Location] != rank[ordered[j].Location] {
			return rank[ordered[i].Location] < rank[ordered[j].Location]
		}
		return ordered[i].Name < ordered[j].Name
	})
	return ordered
}

func normalCase(ifaceName string, baseParams, baseHeaders map[string]string, responseParams []spec.Parameter) Candidate {
	checks := []Check{StatusEquals(http.StatusOK)}
	expected := make(map[string]string)
	for _, p := range responseParams {
		if p.ExampleValue == "" {
			continue
		}
		expected[p.Name] = p.ExampleValue
		checks = append(checks, BodyFieldEquals(p.Name, p.ExampleValue))
	}

	return Candidate{
		Name:           ifaceName + " - normal case",
		RequestParams:  copyMap(baseParams),
		RequestHeaders: copyMap(baseHeaders),
		ExpectedResult: encodeExpected(expected),
		Rule:           NewRule(checks...),
	}
}

func missingRequiredCase(ifaceName string, param spec.Parameter, baseParams, baseHeaders map[string]string) Candidate {
	params := copyMap(baseParams)
	headers := copyMap(baseHeaders)
	if param.Location == spec.LocationHeader {
		delete(headers, param.Name)
	} else {
		delete(params, param.Name)
	}

	return Candidate{
		Name:           ifaceName + " - missing required " + param.Name,
		RequestParams:  params,
		RequestHeaders: headers,
		ExpectedResult: "error response for missing " + param.Name,
		Rule:           NewRule(StatusEquals(http.StatusBadRequest)),
	}
}

func boundaryCase(ifaceName string, param spec.Parameter, label, value string, baseParams, baseHeaders map[string]string, rule Rule) Candidate {
	params := copyMap(baseParams)
	headers := copyMap(baseHeaders)
	if param.Location == spec.LocationHeader {
		headers[param.Name] = value
	} else {
		params[param.Name] = value
	}

	return Candidate{
		Name:           ifaceName + " - " + label,
		RequestParams:  params,
		RequestHeaders: headers,
		ExpectedResult: param.Name + "=" + value,
		Rule:           rule,
	}
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func encodeExpected(expected map[string]string) string {
	if len(expected) == 0 {
		return ""
	}
	raw, _ := json.Marshal(expected)
	return string(raw)
}
