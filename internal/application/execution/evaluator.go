package execution

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/apitest/backend/internal/domain/testcase"
)

// Verdict is the evaluator's judgement of one outcome against one rule
type Verdict struct {
	Passed   bool
	Mismatch string // human-readable description, set when Passed is false
}

func pass() Verdict {
	return Verdict{Passed: true}
}

func fail(format string, args ...any) Verdict {
	return Verdict{Mismatch: fmt.Sprintf(format, args...)}
}

// Evaluate interprets a declarative assertion rule against an HTTP
// outcome. The rule is a sparse predicate: only the checks present are
// evaluated, in order, and the first mismatch decides the verdict.
// Unknown check kinds fail with a description rather than faulting.
func Evaluate(rule testcase.Rule, outcome *Outcome) Verdict {
	for _, check := range rule.Checks {
		var v Verdict
		switch check.Kind {
		case testcase.CheckStatusEquals:
			v = evaluateStatusEquals(check, outcome)
		case testcase.CheckStatusIn:
			v = evaluateStatusIn(check, outcome)
		case testcase.CheckBodyFieldEquals:
			v = evaluateBodyField(check, outcome)
		default:
			v = fail("unknown assertion kind %q", check.Kind)
		}
		if !v.Passed {
			return v
		}
	}
	return pass()
}

func evaluateStatusEquals(check testcase.Check, outcome *Outcome) Verdict {
	if outcome.StatusCode != check.Status {
		return fail("expected status %d, got %d", check.Status, outcome.StatusCode)
	}
	return pass()
}

func evaluateStatusIn(check testcase.Check, outcome *Outcome) Verdict {
	for _, status := range check.Statuses {
		if outcome.StatusCode == status {
			return pass()
		}
	}
	return fail("expected status in %v, got %d", check.Statuses, outcome.StatusCode)
}

func evaluateBodyField(check testcase.Check, outcome *Outcome) Verdict {
	var body map[string]any
	if err := json.Unmarshal([]byte(outcome.Body), &body); err != nil {
		return fail("response body is not a JSON object: %v", err)
	}

	value, ok := lookupPath(body, check.Path)
	if !ok {
		return fail("response body has no field %q", check.Path)
	}

	actual := valueToString(value)
	if actual != check.Value {
		return fail("field %q: expected %q, got %q", check.Path, check.Value, actual)
	}
	return pass()
}

// lookupPath walks a dotted path into nested JSON objects
func lookupPath(body map[string]any, path string) (any, bool) {
	segments := strings.Split(path, ".")
	var current any = body
	for _, seg := range segments {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// valueToString renders a JSON value the way stored example values are
// rendered, so string comparison is stable across types.
func valueToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(raw)
	}
}
