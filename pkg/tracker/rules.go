package tracker

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/railtrack/railtrack/pkg/ctdf"
)

// RuleDefinition is a user alert rule, a boolean expression over the fields
// of an enriched trip view, for example
// `DelayMinutes > 30 && NextStation == "BPL"`.
type RuleDefinition struct {
	Name       string `yaml:"name"`
	Expression string `yaml:"expression"`
}

type AlertRule struct {
	Name       string
	Expression string

	program *vm.Program
}

func CompileRule(definition RuleDefinition) (*AlertRule, error) {
	if definition.Name == "" {
		return nil, fmt.Errorf("alert rule %q has no name", definition.Expression)
	}

	program, err := expr.Compile(definition.Expression, expr.Env(ruleEnvironment(ctdf.EnrichedTripView{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile alert rule %s: %w", definition.Name, err)
	}

	return &AlertRule{
		Name:       definition.Name,
		Expression: definition.Expression,
		program:    program,
	}, nil
}

func (r *AlertRule) Matches(view ctdf.EnrichedTripView) (bool, error) {
	output, err := expr.Run(r.program, ruleEnvironment(view))
	if err != nil {
		return false, err
	}

	matched, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("alert rule %s returned %T", r.Name, output)
	}

	return matched, nil
}

func ruleEnvironment(view ctdf.EnrichedTripView) map[string]interface{} {
	return map[string]interface{}{
		"TripID":             view.ID,
		"TrainNumber":        view.TrainNumber,
		"TrainName":          view.TrainName,
		"SourceStation":      view.SourceStation,
		"DestinationStation": view.DestinationStation,
		"JourneyDate":        view.JourneyDate,
		"Status":             string(view.Status),
		"IsLive":             view.IsLive,
		"DelayMinutes":       view.DelayMinutes,
		"ProgressPercent":    view.ProgressPercent,
		"CurrentStation":     view.CurrentStation,
		"NextStation":        view.NextStation,
		"RunningState":       string(view.RunningState),
	}
}
