package evalbuilder

import (
	"fmt"

	"github.com/ChizhovVadim/chesssearch/pkg/engine"
	material "github.com/ChizhovVadim/chesssearch/pkg/eval/material"
	pst "github.com/ChizhovVadim/chesssearch/pkg/eval/pst"
)

var Names = []string{"pst", "material"}

// Get returns a builder of fresh evaluators, one per search thread.
func Get(key string) (func() engine.Evaluator, error) {
	switch key {
	case "", "pst":
		return func() engine.Evaluator { return pst.NewEvaluationService() }, nil
	case "material":
		return func() engine.Evaluator { return material.NewEvaluationService() }, nil
	}
	return nil, fmt.Errorf("bad eval %v", key)
}
