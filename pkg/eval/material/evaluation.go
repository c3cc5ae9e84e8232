package eval

import (
	. "github.com/ChizhovVadim/chesssearch/pkg/common"
)

// EvaluationService scores material only, using the incremental balance of the position.
type EvaluationService struct{}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{}
}

func (e *EvaluationService) Evaluate(p *Position) int {
	var eval = p.Material
	if p.Side == SideBlack {
		eval = -eval
	}
	return eval
}
