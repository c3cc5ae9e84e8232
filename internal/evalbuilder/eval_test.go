package evalbuilder

import (
	"testing"

	"github.com/ChizhovVadim/chesssearch/pkg/common"
)

func TestGet(t *testing.T) {
	var p, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range append(Names, "") {
		var builder, err = Get(name)
		if err != nil {
			t.Fatal(err)
		}
		if v := builder().Evaluate(p); v < -50 || v > 50 {
			t.Errorf("%q: start position %v", name, v)
		}
	}
	if _, err := Get("nnue"); err == nil {
		t.Error("unknown evaluator accepted")
	}
}
