package eval_test

import (
	"fmt"
	"math/big"

	"github.com/zephyrtronium/notation/eval"
)

type nargin struct{}

func (nargin) CanCall(n int) bool {
	return true
}

func (nargin) Call(ctx *eval.Context, args []*big.Float, r *big.Float) error {
	r.SetInt64(int64(len(args)))
	return nil
}

func ExampleFunc() {
	fns := eval.ParseFuncs(map[string]eval.Func{"nargin": nargin{}})
	ctx := eval.NewContext(eval.Prec(32))
	for _, src := range []string{"nargin", "nargin(100)", "nargin{3, 2, 1}"} {
		a, _ := eval.Parse(src, fns)
		fmt.Println(ctx.Eval(a), a)
	}

	// Output:
	// 0 nargin()
	// 1 nargin(100)
	// 3 nargin(3, 2, 1)
}
