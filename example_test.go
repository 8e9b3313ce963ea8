package notation_test

import (
	"errors"
	"fmt"

	"github.com/zephyrtronium/notation"
)

func ExampleBind() {
	var next notation.ID
	create := func(name string) (notation.ID, error) {
		next++
		fmt.Println("create", name, next)
		return next, nil
	}
	ex, err := notation.Bind("f(x) = ax_{mode}", nil, create)
	if err != nil {
		panic(err)
	}
	fmt.Println(ex.Kind(), ex.LHS, ex.RHS, ex.Dependencies)

	// Output:
	// create a 1
	// create x_{mode} 2
	// Function f(x) a*x_{mode} [a x_{mode}]
}

func ExamplePlan() {
	_, err := notation.Plan("rate = 3", nil)
	fmt.Println(err)
	var ml *notation.MultiLetterNameError
	if errors.As(err, &ml) {
		ex, _ := notation.Plan(ml.Suggestion+" = 3", nil)
		fmt.Println(ex.Name(), ex.Kind())
	}

	// Output:
	// 1: name "rate" has more than one letter; use a single letter with a subscript, like "r_{rate}"
	// r_{rate} Parameter
}

func ExampleNormalize() {
	fmt.Println(notation.Normalize(`y = 2\pi r + \alpha_1 x_m`))
	fmt.Println(notation.Normalize(`\left(a\cdot b\right)`))

	// Output:
	// y = 2π r + α_{1} x_{m}
	// (a* b)
}

func ExampleInsertImplicitMultiplication() {
	fmt.Println(notation.InsertImplicitMultiplication("2πx + xsin(x)"))
	fmt.Println(notation.InsertImplicitMultiplication("k_{1}k_{2}(t)"))

	// Output:
	// 2*π*x + x*sin(x)
	// k_{1}*k_{2}(t)
}

func ExampleCheckName() {
	live := notation.Live{"k": notation.KindParameter}
	fmt.Println(notation.CheckName("k", live).Suggestions)
	fmt.Println(notation.CheckName("m", live).OK())

	// Output:
	// [k_{1} k_{new} k_{2} k_{3}]
	// true
}
