package mis_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/mwis/pkg/graph"
	"github.com/matzehuels/mwis/pkg/mis"
)

func ExampleSolve() {
	g, _ := graph.WithEdges(
		[]float64{3, 3, 3, 3},
		[]graph.Edge{{From: 0, To: 1}, {From: 2, To: 3}},
	)
	res, err := mis.Solve(context.Background(), g, mis.Options{})
	if err != nil {
		panic(err)
	}
	fmt.Println("weight:", res.Weight)
	fmt.Println("vertices:", res.Vertices)
	// Output:
	// weight: 6
	// vertices: [1 3]
}

func ExampleSolve_cycle() {
	g, _ := graph.WithEdges(
		[]float64{1, 5, 1, 5},
		[]graph.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 0}},
	)

	res, _ := mis.Solve(context.Background(), g, mis.Options{Strategy: mis.StrategyBranch})
	fmt.Println(res.Weight, res.Vertices)

	_, err := mis.Solve(context.Background(), g, mis.Options{Strategy: mis.StrategyNone})
	fmt.Println(err)
	// Output:
	// 10 [1 3]
	// component 0: UNSUPPORTED: unsupported: cyclic component
}
