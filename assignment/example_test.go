// SPDX-License-Identifier: MIT
package assignment_test

import (
	"fmt"

	"github.com/katalvlaran/kxmatch/assignment"
	"github.com/katalvlaran/kxmatch/matrix"
)

// ExampleMaximizeScore assigns three donors to three patients so that the
// total compatibility is maximal. Every donor ends up with its best patient.
func ExampleMaximizeScore() {
	m, _ := matrix.NewCompatibility([][]int64{
		{6, 7, 8},
		{8, 6, 7},
		{7, 8, 6},
	}, []string{"D1", "D2", "D3"}, []string{"P1", "P2", "P3"})

	res, err := assignment.MaximizeScore(m, assignment.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	var total int64
	for i, j := range res.ColInd {
		fmt.Printf("%s -> %s (%d)\n", m.LeftLabel(i), m.RightLabel(j), m.Score(i, j))
		total += m.Score(i, j)
	}
	fmt.Println("total:", total)
	// Output:
	// D1 -> P3 (8)
	// D2 -> P1 (8)
	// D3 -> P2 (8)
	// total: 24
}
