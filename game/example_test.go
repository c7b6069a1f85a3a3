package game_test

import (
	"fmt"

	"github.com/plus3/yetrix/game"
)

func ExampleComboScore() {
	table := []int{10, 25, 40, 60}
	for rows := 1; rows <= 5; rows++ {
		fmt.Print(game.ComboScore(table, rows), " ")
	}
	fmt.Println()
	// Output: 10 25 40 60 60
}
