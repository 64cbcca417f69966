// cubegame is a terminal N×N×N twisty puzzle with a local leaderboard.
package main

import (
	"github.com/trollgameskr/cube-game/internal/cli"
)

func main() {
	cli.Execute()
}
