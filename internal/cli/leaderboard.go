package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	boardSize  int
	boardLimit int
)

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"scores"},
	Short:   "Show the best scores",
	Long:    `Show the top scores for a cube size, ranked by fewest moves and then fastest time.`,
	Args:    cobra.NoArgs,
	RunE:    runLeaderboard,
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)
	leaderboardCmd.Flags().IntVarP(&boardSize, "size", "n", 3, "Cube size 2-7")
	leaderboardCmd.Flags().IntVar(&boardLimit, "limit", 10, "Number of scores to show")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := newScoreRepository(db)
	scores, err := repo.Top(boardSize, boardLimit)
	if err != nil {
		return err
	}
	total, err := repo.Count(boardSize)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Leaderboard %d×%d×%d (%d scores)\n", boardSize, boardSize, boardSize, total)
	fmt.Fprintln(out, "==========================")
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores yet. Set the first record!")
		return nil
	}

	fmt.Fprintf(out, "%-4s %-20s %6s %10s  %s\n", "#", "Nickname", "Moves", "Time", "Date")
	for i, s := range scores {
		fmt.Fprintf(out, "%-4d %-20s %6d %10s  %s\n",
			i+1, s.Nickname, s.Moves, formatDuration(s.Time), s.CreatedAt.Local().Format("2006-01-02"))
	}
	return nil
}
