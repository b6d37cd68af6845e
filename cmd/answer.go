package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-answer/internal/answer"
	"github.com/robalobadob/wordle-answer/internal/game"
	"github.com/robalobadob/wordle-answer/internal/store"
	"github.com/robalobadob/wordle-answer/internal/words"
)

var (
	flagJSON  bool
	flagGuess string
)

var answerCmd = &cobra.Command{
	Use:   "answer [YYYY-MM-DD]",
	Short: "Print the answer for today or the given date",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnswer,
}

func init() {
	answerCmd.Flags().BoolVar(&flagJSON, "json", false, "print the full record as JSON")
	answerCmd.Flags().StringVar(&flagGuess, "guess", "", "score a guess against the answer instead of printing it")
}

func runAnswer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, err := store.Open(ctx, cfg.Store, cfg.DBPath, cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer st.Close()

	comps, err := answer.Build(cfg, st)
	if err != nil {
		return err
	}

	var (
		rec words.Record
		ok  bool
	)
	if len(args) == 0 {
		rec, ok = comps.Service.Today(ctx)
	} else {
		rec, ok, err = comps.Service.ForKey(ctx, args[0])
		if err != nil {
			return err
		}
	}
	if !ok {
		return fmt.Errorf("could not find the Wordle answer")
	}

	out := cmd.OutOrStdout()
	if flagGuess != "" {
		return printGuess(out, rec.Answer, flagGuess)
	}
	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	fmt.Fprintln(out, strings.ToLower(rec.Answer))
	return nil
}

// printGuess prints the tile row for guess without revealing the answer.
func printGuess(w io.Writer, answer, guess string) error {
	marks, err := game.Score(answer, guess)
	if err != nil {
		return fmt.Errorf("%w: %q", err, guess)
	}
	fmt.Fprintln(w, game.Tiles(marks))
	if game.Solved(marks) {
		fmt.Fprintln(w, "solved")
	}
	return nil
}
