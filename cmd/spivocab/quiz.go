package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/spivocab/internal/cli"
	"github.com/at-ishikawa/spivocab/internal/quiz"
)

func newQuizCommand() *cobra.Command {
	quizCommand := &cobra.Command{
		Use:   "quiz",
		Short: "4-choice quizzes on synonyms and antonyms",
	}

	quizCommand.AddCommand(newChoiceQuizCommand(quiz.ModeSynonym, "Choose the closest synonym of each word"))
	quizCommand.AddCommand(newChoiceQuizCommand(quiz.ModeAntonym, "Choose the closest antonym of each word"))
	return quizCommand
}

func newChoiceQuizCommand(mode quiz.Mode, short string) *cobra.Command {
	var start int
	command := &cobra.Command{
		Use:   string(mode),
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, catalog, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			quizCLI, err := cli.NewChoiceQuizCLI(catalog, mode, quiz.NewBuilder(), start)
			if err != nil {
				return fmt.Errorf("cli.NewChoiceQuizCLI() > %w", err)
			}
			fmt.Println("Answer with the option number, n/p to move, q to quit.")
			fmt.Println()
			return quizCLI.Run(cmd.Context(), quizCLI)
		},
	}
	command.Flags().IntVar(&start, "start", 1, "1-based position of the first word")
	return command
}
