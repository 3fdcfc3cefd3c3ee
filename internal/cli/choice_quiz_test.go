package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/spivocab/internal/quiz"
)

// firstRandom always picks the first candidate and never reorders
type firstRandom struct{}

func (firstRandom) IntN(int) int { return 0 }

func (firstRandom) Shuffle(int, func(i, j int)) {}

func TestChoiceQuizCLI_Run(t *testing.T) {
	tests := []struct {
		name        string
		mode        quiz.Mode
		input       string
		start       int
		wantOutputs []string
		wantNotOut  []string
	}{
		{
			name:  "answer every antonym question",
			mode:  quiz.ModeAntonym,
			input: "1\n2\n1\n",
			start: 1,
			wantOutputs: []string{
				"[1 / 3] 対義語4択",
				"次の語の対義語として最も近いものを選んでください。",
				"  1. 饒舌\n  2. 簡潔\n  3. 粗雑\n  4. 冗長\n",
				"  1. 簡潔\n  2. 緻密\n  3. 煩雑\n  4. 饒舌\n",
				"  1. 粗雑\n  2. 饒舌\n  3. 簡潔\n  4. 寡黙\n",
				"✅ 正解！",
				"❌ 不正解",
				"正解: 簡潔",
				"意味: 無駄が多くて長い",
				"結果: 2 / 3 問正解",
			},
		},
		{
			name:  "invalid answers are asked again",
			mode:  quiz.ModeSynonym,
			input: "5\nabc\n1\nq\n",
			start: 3,
			wantOutputs: []string{
				"[3 / 3] 類義語4択",
				"1〜4 の番号を入力してください。",
				"正解: 精密",
				"結果: 1 / 1 問正解",
			},
		},
		{
			name:        "quit without answering",
			mode:        quiz.ModeSynonym,
			input:       "n\nq\n",
			start:       1,
			wantOutputs: []string{"[2 / 3] 類義語4択", "  1. 冗漫\n"},
			wantNotOut:  []string{"結果:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, index, stdout := newTestBase(t, tt.input, tt.start)
			cli := &ChoiceQuizCLI{
				InteractiveQuizCLI: base,
				mode:               tt.mode,
				builder:            quiz.NewBuilder(quiz.WithRandom(firstRandom{})),
				index:              index,
			}

			require.NoError(t, cli.Run(context.Background(), cli))
			for _, want := range tt.wantOutputs {
				assert.Contains(t, stdout.String(), want)
			}
			for _, notWant := range tt.wantNotOut {
				assert.NotContains(t, stdout.String(), notWant)
			}
		})
	}
}
