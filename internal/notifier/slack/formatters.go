package slack

import (
	"fmt"
	"strings"

	"github.com/courtflow/courtflow/internal/ledger"
	"github.com/courtflow/courtflow/internal/queue"
	"github.com/slack-go/slack"
)

func (s *Notifier) formatNextUp(entry queue.Entry) slack.Message {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, "🏸 You're up next!", false, false),
	)
	body := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*%s*, you're at position *%d* — head to the courts and get ready.", entry.DisplayName, entry.Position),
			false, false),
		nil, nil,
	)
	return slack.NewBlockMessage(header, body)
}

func (s *Notifier) formatApproaching(entry queue.Entry) slack.Message {
	body := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*%s*, you're at position *%d* — your turn is coming up soon.", entry.DisplayName, entry.Position),
			false, false),
		nil, nil,
	)
	return slack.NewBlockMessage(body)
}

func (s *Notifier) formatGameResult(game *ledger.Game) slack.Message {
	winners := teamNames(game, game.Winner)
	var losers string
	if game.Winner == ledger.TeamA {
		losers = teamNames(game, ledger.TeamB)
	} else {
		losers = teamNames(game, ledger.TeamA)
	}

	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, "🏆 Game finished", false, false),
	)
	body := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*%s* beat *%s* %d–%d (%d min)", winners, losers,
				maxScore(game), minScore(game), game.DurationSeconds/60),
			false, false),
		nil, nil,
	)
	return slack.NewBlockMessage(header, body)
}

func teamNames(game *ledger.Game, key ledger.TeamKey) string {
	players := game.TeamAPlayers
	if key == ledger.TeamB {
		players = game.TeamBPlayers
	}
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}
	return strings.Join(names, " & ")
}

func maxScore(game *ledger.Game) int {
	if game.ScoreA > game.ScoreB {
		return game.ScoreA
	}
	return game.ScoreB
}

func minScore(game *ledger.Game) int {
	if game.ScoreA < game.ScoreB {
		return game.ScoreA
	}
	return game.ScoreB
}
