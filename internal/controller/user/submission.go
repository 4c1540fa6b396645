package user

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/dto"
	"github.com/lshigami/quizforge/internal/service"
	"github.com/rs/zerolog/log"
)

// normalizeAnswers turns the raw answer items into strict submitted answers.
// An item is an object or a string holding that object as JSON. Items that do
// not decode, lack a valid questionId, or carry a malformed choiceId are
// dropped.
func normalizeAnswers(raw []json.RawMessage) []service.SubmittedAnswer {
	answers := make([]service.SubmittedAnswer, 0, len(raw))
	for i, item := range raw {
		wire, err := decodeRawAnswer(item)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("Submission: could not decode answer, skipping")
			continue
		}
		questionID, err := uuid.Parse(wire.QuestionID)
		if err != nil {
			log.Warn().Str("questionId", wire.QuestionID).Int("index", i).Msg("Submission: invalid questionId, skipping")
			continue
		}
		answer := service.SubmittedAnswer{QuestionID: questionID, Text: wire.AnswerText}
		if wire.ChoiceID != nil && *wire.ChoiceID != "" {
			choiceID, err := uuid.Parse(*wire.ChoiceID)
			if err != nil {
				log.Warn().Str("choiceId", *wire.ChoiceID).Int("index", i).Msg("Submission: invalid choiceId, skipping")
				continue
			}
			answer.ChoiceID = &choiceID
		}
		answers = append(answers, answer)
	}
	return answers
}

func decodeRawAnswer(item json.RawMessage) (dto.RawAnswerDTO, error) {
	var wire dto.RawAnswerDTO
	var encoded string
	if err := json.Unmarshal(item, &encoded); err == nil {
		item = json.RawMessage(encoded)
	}
	err := json.Unmarshal(item, &wire)
	return wire, err
}
