package builder

import (
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/content"
)

func (s *Store) AddOption(index, question int) error {
	return s.editQuestion("addOption", index, question, func(q content.QuizQuestion) (content.QuizQuestion, error) {
		q.Options = appendCopy(q.Options, "")
		return q, nil
	})
}

// RemoveOption deletes one option and keeps the answer pointing at the same
// option. When the answer itself is removed it falls back to the first option.
func (s *Store) RemoveOption(index, question, option int) error {
	return s.editQuestion("removeOption", index, question, func(q content.QuizQuestion) (content.QuizQuestion, error) {
		if err := content.CheckIndex("removeOption", option, len(q.Options)); err != nil {
			return q, err
		}
		if len(q.Options) == 1 {
			return q, ErrLastOption
		}
		opts, _ := removeAt("removeOption", q.Options, option)
		switch {
		case q.AnswerIndex == option:
			q.AnswerIndex = 0
		case q.AnswerIndex > option:
			q.AnswerIndex--
		}
		q.Options = opts
		return content.NormalizeQuestion(q), nil
	})
}

func (s *Store) UpdateOption(index, question, option int, text string) error {
	return s.editQuestion("updateOption", index, question, func(q content.QuizQuestion) (content.QuizQuestion, error) {
		opts, err := setAt("updateOption", q.Options, option, func(string) (string, error) { return text, nil })
		q.Options = opts
		return q, err
	})
}

// SetAnswer marks option as the correct answer.
func (s *Store) SetAnswer(index, question, option int) error {
	return s.editQuestion("setAnswer", index, question, func(q content.QuizQuestion) (content.QuizQuestion, error) {
		if err := content.CheckIndex("setAnswer", option, len(q.Options)); err != nil {
			return q, err
		}
		q.AnswerIndex = option
		return q, nil
	})
}

func (s *Store) editQuestion(op string, index, question int, fn func(content.QuizQuestion) (content.QuizQuestion, error)) error {
	return s.edit(op, index, func(p content.Payload) (content.Payload, error) {
		quiz, ok := p.(content.Quiz)
		if !ok {
			return nil, &content.SchemaMismatchError{Op: op, Type: p.Kind(), Field: "questions"}
		}
		qs, err := setAt(op, quiz.Questions, question, fn)
		return content.Quiz{Questions: qs}, err
	})
}
