package prompt

import (
	"context"
	"strings"

	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
)

const (
	questionMarker  = "Q:"
	answerSeparator = ";A:"
)

// ParseLine parses one "Q: <question>;A:<answer>" line. lineNo is only used
// in the returned error.
func ParseLine(lineNo int, line string) (model.QAPair, error) {
	line = strings.TrimSpace(line)
	if strings.Count(line, answerSeparator) != 1 {
		return model.QAPair{}, &model.MalformedResponseLineError{LineNo: lineNo, Line: line}
	}
	q, a, _ := strings.Cut(line, answerSeparator)
	return model.QAPair{
		Question: strings.TrimSpace(strings.ReplaceAll(q, questionMarker, "")),
		Answer:   strings.TrimSpace(a),
	}, nil
}

// Parse turns a model response into question/answer pairs in input order.
// Blank lines are ignored; malformed lines are skipped and logged at WARN.
func Parse(ctx context.Context, response string) []model.QAPair {
	logger := middleware.GetLogger(ctx)

	pairs := []model.QAPair{}
	for i, line := range strings.Split(response, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pair, err := ParseLine(i+1, line)
		if err != nil {
			logger.Warn("Skipping malformed response line", "error", err)
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// MeaningPairs derives one question per word without the language model: the
// meaning is shown and the word is the answer.
func MeaningPairs(table *model.WordTable) []model.QAPair {
	pairs := make([]model.QAPair, 0, table.Len())
	if table == nil {
		return pairs
	}
	for _, e := range table.Entries {
		pairs = append(pairs, model.QAPair{Question: e.Meaning, Answer: e.Word, PageID: e.PageID})
	}
	return pairs
}
