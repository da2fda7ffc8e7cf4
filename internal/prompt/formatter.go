// Package prompt builds the question-generation prompt and parses the
// language model's reply.
package prompt

import (
	"fmt"
	"strings"

	"go_vocab_quiz/internal/model"
)

// Preamble asks for one or more questions per word, forbids ';' inside a
// question and fixes the output grammar to "Q: <question>;A:<answer>" lines.
const Preamble = "한국어 사용자가 영어 단어를 학습할 수 있도록 입력 단어들에 대한 다양한 문제를 만들어줘. " +
	"단어는 여러 개가 입력이 되며, 각 단어 당 적어도 한 문제는 만들어. " +
	"문제에 문자 \";\" 는 포함시키지 마. " +
	"출력 형식으로 제공된 형식을 제외하고는 출력을 생성하지 마. " +
	"한 줄에 한 문제씩 출력해. " +
	"각 입력 단어는 \"[단어;뜻]\" 형태로 주어져. " +
	"<출력 형식>: \"Q: 문제;A:단어\" <입력 단어들>:"

// Format renders the sampled words as a prompt. Words and meanings are not
// escaped, so a ';' inside either one reaches the model verbatim.
func Format(table *model.WordTable) string {
	var b strings.Builder
	b.WriteString(Preamble)
	if table == nil {
		return b.String()
	}
	for _, e := range table.Entries {
		fmt.Fprintf(&b, " [%s;%s]", e.Word, e.Meaning)
	}
	return b.String()
}
