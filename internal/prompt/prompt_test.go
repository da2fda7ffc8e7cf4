package prompt

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_vocab_quiz/internal/model"
)

func sampleTable() *model.WordTable {
	t := model.NewWordTable(model.SampleColumns)
	t.Entries = []model.WordEntry{
		{PageID: "p1", Word: "capital", Meaning: "수도", Multiplicity: 1},
		{PageID: "p2", Word: "sum", Meaning: "합계", Multiplicity: 3},
	}
	return t
}

func Test_Format(t *testing.T) {
	got := Format(sampleTable())

	assert.True(t, strings.HasPrefix(got, Preamble))
	assert.True(t, strings.HasSuffix(got, Preamble+" [capital;수도] [sum;합계]"))
	assert.Contains(t, got, "Q: 문제;A:단어")
}

func Test_Format_Empty(t *testing.T) {
	assert.Equal(t, Preamble, Format(model.NewWordTable(model.SampleColumns)))
	assert.Equal(t, Preamble, Format(nil))
}

func Test_Format_NoEscaping(t *testing.T) {
	table := model.NewWordTable(model.SampleColumns)
	table.Entries = []model.WordEntry{{Word: "a;b", Meaning: "c"}}
	assert.True(t, strings.HasSuffix(Format(table), " [a;b;c]"))
}

func Test_ParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    model.QAPair
		wantErr bool
	}{
		{
			name: "正常系: 正しい形式",
			line: "Q: capital of France?;A:Paris",
			want: model.QAPair{Question: "capital of France?", Answer: "Paris"},
		},
		{
			name: "正常系: 前後の空白",
			line: "   Q:  2+2? ;A:  4  ",
			want: model.QAPair{Question: "2+2?", Answer: "4"},
		},
		{
			name: "正常系: 問題文中のマーカーを除く",
			line: "1. Q: 빈칸: ___ Q: is red;A:apple",
			want: model.QAPair{Question: "1.  빈칸: ___  is red", Answer: "apple"},
		},
		{
			name: "正常系: マーカーなし",
			line: "Fill in: I ___ home;A:went",
			want: model.QAPair{Question: "Fill in: I ___ home", Answer: "went"},
		},
		{name: "異常系: 区切りがない", line: "Q: what?", wantErr: true},
		{name: "異常系: 区切りが二つ", line: "Q: a;A:b;A:c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(1, tt.line)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrMalformedResponseLine)
				var lineErr *model.MalformedResponseLineError
				require.ErrorAs(t, err, &lineErr)
				assert.Equal(t, 1, lineErr.LineNo)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Parse(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		response string
		want     []model.QAPair
	}{
		{
			name:     "正常系: 二組",
			response: "Q: capital of France?;A:Paris\nQ: 2+2?;A:4",
			want: []model.QAPair{
				{Question: "capital of France?", Answer: "Paris"},
				{Question: "2+2?", Answer: "4"},
			},
		},
		{
			name:     "正常系: 空行と CRLF",
			response: "\r\n\nQ: one;A:1\r\n   \nQ: two;A:2\n\n",
			want: []model.QAPair{
				{Question: "one", Answer: "1"},
				{Question: "two", Answer: "2"},
			},
		},
		{
			name:     "正常系: 不正な行は飛ばす",
			response: "Here are your questions:\nQ: one;A:1\nQ: broken\nQ: two;A:2",
			want: []model.QAPair{
				{Question: "one", Answer: "1"},
				{Question: "two", Answer: "2"},
			},
		},
		{name: "正常系: 空の応答", response: "", want: []model.QAPair{}},
		{name: "正常系: 空白だけ", response: "\n  \n\t\n", want: []model.QAPair{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(ctx, tt.response))
		})
	}
}

func Test_FormatParseRoundTrip(t *testing.T) {
	prompt := Format(sampleTable())
	require.NotEmpty(t, prompt)

	// the model is replaced by a canned reply
	generate := func(string) string { return "Q: capital of France?;A:Paris\nQ: 2+2?;A:4" }

	got := Parse(context.Background(), generate(prompt))
	assert.Equal(t, []model.QAPair{
		{Question: "capital of France?", Answer: "Paris"},
		{Question: "2+2?", Answer: "4"},
	}, got)
}

func Test_MeaningPairs(t *testing.T) {
	got := MeaningPairs(sampleTable())
	assert.Equal(t, []model.QAPair{
		{Question: "수도", Answer: "capital", PageID: "p1"},
		{Question: "합계", Answer: "sum", PageID: "p2"},
	}, got)
	assert.Empty(t, MeaningPairs(nil))
}
