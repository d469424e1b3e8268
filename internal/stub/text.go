package stub

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/maxbolgarin/gopenai/openai"
)

const stubCompletion = "This is a deterministic completion from the local stub server."

// rank returns indexes of documents sharing words with query, best first.
func rank(query string, docs [][2]string, limit *int) []int {
	terms := words(query)

	type scored struct {
		index int
		score int
	}
	var out []scored
	for i, d := range docs {
		score := 0
		for w := range words(d[0]) {
			if _, ok := terms[w]; ok {
				score++
			}
		}
		if score > 0 {
			out = append(out, scored{i, score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })

	if limit != nil && *limit > 0 && len(out) > *limit {
		out = out[:*limit]
	}
	idx := make([]int, len(out))
	for i, s := range out {
		idx[i] = s.index
	}
	return idx
}

func words(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		out[w] = struct{}{}
	}
	return out
}

// generate returns at most maxTokens words of the canned completion, cut at the first stop sequence.
func generate(prompt string, maxTokens int, stop []string) (string, string) {
	all := strings.Fields(stubCompletion)
	finish := "stop"
	if maxTokens < len(all) {
		all = all[:max(maxTokens, 0)]
		finish = "length"
	}
	text := ""
	if len(all) > 0 {
		text = " " + strings.Join(all, " ")
	}
	if strings.HasSuffix(prompt, "\n") {
		text = strings.TrimPrefix(text, " ")
	}
	for _, s := range stop {
		if s == "" {
			continue
		}
		if i := strings.Index(text, s); i >= 0 {
			text = text[:i]
			finish = "stop"
		}
	}
	return text, finish
}

func firstSentence(s string) string {
	if i := strings.IndexAny(s, ".!?"); i >= 0 {
		return strings.TrimSpace(s[:i+1])
	}
	return strings.TrimSpace(s)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func searchModel(m *openai.Model) string {
	if m == nil {
		return openai.Ada.String()
	}
	return m.String()
}

func modelByEngine(engine string) (openai.Model, bool) {
	for _, m := range openai.Models() {
		if m.Engine() == engine {
			return m, true
		}
	}
	return openai.Model{}, false
}
