package analyzer

import (
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const maxTags = 15

// Base tag categories; up to two tags are sampled from each to seed
// topical diversity even when the text itself is sparse.
var baseTagSets = [][]string{
	{"주식", "주식투자", "주식시장", "주식분석", "주식공부"},
	{"시장분석", "시장동향", "시장전망", "시장이슈", "시장리뷰"},
	{"투자", "투자전략", "투자분석", "투자이슈", "투자전망"},
	{"경제", "경제동향", "경제이슈", "경제전망", "글로벌경제"},
	{"미국주식", "미국시장", "미국경제", "나스닥", "다우존스"},
	{"거시경제", "금리", "인플레이션", "고용", "무역"},
	{"글로벌시장", "국제무역", "환율", "원자재", "에너지"},
}

// Macroeconomic indicators get priority placement in the tag list
var macroIndicators = []string{
	"금리", "인플레이션", "고용", "GDP", "소비자물가", "생산자물가",
	"무역", "관세", "정책", "환율", "원자재", "에너지", "글로벌경제",
}

// Sector keyword sets matched as substrings against the tokens
var sectorSets = [][]string{
	{"테크", "기술", "AI", "반도체", "소프트웨어", "하드웨어", "클라우드", "메타버스"},
	{"금융", "은행", "증권", "보험", "핀테크", "디지털금융"},
	{"에너지", "석유", "가스", "재생에너지", "태양광", "풍력", "원자력"},
	{"소비재", "유통", "식품", "의류", "화장품", "패션", "소매"},
	{"헬스케어", "바이오", "제약", "의료", "건강", "의료기기"},
	{"산업재", "제조", "자동차", "항공", "방위", "기계", "건설"},
	{"유틸리티", "전기", "수도", "인프라"},
	{"부동산", "REITs", "상업용부동산", "주거용부동산"},
	{"통신", "텔레콤", "5G", "인터넷", "미디어", "엔터테인먼트"},
	{"재료", "화학", "철강", "비철금속", "플라스틱"},
}

// Fallback pool used when extraction fails outright
var defaultTags = []string{
	"주식", "시장분석", "투자", "경제", "미국주식", "거시경제", "글로벌경제",
}

// TagExtractor generates blog tags from a post's title and content.
// Tagging never blocks publication: any failure is converted into a
// small random default set.
type TagExtractor struct {
	rng *rand.Rand
}

// NewTagExtractor creates a tag extractor. Pass a nil rng to use an
// unseeded time-based source; tests inject a fixed seed.
func NewTagExtractor(rng *rand.Rand) *TagExtractor {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &TagExtractor{rng: rng}
}

// Extract returns at most 15 deduplicated, sorted tags derived from the
// title and content, mixing sampled base tags with macro indicators,
// ticker-like symbols and sector keywords found in the text.
func (e *TagExtractor) Extract(title, content string) (tags []string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("tag extraction failed, using default tags", "panic", r)
			tags = e.fallbackTags()
		}
	}()

	words := tokenize(title, content)

	// Macro indicators found anywhere in any token come first
	var macro []string
	for _, indicator := range macroIndicators {
		for _, word := range words {
			if strings.Contains(word, indicator) {
				macro = append(macro, indicator)
				break
			}
		}
	}

	// Up to two sampled tags per base category
	var base []string
	for _, set := range baseTagSets {
		for _, idx := range e.rng.Perm(len(set))[:min(2, len(set))] {
			base = append(base, set[idx])
		}
	}

	// All-uppercase short tokens look like ticker symbols
	var symbols []string
	for _, word := range words {
		if isSymbol(word) {
			symbols = append(symbols, word)
		}
	}

	// Sector keywords matched as substrings
	var sectors []string
	for _, word := range words {
		for _, set := range sectorSets {
			for _, indicator := range set {
				if strings.Contains(word, indicator) {
					sectors = append(sectors, indicator)
					break
				}
			}
		}
	}

	final := make([]string, 0, len(macro)+len(base)+len(symbols)+len(sectors))
	final = append(final, macro...)
	for _, tag := range append(append(base, symbols...), sectors...) {
		clean := cleanWord(tag)
		if utf8.RuneCountInString(clean) > 1 {
			final = append(final, clean)
		}
	}

	final = dedupe(final)
	sort.Strings(final)
	if len(final) > maxTags {
		final = final[:maxTags]
	}
	return final
}

// fallbackTags picks three random tags from the default pool
func (e *TagExtractor) fallbackTags() []string {
	picks := e.rng.Perm(len(defaultTags))[:3]
	tags := make([]string, 0, 3)
	for _, idx := range picks {
		tags = append(tags, defaultTags[idx])
	}
	return tags
}

// tokenize splits the title and content into cleaned words. Content
// lines shaped like "label: value" contribute only the label, which is
// where fallback templates put their indicator names.
func tokenize(title, content string) []string {
	var words []string

	appendClean := func(raw string) {
		clean := cleanWord(raw)
		if utf8.RuneCountInString(clean) > 1 {
			words = append(words, clean)
		}
	}

	for _, word := range strings.Fields(title) {
		appendClean(word)
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if label, _, found := strings.Cut(line, ":"); found {
			appendClean(strings.TrimSpace(label))
			continue
		}
		for _, word := range strings.Fields(line) {
			appendClean(word)
		}
	}

	return words
}

// cleanWord strips everything except letters, digits and spaces
func cleanWord(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, word)
}

// isSymbol reports whether a token looks like a stock ticker: at most
// five runes, at least one capital letter, nothing but capitals and digits.
func isSymbol(word string) bool {
	runes := []rune(word)
	if len(runes) == 0 || len(runes) > 5 {
		return false
	}
	hasLetter := false
	for _, r := range runes {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return hasLetter
}

// dedupe removes duplicates, keeping first occurrences
func dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := tags[:0]
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
