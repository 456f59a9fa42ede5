package analyzer

import (
	"fmt"
	"strings"
	"time"

	"fxblog/internal/market"
	"fxblog/internal/news"
)

var kst = time.FixedZone("KST", 9*60*60)

// excerptRunes is how much of a news body is quoted in the prompt
const excerptRunes = 100

// CommentaryPrompt renders the market snapshot and up to five news items
// into the commentary-generation prompt. Pure formatting, no side effects.
func CommentaryPrompt(snap market.Snapshot, items []news.Item, now time.Time) string {
	now = now.In(kst)
	date := now.Format("2006-01-02")
	clock := now.Format("15:04")

	var b strings.Builder
	fmt.Fprintf(&b, "다음 원달러 환율 데이터를 바탕으로 %s %s KST 기준 환율 동향을 분석해주세요.\n\n", date, clock)
	b.WriteString("[환율 정보]\n")
	fmt.Fprintf(&b, "현재 환율: %.2f원\n", snap.Rate)
	fmt.Fprintf(&b, "전일 대비: %+.2f%%\n\n", snap.ChangePercent)
	b.WriteString("[주요 뉴스]")

	if len(items) > 0 {
		for _, item := range items {
			fmt.Fprintf(&b, "\n- %s", item.Title)
			if item.Content != "" {
				fmt.Fprintf(&b, "\n  %s...", excerpt(item.Content, excerptRunes))
			}
		}
	} else {
		b.WriteString("\n- 오늘의 주요 뉴스가 없습니다.")
	}

	b.WriteString(`

작성 요구사항:
1. 환율 동향 분석 (300자 이상)
   - 오늘의 원달러 환율 움직임을 상세히 설명
   - 전일 대비 변동폭과 그 의미를 깊이 있게 분석
   - 주요 변동 요인을 상세히 설명

2. 뉴스 기반 분석 (300자 이상)
   - 주요 뉴스 내용을 상세히 분석
   - 각 뉴스가 환율에 미친 영향 설명
   - 시장 참여자들의 반응과 심리 분석

3. 실무적 시사점 (300자 이상)
   - 기업 관점의 시사점 상세 분석
   - 개인 투자자 관점의 시사점 상세 분석
   - 단기적 대응 방안과 중장기 주의점 제시

작성 스타일:
- 전체 분량: 1,500자 이상
- 문단별 소제목 포함
- 전문용어는 반드시 쉽게 풀어서 설명
- 객관적이고 중립적인 톤 유지
- 구체적인 수치와 팩트 중심으로 작성

참고사항:
- 투자 조언이나 확정적 전망은 피할 것
- 근거 없는 추측성 내용 배제
`)
	return b.String()
}

// TitlePrompt renders the finished commentary into the title-request
// prompt, including the mandatory date-stamped prefix instruction.
func TitlePrompt(commentary string, now time.Time) string {
	now = now.In(kst)
	date := now.Format("01/02")
	clock := now.Format("15:04")

	var b strings.Builder
	b.WriteString("다음 환율 분석을 바탕으로 블로그 포스팅 제목을 작성해주세요.\n\n")
	fmt.Fprintf(&b, "분석 내용: %s\n\n", commentary)
	fmt.Fprintf(&b, `제목 요구사항:
1. 필수 포함 요소
   - '[%s %s 환율분석]' 접두어
   - 핵심 환율 동향 또는 주요 영향 요인

2. 작성 스타일
   - 전체 길이: 30자 내외
   - 명확하고 간결한 표현
   - 구체적인 수치나 데이터 포함
   - 객관적이고 중립적인 톤 유지

3. 제목 예시
- [%s %s 환율분석] 원달러 1,456원, 美 관세 유예에 하락세
- [%s %s 환율분석] 환율 27.7원↓…수출기업 달러매도 증가

4. 유의사항
- 제목 선정 이유나 프롬프트를 언급하는 문구는 반드시 제거하기
- 제목은 반드시 하나만 출력하기
`, date, clock, date, clock, date, clock)
	return b.String()
}

// refinementPrompt wraps a raw commentary draft into the second-pass
// rewrite request. The refinement keeps each instruction set focused:
// generation worries about substance, refinement about style.
func refinementPrompt(draft string) string {
	return fmt.Sprintf(`다음 내용을 더 자연스럽고 전문적인 블로그 스타일로 다듬어주세요.
원문: %s

다듬기 요구사항:
1. 하루 여러 번 게시되기에 현재 시황에 집중
2. 하나의 이슈에 대해서만 깊이있게 줄글로 작성하기
3. 독자에게 불필요한 설명이나 강조표시, 프롬프트 언급은 제거하기
4. 전문적이지만 조언 금지
5. 핵심 내용은 유지하면서 자연스러운 흐름으로 재구성
6. 별표(*)나 다른 특수문자는 절대 사용하지 않음
`, draft)
}

// excerpt returns the first n runes of s
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
