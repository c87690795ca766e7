// Package prompt turns a transcript into an image-generation prompt by
// sampling one descriptor per category and filling a fixed template.
package prompt

import "fmt"

// 6 styles x 6 moods x 5 palettes = 180 possible prompts per transcript.
var (
	styles = []string{
		"絵本風でシンプルな",
		"ふんわり水彩タッチの",
		"クレヨンで描いたような",
		"切り絵風の",
		"レトロゲーム風ドット絵の",
		"明るく元気なアニメ調の",
	}

	moods = []string{
		"子供が喜びそうな暖かく優しい雰囲気の",
		"ワクワクする冒険を感じさせる",
		"夢のようでファンタジーな",
		"自然や四季を感じられる",
		"シンプルでポップな",
		"落ち着いた安心感のある",
	}

	palettes = []string{
		"カラフルな配色で",
		"淡いパステルカラーで",
		"ビビッドな原色を使って",
		"モノクロに一部アクセントカラーを加えて",
		"虹のように多彩な色合いで",
	}
)

// Rand is the randomness capability the synthesizer needs.
// *math/rand.Rand satisfies it; tests substitute a fixed source.
type Rand interface {
	Intn(n int) int
}

type Synthesizer struct {
	rnd Rand
}

func NewSynthesizer(rnd Rand) *Synthesizer {
	return &Synthesizer{rnd: rnd}
}

// BuildPrompt samples each category independently and interpolates the
// transcript into the fixed sentence template.
func (s *Synthesizer) BuildPrompt(transcript string) string {
	style := styles[s.rnd.Intn(len(styles))]
	mood := moods[s.rnd.Intn(len(moods))]
	palette := palettes[s.rnd.Intn(len(palettes))]

	return fmt.Sprintf(
		"「%s」という言葉から連想される、%s、%s、%sイラストを生成してください。",
		transcript, style, mood, palette,
	)
}
