package usecase

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTime は24時間表記 "HH:MM" を12時間表記 "hh:mm AM/PM" に変換します。
// 空文字は空文字を返します。時が数値でない場合は入力をそのまま返します。
func FormatTime(raw string) string {
	if raw == "" {
		return ""
	}
	hh, mm, ok := strings.Cut(raw, ":")
	if !ok {
		return raw
	}
	h, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil || h < 0 {
		return raw
	}

	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d:%s %s", h12, mm, ampm)
}

// gradients はカードの枠に使うグラデーションクラスです。
var gradients = []string{
	"from-yellow-400 via-orange-400 to-red-400",
	"from-blue-400 via-purple-500 to-pink-500",
	"from-green-400 via-blue-500 to-purple-600",
	"from-pink-400 via-red-400 to-yellow-400",
	"from-indigo-400 via-purple-400 to-pink-400",
	"from-teal-400 via-cyan-500 to-blue-500",
}

// GradientClass は表示位置に応じたグラデーションクラスを返します。
func GradientClass(index int) string {
	if index < 0 {
		index = -index
	}
	return gradients[index%len(gradients)]
}
