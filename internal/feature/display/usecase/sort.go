package usecase

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"matka_backend/internal/feature/companies/domain/entity"
)

// PreferredOrder はディスプレイで先頭に並べる会社名の順序です。
var PreferredOrder = []string{"Lucky Day", "Lucky Night", "Kalyan", "Main Bazar"}

// preferenceRank は名前が PreferredOrder に一致する位置を返します。一致しない場合は -1。
// 前後の空白を除き、大文字小文字を区別せずに完全一致で比較します。
func preferenceRank(name string) int {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, p := range PreferredOrder {
		if n == strings.ToLower(p) {
			return i
		}
	}
	return -1
}

// SortForDisplay は表示用の並び順にした新しいスライスを返します（入力は変更しません）。
// PreferredOrder に一致する会社が先頭にその順序で並び、残りは名前のロケール順です。
func SortForDisplay(companies []entity.Company) []entity.Company {
	out := make([]entity.Company, len(companies))
	copy(out, companies)

	// Collatorはゴルーチン間で共有できないため呼び出しごとに作成する
	col := collate.New(language.English)
	ranks := make(map[string]int, len(out))
	for _, c := range out {
		ranks[c.Name] = preferenceRank(c.Name)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := ranks[out[i].Name], ranks[out[j].Name]
		switch {
		case ri >= 0 && rj >= 0:
			return ri < rj
		case ri >= 0:
			return true
		case rj >= 0:
			return false
		}
		return col.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}
