package usecase

import (
	"strconv"

	"matka_backend/internal/feature/companies/domain/entity"
)

// State はディスプレイの描画状態です。
type State int

const (
	// StateLoading は最初の通知を受け取る前の状態です。
	StateLoading State = iota
	// StatePopulated は一覧を受け取った後の状態です（空の一覧を含む）。
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePopulated:
		return "populated"
	}
	return "unknown"
}

// Card はディスプレイに表示する1社分のカードです。
type Card struct {
	ID           string
	Name         string
	TicketNumber string
	OpeningTime  string // 12時間表記
	ClosingTime  string // 12時間表記
	JodiInfo     string
	PanelInfo    string
	Gradient     string
	DelayMS      int // 表示アニメーションの遅延
}

// View はディスプレイ1画面分の表示内容です。
type View struct {
	State      State
	Cards      []Card
	CountLabel string // "1 Company" / "3 Companies"
}

// Loading reports whether no list has been received yet.
func (v View) Loading() bool { return v.State == StateLoading }

// Empty reports whether a list was received and it has no companies.
func (v View) Empty() bool { return v.State == StatePopulated && len(v.Cards) == 0 }

// BuildView は一覧を表示順に並べ替え、時刻を整形してカードにします。
func BuildView(state State, companies []entity.Company) View {
	sorted := SortForDisplay(companies)
	cards := make([]Card, 0, len(sorted))
	for i, c := range sorted {
		cards = append(cards, Card{
			ID:           c.ID,
			Name:         c.Name,
			TicketNumber: c.TicketNumber,
			OpeningTime:  FormatTime(c.OpeningTime),
			ClosingTime:  FormatTime(c.ClosingTime),
			JodiInfo:     c.JodiInfo,
			PanelInfo:    c.PanelInfo,
			Gradient:     GradientClass(i),
			DelayMS:      i * 100,
		})
	}
	return View{State: state, Cards: cards, CountLabel: countLabel(len(cards))}
}

func countLabel(n int) string {
	if n == 1 {
		return "1 Company"
	}
	return strconv.Itoa(n) + " Companies"
}
